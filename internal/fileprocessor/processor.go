// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/retrodebug/internal/codedata"
	"github.com/retroenv/retrodebug/internal/config"
	"github.com/retroenv/retrodebug/internal/debugger"
	"github.com/retroenv/retrodebug/internal/disasm"
	"github.com/retroenv/retrodebug/internal/loader"
	"github.com/retroenv/retrodebug/internal/mapper"
	"github.com/retroenv/retrodebug/internal/options"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/arch/system/nes/codedatalog"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program) error {
	return processFile(ctx, logger, opts, os.Stdout)
}

func processFile(ctx context.Context, logger *log.Logger, opts options.Program, stdout io.Writer) error {
	ld := loader.New()
	cart, cdlReader, err := ld.Load(opts)
	if err != nil {
		return fmt.Errorf("loading cartridge: %w", err)
	}
	if cdlReader != nil {
		defer func() { _ = cdlReader.Close() }()
	}

	m, err := newMapper(cart, opts)
	if err != nil {
		return err
	}

	dbg := newDebugger(logger, cart, m)
	dbg.SetFlags(config.DebuggerFlags(opts))

	if err := ctx.Err(); err != nil {
		return err
	}

	switch {
	case cdlReader != nil:
		prgFlags, err := codedatalog.LoadFile(cart, cdlReader)
		if err != nil {
			return fmt.Errorf("loading code/data log: %w", err)
		}
		dbg.CodeDataMap().ApplyCodeDataLog(prgFlags)

	case opts.UsageMap != "":
		if err := ld.RestoreUsageMap(opts.UsageMap, dbg.RestoreCodeDataMap); err != nil {
			return err
		}
	}

	printInfo(logger, opts, dbg.State(true).Cartridge)
	logUsage(logger, dbg.CodeDataMap())

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeCode(dbg, opts, stdout); err != nil {
		return err
	}

	if opts.SaveUsage != "" {
		if err := ld.SaveUsageMap(opts.SaveUsage, dbg.CodeDataMap(), opts.Force); err != nil {
			return err
		}
		logger.Info("Usage map saved", log.String("file", opts.SaveUsage))
	}
	return nil
}

func newMapper(cart *cartridge.Cartridge, opts options.Program) (*mapper.Mapper, error) {
	windowSize := opts.BankWindowSize
	if windowSize == 0 {
		windowSize = options.DefaultBankWindowSize
	}

	m, err := mapper.New(cart, mapper.WithBankWindowSize(windowSize))
	if err != nil {
		return nil, fmt.Errorf("creating mapper: %w", err)
	}
	return m, nil
}

func writeCode(dbg *debugger.Debugger, opts options.Program, stdout io.Writer) error {
	length := disasm.ForceRefresh
	text, _ := dbg.Code(&length)

	if opts.Output == "" {
		if _, err := io.WriteString(stdout, text); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	file, err := loader.Create(opts.Output, opts.Force)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if _, err := io.WriteString(file, text); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing disassembly: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output file %s: %w", opts.Output, err)
	}
	return nil
}

func logUsage(logger *log.Logger, cdm *codedata.Map) {
	stats := cdm.Stats()
	ratios := cdm.Ratios()

	logger.Info("PRG usage",
		log.String("code", percent(ratios.Code)),
		log.String("data", percent(ratios.Data)),
		log.String("total", percent(ratios.Prg)),
		log.Int("code_bytes", stats.CodeSize),
		log.Int("data_bytes", stats.DataSize))

	logger.Info("CHR usage",
		log.String("used", percent(ratios.Chr)),
		log.String("drawn", percent(ratios.ChrDrawn)),
		log.String("read", percent(ratios.ChrRead)))
}

// printInfo prints the information about the input file and the cartridge.
func printInfo(logger *log.Logger, opts options.Program, state debugger.CartridgeState) {
	if opts.Quiet {
		return
	}

	logger.Info("Processing NES ROM",
		log.String("file", opts.Input),
		log.Uint8("mapper", state.Mapper),
		log.Hex("prg_size", state.PrgSize),
		log.Hex("chr_size", state.ChrSize),
		log.String("chr", chrKind(state.ChrRAM)),
	)
	if state.Mapper != 0 {
		logger.Warn("Bank switching is not emulated, the disassembly shows the power up bank mapping")
	}

	logger.Debug("Bank mapping",
		log.String("prg", formatPages(state.PrgPages)),
		log.String("chr", formatPages(state.ChrPages)))
}

func formatPages(pages []int32) string {
	parts := make([]string, len(pages))
	for i, page := range pages {
		if page < 0 {
			parts[i] = "-"
			continue
		}
		parts[i] = fmt.Sprintf("$%X", page)
	}
	return strings.Join(parts, " ")
}

func percent(ratio float32) string {
	if ratio == codedata.NotApplicable {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func chrKind(ram bool) string {
	if ram {
		return "ram"
	}
	return "rom"
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrodebug", log.String("version", buildinfo.Version(version, commit, date)))
}
