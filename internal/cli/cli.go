// Package cli handles command line interface logic
package cli

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrodebug/internal/options"
	"github.com/urfave/cli"
)

// ErrNoInput is returned when no ROM file to process was passed.
var ErrNoInput = errors.New("no input file given")

// Action processes the parsed program options.
type Action func(opts options.Program) error

// NewApp returns the command line application that calls the action with the
// parsed program options.
func NewApp(version string, action Action) *cli.App {
	app := cli.NewApp()
	app.Name = "retrodebug"
	app.Usage = "NES code/data usage analysis and disassembly"
	app.UsageText = "retrodebug [options] <rom.nes>"
	app.Version = version
	app.Flags = flags()
	app.Action = func(c *cli.Context) error {
		opts, err := ParseOptions(c)
		if err != nil {
			if errors.Is(err, ErrNoInput) {
				_ = cli.ShowAppHelp(c)
			}
			return err
		}
		return action(opts)
	}
	return app
}

// ParseOptions returns the program options of the parsed command line.
func ParseOptions(c *cli.Context) (options.Program, error) {
	opts := options.Program{
		Parameters: options.Parameters{
			Output:      c.String("output"),
			CodeDataLog: c.String("cdl"),
			UsageMap:    c.String("usage"),
			SaveUsage:   c.String("save-usage"),
		},
		Flags: options.Flags{
			BankWindowSize: c.Int("window"),
			Lowercase:      c.Bool("lowercase"),
			Force:          c.Bool("force"),
			Debug:          c.Bool("debug"),
			Quiet:          c.Bool("quiet"),
		},
	}

	switch c.NArg() {
	case 0:
		return opts, ErrNoInput
	case 1:
		opts.Input = c.Args().Get(0)
	default:
		return opts, fmt.Errorf("unexpected argument %s after file to process, options have to be passed before the file",
			c.Args().Get(1))
	}

	if opts.CodeDataLog != "" && opts.UsageMap != "" {
		return opts, errors.New("a .cdl file and a usage map can not be loaded at the same time")
	}
	return opts, nil
}

func flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "output, o",
			Usage: "name of the output disassembly file, printed on console if no name given",
		},
		cli.StringFlag{
			Name:  "cdl",
			Usage: "name of the .cdl Code/Data log file to load",
		},
		cli.StringFlag{
			Name:  "usage",
			Usage: "name of a raw usage map file to restore",
		},
		cli.StringFlag{
			Name:  "save-usage",
			Usage: "name of the file to save the raw usage map to",
		},
		cli.IntFlag{
			Name:  "window",
			Usage: "size of the switchable PRG bank windows (8192, 16384 or 32768)",
			Value: options.DefaultBankWindowSize,
		},
		cli.BoolFlag{
			Name:  "lowercase",
			Usage: "output opcodes in lower case",
		},
		cli.BoolFlag{
			Name:  "force",
			Usage: "overwrite existing output files",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debugging options for extended logging",
		},
		cli.BoolFlag{
			Name:  "quiet, q",
			Usage: "perform operations quietly",
		},
	}
}
