// Package loader handles cartridge and usage map file operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrodebug/internal/options"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
)

// ErrFileExists is returned when an output file exists and overwriting was not requested.
var ErrFileExists = errors.New("file already exists")

// Loader handles loading cartridge files from disk.
type Loader struct{}

// New creates a new cartridge loader.
func New() *Loader {
	return &Loader{}
}

// Load parses the iNES ROM file given as input. If a .cdl file to import was passed,
// it is opened as well and returned for the caller to close.
func (l *Loader) Load(opts options.Program) (*cartridge.Cartridge, io.ReadCloser, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	cart, err := cartridge.LoadFile(file)
	if err != nil {
		return nil, nil, fmt.Errorf("loading cartridge: %w", err)
	}

	var cdlReader io.ReadCloser
	if opts.CodeDataLog != "" {
		cdlReader, err = os.Open(opts.CodeDataLog)
		if err != nil {
			return nil, nil, fmt.Errorf("opening CDL file %s: %w", opts.CodeDataLog, err)
		}
	}

	return cart, cdlReader, nil
}

// RestoreUsageMap opens the raw usage map file and passes it to the restore function.
func (l *Loader) RestoreUsageMap(path string, restore func(r io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening usage map %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := restore(file); err != nil {
		return fmt.Errorf("restoring usage map %s: %w", path, err)
	}
	return nil
}

// SaveUsageMap writes the raw usage map of the source to the file.
func (l *Loader) SaveUsageMap(path string, src io.WriterTo, force bool) error {
	file, err := Create(path, force)
	if err != nil {
		return err
	}

	if _, err := src.WriteTo(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("saving usage map %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing usage map %s: %w", path, err)
	}
	return nil
}

// Create creates the output file. An existing file is only truncated if force is set.
func Create(path string, force bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("creating %s: %w", path, ErrFileExists)
		}
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return file, nil
}
