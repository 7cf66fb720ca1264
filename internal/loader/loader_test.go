package loader

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrodebug/internal/codedata"
	"github.com/retroenv/retrodebug/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	t.Run("load NES file with valid header", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.nes", buildMinimalNESROM(1, 0))

		loader := New()
		cart, cdlReader, err := loader.Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		})
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.Nil(t, cdlReader)
		assert.Equal(t, 16384, len(cart.PRG))
	})

	t.Run("load NES ROM with mapper 1", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.nes", buildMinimalNESROM(2, 1))

		cart, _, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		})
		assert.NoError(t, err)
		assert.Equal(t, byte(1), cart.Mapper)
		assert.Equal(t, 32768, len(cart.PRG))
	})

	t.Run("error on invalid NES header", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.nes", make([]byte, 100))

		_, _, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile},
		})
		assert.Error(t, err)
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, _, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.nes"},
		})
		assert.Error(t, err)
	})

	t.Run("load with CDL file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.nes", buildMinimalNESROM(1, 0))
		tmpCDL := createTempFile(t, "test.cdl", []byte{0x01, 0x00})

		cart, cdlReader, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile, CodeDataLog: tmpCDL},
		})
		assert.NoError(t, err)
		assert.NotNil(t, cart)
		assert.NotNil(t, cdlReader)
		_ = cdlReader.Close()
	})

	t.Run("error on non-existent CDL file", func(t *testing.T) {
		tmpFile := createTempFile(t, "test.nes", buildMinimalNESROM(1, 0))

		_, _, err := New().Load(options.Program{
			Parameters: options.Parameters{Input: tmpFile, CodeDataLog: "/nonexistent/cdl.log"},
		})
		assert.Error(t, err)
	})
}

func TestUsageMapRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.usage")
	loader := New()

	src := codedata.New(0x100, 0x20)
	src.SetPrgFlag(0x10, codedata.Code)
	src.SetPrgFlag(0x11, codedata.Data)
	src.SetChrFlag(0x05, codedata.Drawn)
	assert.NoError(t, loader.SaveUsageMap(path, src, false))

	dst := codedata.New(0x100, 0x20)
	assert.NoError(t, loader.RestoreUsageMap(path, readInto(dst)))
	assert.Equal(t, src.Stats(), dst.Stats())
	assert.Equal(t, src.Bytes(), dst.Bytes())

	small := codedata.New(0x80, 0)
	err := loader.RestoreUsageMap(path, readInto(small))
	assert.True(t, errors.Is(err, codedata.ErrSizeMismatch))
}

func TestSaveUsageMapExisting(t *testing.T) {
	path := createTempFile(t, "game.usage", []byte{0xff})
	loader := New()
	m := codedata.New(4, 0)

	err := loader.SaveUsageMap(path, m, false)
	assert.True(t, errors.Is(err, ErrFileExists))

	assert.NoError(t, loader.SaveUsageMap(path, m, true))
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, data)
}

func TestRestoreUsageMapMissing(t *testing.T) {
	err := New().RestoreUsageMap("/nonexistent/game.usage", readInto(codedata.New(1, 0)))
	assert.Error(t, err)
}

func readInto(dst io.ReaderFrom) func(io.Reader) error {
	return func(r io.Reader) error {
		_, err := dst.ReadFrom(r)
		return err
	}
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}

// buildMinimalNESROM creates a minimal valid NES ROM in iNES format with specified PRG size.
// The mapper parameter is placed in the header at the correct position.
func buildMinimalNESROM(prgBanks, mapper byte) []byte {
	const nesHeaderSize = 16
	const prgBankSize = 16384 // 16KB

	data := make([]byte, nesHeaderSize+int(prgBanks)*prgBankSize)

	// iNES header
	copy(data[0:4], []byte{'N', 'E', 'S', 0x1A}) // Magic number
	data[4] = prgBanks                           // Number of 16KB PRG-ROM banks
	data[5] = 0                                  // Number of 8KB CHR-ROM banks
	data[6] = mapper << 4                        // Mapper low nibble
	data[7] = mapper & 0xF0                      // Mapper high nibble

	return data
}
