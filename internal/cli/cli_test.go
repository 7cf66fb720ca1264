package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrodebug/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

// runApp runs the application with the arguments and returns the parsed options.
func runApp(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()

	var got options.Program
	app := NewApp("test", func(opts options.Program) error {
		got = opts
		return nil
	})
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run(append([]string{"retrodebug"}, args...))
	return got, err
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"game.nes"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.nes"},
				Flags:      options.Flags{BankWindowSize: options.DefaultBankWindowSize},
			},
		},
		{
			name: "file options",
			args: []string{"-o", "game.asm", "--usage", "game.usage", "--save-usage", "new.usage", "game.nes"},
			want: options.Program{
				Parameters: options.Parameters{
					Input:     "game.nes",
					Output:    "game.asm",
					UsageMap:  "game.usage",
					SaveUsage: "new.usage",
				},
				Flags: options.Flags{BankWindowSize: options.DefaultBankWindowSize},
			},
		},
		{
			name: "behavior flags",
			args: []string{"--window", "16384", "--lowercase", "--force", "--debug", "-q", "--cdl", "game.cdl", "game.nes"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.nes", CodeDataLog: "game.cdl"},
				Flags:      options.Flags{
					BankWindowSize: 0x4000,
					Lowercase:      true,
					Force:          true,
					Debug:          true,
					Quiet:          true,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runApp(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptions_Errors(t *testing.T) {
	_, err := runApp(t)
	assert.True(t, errors.Is(err, ErrNoInput))

	_, err = runApp(t, "game.nes", "-o")
	assert.ErrorContains(t, err, "unexpected argument")

	_, err = runApp(t, "--cdl", "game.cdl", "--usage", "game.usage", "game.nes")
	assert.ErrorContains(t, err, "can not be loaded at the same time")
}

func TestActionError(t *testing.T) {
	actionErr := errors.New("processing failed")
	app := NewApp("test", func(options.Program) error {
		return actionErr
	})
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"retrodebug", "game.nes"})
	assert.True(t, errors.Is(err, actionErr))
}
