package debugger

import (
	"testing"

	"github.com/retroenv/retrodebug/internal/codedata"
	"github.com/retroenv/retrogolib/assert"
)

func TestSetFlagsRebuildsOnCaseChange(t *testing.T) {
	d, _ := newTestDebugger(t)
	formatter := &mockFormatter{}
	d.formatter = formatter

	d.SetFlags(FlagBreakOnBrk)
	assert.Empty(t, formatter.builds)
	assert.True(t, d.CheckFlag(FlagBreakOnBrk))

	d.SetFlags(FlagBreakOnBrk | FlagLowerCaseOpcodes)
	assert.Equal(t, []bool{true}, formatter.builds)

	d.SetFlags(FlagLowerCaseOpcodes | FlagShowEffectiveAddresses)
	assert.Equal(t, []bool{true}, formatter.builds)
	assert.False(t, d.CheckFlag(FlagBreakOnBrk))

	d.SetFlags(0)
	assert.Equal(t, []bool{true, false}, formatter.builds)
	assert.Equal(t, Flags(0), d.Flags())
}

func TestSetFlagsChangesRenderedCase(t *testing.T) {
	d, _ := newTestDebugger(t)
	d.CodeDataMap().SetPrgFlag(0, codedata.Code)

	length := 0
	code, changed := d.Code(&length)
	assert.True(t, changed)
	assert.Contains(t, code, "NOP")

	d.SetFlags(FlagLowerCaseOpcodes)
	code, changed = d.Code(&length)
	assert.True(t, changed)
	assert.Contains(t, code, "nop")
}
