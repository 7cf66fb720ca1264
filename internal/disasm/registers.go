package disasm

import (
	"github.com/retroenv/retrogolib/arch/cpu/m6502"
	"github.com/retroenv/retrogolib/arch/system/nes"
	"github.com/retroenv/retrogolib/arch/system/nes/register"
)

// registerNames maps the NES I/O register addresses to their names. Addresses with
// different read and write registers list both names.
var registerNames = buildRegisterNames(
	register.PPUAddressToName,
	register.APUAddressToName,
	register.ControllerAddressToName,
)

func buildRegisterNames(sources ...map[uint16]m6502.AccessModeConstant) map[uint16]string {
	names := map[uint16]string{}
	for _, source := range sources {
		for address, constant := range source {
			// PPU bus addresses such as the palette start are not CPU registers
			if address > 0x2007 && address < nes.IORegisterStartAddress {
				continue
			}
			existing, ok := names[address]
			switch {
			case !ok:
				names[address] = constant.Constant
			case existing != constant.Constant:
				names[address] = existing + "/" + constant.Constant
			}
		}
	}
	return names
}
