// Package disasm renders SM83 machine code as text, reusing the same
// opcode grouping the cpu package's execution switch decodes against
// (spec.md §2's "instruction table" component, exercised here for
// human-readable output instead of execution), per SPEC_FULL.md §11.
package disasm

import "fmt"

// Reader supplies bytes for disassembly; *bus.Bus and a raw ROM byte slice
// both satisfy it trivially.
type Reader interface {
	ReadByte(address uint16) uint8
}

var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}
var reg16Names = [4]string{"BC", "DE", "HL", "SP"}
var stackNames = [4]string{"BC", "DE", "HL", "AF"}
var condNames = [4]string{"NZ", "Z", "NC", "C"}
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}
var rotNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// Instruction is one decoded opcode: its mnemonic text and encoded length
// in bytes (including the opcode byte itself, and the CB prefix byte when
// present).
type Instruction struct {
	Text   string
	Length uint16
}

// Decode disassembles the instruction at address.
func Decode(r Reader, address uint16) Instruction {
	opcode := r.ReadByte(address)

	switch {
	case opcode == 0x76:
		return Instruction{"HALT", 1}
	case opcode >= 0x40 && opcode <= 0x7F:
		dst := reg8Names[(opcode>>3)&0x07]
		src := reg8Names[opcode&0x07]
		return Instruction{fmt.Sprintf("LD %s,%s", dst, src), 1}
	case opcode >= 0x80 && opcode <= 0xBF:
		return Instruction{aluNames[(opcode>>3)&0x07] + reg8Names[opcode&0x07], 1}
	}

	d8 := func() uint8 { return r.ReadByte(address + 1) }
	d16 := func() uint16 { return uint16(r.ReadByte(address+2))<<8 | uint16(r.ReadByte(address+1)) }
	e8 := func() int8 { return int8(d8()) }

	switch opcode {
	case 0x00:
		return Instruction{"NOP", 1}
	case 0x10:
		return Instruction{"STOP", 2}
	case 0x01, 0x11, 0x21, 0x31:
		return Instruction{fmt.Sprintf("LD %s,0x%04X", reg16Names[(opcode>>4)&0x03], d16()), 3}
	case 0x02:
		return Instruction{"LD (BC),A", 1}
	case 0x12:
		return Instruction{"LD (DE),A", 1}
	case 0x22:
		return Instruction{"LD (HL+),A", 1}
	case 0x32:
		return Instruction{"LD (HL-),A", 1}
	case 0x0A:
		return Instruction{"LD A,(BC)", 1}
	case 0x1A:
		return Instruction{"LD A,(DE)", 1}
	case 0x2A:
		return Instruction{"LD A,(HL+)", 1}
	case 0x3A:
		return Instruction{"LD A,(HL-)", 1}
	case 0x03, 0x13, 0x23, 0x33:
		return Instruction{"INC " + reg16Names[(opcode>>4)&0x03], 1}
	case 0x0B, 0x1B, 0x2B, 0x3B:
		return Instruction{"DEC " + reg16Names[(opcode>>4)&0x03], 1}
	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C:
		return Instruction{"INC " + reg8Names[(opcode>>3)&0x07], 1}
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D:
		return Instruction{"DEC " + reg8Names[(opcode>>3)&0x07], 1}
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E:
		return Instruction{fmt.Sprintf("LD %s,0x%02X", reg8Names[(opcode>>3)&0x07], d8()), 2}
	case 0x07:
		return Instruction{"RLCA", 1}
	case 0x0F:
		return Instruction{"RRCA", 1}
	case 0x17:
		return Instruction{"RLA", 1}
	case 0x1F:
		return Instruction{"RRA", 1}
	case 0x27:
		return Instruction{"DAA", 1}
	case 0x2F:
		return Instruction{"CPL", 1}
	case 0x37:
		return Instruction{"SCF", 1}
	case 0x3F:
		return Instruction{"CCF", 1}
	case 0x08:
		return Instruction{fmt.Sprintf("LD (0x%04X),SP", d16()), 3}
	case 0x09, 0x19, 0x29, 0x39:
		return Instruction{"ADD HL," + reg16Names[(opcode>>4)&0x03], 1}
	case 0x18:
		return Instruction{fmt.Sprintf("JR %d", e8()), 2}
	case 0x20, 0x28, 0x30, 0x38:
		return Instruction{fmt.Sprintf("JR %s,%d", condNames[(opcode>>3)&0x03], e8()), 2}
	case 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE:
		return Instruction{fmt.Sprintf("%s0x%02X", aluNames[(opcode>>3)&0x07], d8()), 2}
	case 0xC0, 0xC8, 0xD0, 0xD8:
		return Instruction{"RET " + condNames[(opcode>>3)&0x03], 1}
	case 0xC9:
		return Instruction{"RET", 1}
	case 0xD9:
		return Instruction{"RETI", 1}
	case 0xC2, 0xCA, 0xD2, 0xDA:
		return Instruction{fmt.Sprintf("JP %s,0x%04X", condNames[(opcode>>3)&0x03], d16()), 3}
	case 0xC3:
		return Instruction{fmt.Sprintf("JP 0x%04X", d16()), 3}
	case 0xE9:
		return Instruction{"JP HL", 1}
	case 0xC4, 0xCC, 0xD4, 0xDC:
		return Instruction{fmt.Sprintf("CALL %s,0x%04X", condNames[(opcode>>3)&0x03], d16()), 3}
	case 0xCD:
		return Instruction{fmt.Sprintf("CALL 0x%04X", d16()), 3}
	case 0xC1, 0xD1, 0xE1, 0xF1:
		return Instruction{"POP " + stackNames[(opcode>>4)&0x03], 1}
	case 0xC5, 0xD5, 0xE5, 0xF5:
		return Instruction{"PUSH " + stackNames[(opcode>>4)&0x03], 1}
	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF:
		return Instruction{fmt.Sprintf("RST 0x%02X", opcode&0x38), 1}
	case 0xE0:
		return Instruction{fmt.Sprintf("LDH (0xFF00+0x%02X),A", d8()), 2}
	case 0xF0:
		return Instruction{fmt.Sprintf("LDH A,(0xFF00+0x%02X)", d8()), 2}
	case 0xE2:
		return Instruction{"LD (C),A", 1}
	case 0xF2:
		return Instruction{"LD A,(C)", 1}
	case 0xEA:
		return Instruction{fmt.Sprintf("LD (0x%04X),A", d16()), 3}
	case 0xFA:
		return Instruction{fmt.Sprintf("LD A,(0x%04X)", d16()), 3}
	case 0xE8:
		return Instruction{fmt.Sprintf("ADD SP,%d", e8()), 2}
	case 0xF8:
		return Instruction{fmt.Sprintf("LD HL,SP+%d", e8()), 2}
	case 0xF9:
		return Instruction{"LD SP,HL", 1}
	case 0xF3:
		return Instruction{"DI", 1}
	case 0xFB:
		return Instruction{"EI", 1}
	case 0xCB:
		return decodeCB(r.ReadByte(address + 1))
	default:
		return Instruction{fmt.Sprintf("DB 0x%02X", opcode), 1}
	}
}

func decodeCB(opcode uint8) Instruction {
	r := reg8Names[opcode&0x07]
	group := opcode >> 6
	bitIndex := (opcode >> 3) & 0x07

	var text string
	switch group {
	case 0:
		text = rotNames[bitIndex] + " " + r
	case 1:
		text = fmt.Sprintf("BIT %d,%s", bitIndex, r)
	case 2:
		text = fmt.Sprintf("RES %d,%s", bitIndex, r)
	default:
		text = fmt.Sprintf("SET %d,%s", bitIndex, r)
	}
	return Instruction{text, 2}
}
