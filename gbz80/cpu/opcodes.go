package cpu

// execute decodes and runs one unprefixed opcode, returning the T-cycles
// consumed. The LD r,r' block (0x40-0x7F) and the ALU-A,r block (0x80-0xBF)
// are fully regular in the SM83's encoding, so they're handled generically
// via reg8 rather than as 128 discrete cases; everything else is decoded
// explicitly below, grouped the way spec.md §2's instruction table lists
// them.
func execute(c *CPU, opcode uint8) int {
	switch {
	case opcode == 0x76:
		c.halt()
		return 4
	case opcode >= 0x40 && opcode <= 0x7F:
		dst := reg8((opcode >> 3) & 0x07)
		src := reg8(opcode & 0x07)
		c.set8(dst, c.get8(src))
		if dst == regHLInd || src == regHLInd {
			return 8
		}
		return 4
	case opcode >= 0x80 && opcode <= 0xBF:
		return c.execAluR(opcode, reg8(opcode&0x07))
	}

	switch opcode {
	case 0x00: // NOP
		return 4
	case 0x10: // STOP
		c.fetch8() // the second STOP byte, conventionally 0x00, is discarded
		return 4
	case 0x01, 0x11, 0x21, 0x31: // LD rr,d16
		c.set16(regPair((opcode>>4)&0x03), c.fetch16())
		return 12
	case 0x02: // LD (BC),A
		c.bus.Write(c.bc(), c.a)
		return 8
	case 0x12: // LD (DE),A
		c.bus.Write(c.de(), c.a)
		return 8
	case 0x22: // LD (HL+),A
		c.bus.Write(c.hl(), c.a)
		c.setHL(c.hl() + 1)
		return 8
	case 0x32: // LD (HL-),A
		c.bus.Write(c.hl(), c.a)
		c.setHL(c.hl() - 1)
		return 8
	case 0x0A: // LD A,(BC)
		c.a = c.bus.Read(c.bc())
		return 8
	case 0x1A: // LD A,(DE)
		c.a = c.bus.Read(c.de())
		return 8
	case 0x2A: // LD A,(HL+)
		c.a = c.bus.Read(c.hl())
		c.setHL(c.hl() + 1)
		return 8
	case 0x3A: // LD A,(HL-)
		c.a = c.bus.Read(c.hl())
		c.setHL(c.hl() - 1)
		return 8
	case 0x03, 0x13, 0x23, 0x33: // INC rr
		p := regPair((opcode >> 4) & 0x03)
		c.set16(p, c.get16(p)+1)
		return 8
	case 0x0B, 0x1B, 0x2B, 0x3B: // DEC rr
		p := regPair((opcode >> 4) & 0x03)
		c.set16(p, c.get16(p)-1)
		return 8
	case 0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C: // INC r
		r := reg8((opcode >> 3) & 0x07)
		c.set8(r, c.incVal(c.get8(r)))
		if r == regHLInd {
			return 12
		}
		return 4
	case 0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D: // DEC r
		r := reg8((opcode >> 3) & 0x07)
		c.set8(r, c.decVal(c.get8(r)))
		if r == regHLInd {
			return 12
		}
		return 4
	case 0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E: // LD r,d8
		r := reg8((opcode >> 3) & 0x07)
		c.set8(r, c.fetch8())
		if r == regHLInd {
			return 12
		}
		return 8
	case 0x07: // RLCA
		c.a = c.rlc(c.a)
		c.setFlag(flagZ, false)
		return 4
	case 0x0F: // RRCA
		c.a = c.rrc(c.a)
		c.setFlag(flagZ, false)
		return 4
	case 0x17: // RLA
		c.a = c.rl(c.a)
		c.setFlag(flagZ, false)
		return 4
	case 0x1F: // RRA
		c.a = c.rr(c.a)
		c.setFlag(flagZ, false)
		return 4
	case 0x27: // DAA
		c.daa()
		return 4
	case 0x2F: // CPL
		c.a = ^c.a
		c.setFlag(flagN, true)
		c.setFlag(flagH, true)
		return 4
	case 0x37: // SCF
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, true)
		return 4
	case 0x3F: // CCF
		c.setFlag(flagN, false)
		c.setFlag(flagH, false)
		c.setFlag(flagC, !c.flag(flagC))
		return 4
	case 0x08: // LD (a16),SP
		addr16 := c.fetch16()
		c.bus.Write(addr16, uint8(c.sp))
		c.bus.Write(addr16+1, uint8(c.sp>>8))
		return 20
	case 0x09, 0x19, 0x29, 0x39: // ADD HL,rr
		c.addHL(c.get16(regPair((opcode >> 4) & 0x03)))
		return 8
	case 0x18: // JR e8
		return c.jr(true)
	case 0x20: // JR NZ,e8
		return c.jr(!c.flag(flagZ))
	case 0x28: // JR Z,e8
		return c.jr(c.flag(flagZ))
	case 0x30: // JR NC,e8
		return c.jr(!c.flag(flagC))
	case 0x38: // JR C,e8
		return c.jr(c.flag(flagC))

	case 0xC6: // ADD A,d8
		c.addA(c.fetch8(), false)
		return 8
	case 0xCE: // ADC A,d8
		c.addA(c.fetch8(), true)
		return 8
	case 0xD6: // SUB d8
		c.subA(c.fetch8(), false, true)
		return 8
	case 0xDE: // SBC A,d8
		c.subA(c.fetch8(), true, true)
		return 8
	case 0xE6: // AND d8
		c.andA(c.fetch8())
		return 8
	case 0xEE: // XOR d8
		c.xorA(c.fetch8())
		return 8
	case 0xF6: // OR d8
		c.orA(c.fetch8())
		return 8
	case 0xFE: // CP d8
		c.subA(c.fetch8(), false, false)
		return 8

	case 0xC0: // RET NZ
		return c.ret(!c.flag(flagZ))
	case 0xC8: // RET Z
		return c.ret(c.flag(flagZ))
	case 0xD0: // RET NC
		return c.ret(!c.flag(flagC))
	case 0xD8: // RET C
		return c.ret(c.flag(flagC))
	case 0xC9: // RET
		return c.retUnconditional()
	case 0xD9: // RETI
		c.reti()
		return 16

	case 0xC2: // JP NZ,a16
		return c.jp(!c.flag(flagZ))
	case 0xCA: // JP Z,a16
		return c.jp(c.flag(flagZ))
	case 0xD2: // JP NC,a16
		return c.jp(!c.flag(flagC))
	case 0xDA: // JP C,a16
		return c.jp(c.flag(flagC))
	case 0xC3: // JP a16
		return c.jp(true)
	case 0xE9: // JP HL
		c.pc = c.hl()
		return 4

	case 0xC4: // CALL NZ,a16
		return c.call(!c.flag(flagZ))
	case 0xCC: // CALL Z,a16
		return c.call(c.flag(flagZ))
	case 0xD4: // CALL NC,a16
		return c.call(!c.flag(flagC))
	case 0xDC: // CALL C,a16
		return c.call(c.flag(flagC))
	case 0xCD: // CALL a16
		return c.call(true)

	case 0xC1, 0xD1, 0xE1, 0xF1: // POP rr
		c.setStackPair(stackPair((opcode>>4)&0x03), c.popStack())
		return 12
	case 0xC5, 0xD5, 0xE5, 0xF5: // PUSH rr
		c.pushStack(c.getStackPair(stackPair((opcode >> 4) & 0x03)))
		return 16

	case 0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF: // RST n
		return c.rst(uint16(opcode & 0x38))

	case 0xE0: // LDH (a8),A
		c.bus.Write(0xFF00+uint16(c.fetch8()), c.a)
		return 12
	case 0xF0: // LDH A,(a8)
		c.a = c.bus.Read(0xFF00 + uint16(c.fetch8()))
		return 12
	case 0xE2: // LD (C),A
		c.bus.Write(0xFF00+uint16(c.c), c.a)
		return 8
	case 0xF2: // LD A,(C)
		c.a = c.bus.Read(0xFF00 + uint16(c.c))
		return 8
	case 0xEA: // LD (a16),A
		c.bus.Write(c.fetch16(), c.a)
		return 16
	case 0xFA: // LD A,(a16)
		c.a = c.bus.Read(c.fetch16())
		return 16

	case 0xE8: // ADD SP,e8
		c.sp = c.spPlusE8()
		return 16
	case 0xF8: // LD HL,SP+e8
		c.setHL(c.spPlusE8())
		return 12
	case 0xF9: // LD SP,HL
		c.sp = c.hl()
		return 8

	case 0xF3: // DI
		c.di()
		return 4
	case 0xFB: // EI
		c.ei()
		return 4

	case 0xCB:
		cbOpcode := c.fetch8()
		return executeCB(c, cbOpcode)

	default:
		// Unassigned opcode (D3, DB, DD, E3, E4, EB, EC, ED, F4, FC, FD):
		// treat as a decode fault, logged and consumed as a 4-cycle NOP.
		c.bus.LogDecodeFault(c.pc-1, opcode)
		return 4
	}
}

// execAluR dispatches the 0x80-0xBF block: 8 operations x 8 r8 operands.
func (c *CPU) execAluR(opcode uint8, src reg8) int {
	v := c.get8(src)
	cycles := 4
	if src == regHLInd {
		cycles = 8
	}

	switch (opcode >> 3) & 0x07 {
	case 0: // ADD A,r
		c.addA(v, false)
	case 1: // ADC A,r
		c.addA(v, true)
	case 2: // SUB r
		c.subA(v, false, true)
	case 3: // SBC A,r
		c.subA(v, true, true)
	case 4: // AND r
		c.andA(v)
	case 5: // XOR r
		c.xorA(v)
	case 6: // OR r
		c.orA(v)
	case 7: // CP r
		c.subA(v, false, false)
	}
	return cycles
}
