package cpu

// executeCB decodes and runs one CB-prefixed opcode. The whole 256-entry
// space is fully regular: bits 6-7 select the operation group, bits 3-5
// select the bit index (BIT/RES/SET group) or the rotate/shift variant, and
// bits 0-2 select the r8 operand, per spec.md §2/§4.3.
func executeCB(c *CPU, opcode uint8) int {
	r := reg8(opcode & 0x07)
	group := opcode >> 6

	if group == 0 {
		v := c.get8(r)
		switch (opcode >> 3) & 0x07 {
		case 0:
			v = c.rlc(v)
		case 1:
			v = c.rrc(v)
		case 2:
			v = c.rl(v)
		case 3:
			v = c.rr(v)
		case 4:
			v = c.sla(v)
		case 5:
			v = c.sra(v)
		case 6:
			v = c.swap(v)
		case 7:
			v = c.srl(v)
		}
		c.set8(r, v)
		if r == regHLInd {
			return 16
		}
		return 8
	}

	bitIndex := (opcode >> 3) & 0x07

	switch group {
	case 1: // BIT n,r
		c.bitTest(bitIndex, c.get8(r))
		if r == regHLInd {
			return 12
		}
		return 8
	case 2: // RES n,r
		c.set8(r, c.get8(r)&^(1<<bitIndex))
	default: // SET n,r
		c.set8(r, c.get8(r)|(1<<bitIndex))
	}

	if r == regHLInd {
		return 16
	}
	return 8
}
