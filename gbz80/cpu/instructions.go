package cpu

import "github.com/corvid-labs/gbz80/bit"

// pushStack pushes v big-endian: high byte at SP-1, low byte at SP-2,
// leaving SP decremented by two, per spec.md §4.3.
func (c *CPU) pushStack(v uint16) {
	c.sp--
	c.bus.Write(c.sp, bit.High(v))
	c.sp--
	c.bus.Write(c.sp, bit.Low(v))
}

// popStack reads a little-endian word off the stack (low at SP, high at
// SP+1) and advances SP by two.
func (c *CPU) popStack() uint16 {
	low := c.bus.Read(c.sp)
	c.sp++
	high := c.bus.Read(c.sp)
	c.sp++
	return bit.Combine(high, low)
}

// addA adds v (and, if withCarry, the current carry flag) into A.
func (c *CPU) addA(v uint8, withCarry bool) {
	carry := uint16(0)
	if withCarry && c.flag(flagC) {
		carry = 1
	}
	result := uint16(c.a) + uint16(v) + carry
	c.setFlag(flagH, (c.a&0x0F)+(v&0x0F)+uint8(carry) > 0x0F)
	c.setFlag(flagC, result > 0xFF)
	c.a = uint8(result)
	c.setFlag(flagZ, c.a == 0)
	c.setFlag(flagN, false)
}

// subA subtracts v (and, if withCarry, the carry flag) from A. store
// controls whether the result is written back (false for CP).
func (c *CPU) subA(v uint8, withCarry bool, store bool) {
	carry := int16(0)
	if withCarry && c.flag(flagC) {
		carry = 1
	}
	result := int16(c.a) - int16(v) - carry
	c.setFlag(flagH, (int16(c.a)&0x0F)-(int16(v)&0x0F)-carry < 0)
	c.setFlag(flagC, result < 0)
	res8 := uint8(result)
	c.setFlag(flagZ, res8 == 0)
	c.setFlag(flagN, true)
	if store {
		c.a = res8
	}
}

func (c *CPU) andA(v uint8) {
	c.a &= v
	c.setFlag(flagZ, c.a == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, true)
	c.setFlag(flagC, false)
}

func (c *CPU) orA(v uint8) {
	c.a |= v
	c.setFlag(flagZ, c.a == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, false)
}

func (c *CPU) xorA(v uint8) {
	c.a ^= v
	c.setFlag(flagZ, c.a == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, false)
}

func (c *CPU) incVal(v uint8) uint8 {
	result := v + 1
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, v&0x0F == 0x0F)
	return result
}

func (c *CPU) decVal(v uint8) uint8 {
	result := v - 1
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, true)
	c.setFlag(flagH, v&0x0F == 0x00)
	return result
}

// addHL adds v into HL. Z is left untouched, per spec.md §4.3.
func (c *CPU) addHL(v uint16) {
	hl := c.hl()
	result := uint32(hl) + uint32(v)
	c.setFlag(flagH, (hl&0x0FFF)+(v&0x0FFF) > 0x0FFF)
	c.setFlag(flagC, result > 0xFFFF)
	c.setFlag(flagN, false)
	c.setHL(uint16(result))
}

// spPlusE8 computes SP + a fetched signed 8-bit displacement, with H/C
// evaluated against the raw unsigned byte per spec.md's documented rule for
// ADD SP,e8 and LD HL,SP+e8.
func (c *CPU) spPlusE8() uint16 {
	e8 := c.fetch8()
	result := uint16(int32(c.sp) + int32(int8(e8)))
	c.setFlag(flagH, (c.sp&0x0F)+(uint16(e8)&0x0F) > 0x0F)
	c.setFlag(flagC, (c.sp&0xFF)+(uint16(e8)&0xFF) > 0xFF)
	c.setFlag(flagZ, false)
	c.setFlag(flagN, false)
	return result
}

// daa applies the BCD correction described in spec.md §4.3.
func (c *CPU) daa() {
	a := c.a
	var adjust uint8
	carry := c.flag(flagC)

	if c.flag(flagH) || (!c.flag(flagN) && a&0x0F > 0x09) {
		adjust |= 0x06
	}
	if c.flag(flagC) || (!c.flag(flagN) && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	if c.flag(flagN) {
		a -= adjust
	} else {
		a += adjust
	}

	c.a = a
	c.setFlag(flagZ, a == 0)
	c.setFlag(flagH, false)
	c.setFlag(flagC, carry)
}

// Rotate/shift helpers used by both the accumulator-only opcodes (RLCA etc,
// which always clear Z) and the CB-prefixed r8 forms (which set Z on
// result), per spec.md §4.3.

func (c *CPU) rlc(v uint8) uint8 {
	carry := v >> 7
	result := v<<1 | carry
	c.setFlag(flagC, carry == 1)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	return result
}

func (c *CPU) rrc(v uint8) uint8 {
	carry := v & 1
	result := v>>1 | carry<<7
	c.setFlag(flagC, carry == 1)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	return result
}

func (c *CPU) rl(v uint8) uint8 {
	var oldCarry uint8
	if c.flag(flagC) {
		oldCarry = 1
	}
	newCarry := v >> 7
	result := v<<1 | oldCarry
	c.setFlag(flagC, newCarry == 1)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	return result
}

func (c *CPU) rr(v uint8) uint8 {
	var oldCarry uint8
	if c.flag(flagC) {
		oldCarry = 1
	}
	newCarry := v & 1
	result := v>>1 | oldCarry<<7
	c.setFlag(flagC, newCarry == 1)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	return result
}

func (c *CPU) sla(v uint8) uint8 {
	carry := v >> 7
	result := v << 1
	c.setFlag(flagC, carry == 1)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	return result
}

func (c *CPU) sra(v uint8) uint8 {
	carry := v & 1
	result := v>>1 | v&0x80
	c.setFlag(flagC, carry == 1)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	return result
}

func (c *CPU) srl(v uint8) uint8 {
	carry := v & 1
	result := v >> 1
	c.setFlag(flagC, carry == 1)
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	return result
}

func (c *CPU) swap(v uint8) uint8 {
	result := v<<4 | v>>4
	c.setFlag(flagZ, result == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, false)
	c.setFlag(flagC, false)
	return result
}

func (c *CPU) bitTest(n uint8, v uint8) {
	c.setFlag(flagZ, v&(1<<n) == 0)
	c.setFlag(flagN, false)
	c.setFlag(flagH, true)
}

// jr, jp, call, ret, rst implement the control-flow opcodes. Each fetches
// its own immediate operand (advancing PC past it) before deciding whether
// to override PC with the computed target, per spec.md §4.3.

func (c *CPU) jr(taken bool) int {
	e8 := int8(c.fetch8())
	if !taken {
		return 8
	}
	c.pc = uint16(int32(c.pc) + int32(e8))
	return 12
}

func (c *CPU) jp(taken bool) int {
	target := c.fetch16()
	if !taken {
		return 12
	}
	c.pc = target
	return 16
}

func (c *CPU) call(taken bool) int {
	target := c.fetch16()
	if !taken {
		return 12
	}
	c.pushStack(c.pc)
	c.pc = target
	return 24
}

func (c *CPU) ret(taken bool) int {
	if !taken {
		return 8
	}
	c.pc = c.popStack()
	return 20
}

func (c *CPU) retUnconditional() int {
	c.pc = c.popStack()
	return 16
}

func (c *CPU) rst(vector uint16) int {
	c.pushStack(c.pc)
	c.pc = vector
	return 16
}
