package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-labs/gbz80/bus"
)

func TestPushPopStack(t *testing.T) {
	c := New(bus.New())
	c.sp = 0xFFFE

	c.pushStack(0x0102)
	assert.Equal(t, uint16(0xFFFC), c.sp)

	assert.Equal(t, uint16(0x0102), c.popStack())
	assert.Equal(t, uint16(0xFFFE), c.sp)
}

// S1: A=0x3A, B=0xC6, F=0x00 -> ADD A,B -> A=0x00, F=0xB0 (Z=1,H=1,C=1,N=0).
func TestAddA_S1(t *testing.T) {
	c := New(bus.New())
	c.a = 0x3A
	c.f = 0x00

	c.addA(0xC6, false)

	assert.Equal(t, uint8(0x00), c.a)
	assert.Equal(t, uint8(0xB0), c.f)
}

// S2: A=0x3E, F=0x10 (C=1) -> SBC A,0x0F -> A=0x2E, F=0x60 (N=1,H=1).
func TestSubA_S2(t *testing.T) {
	c := New(bus.New())
	c.a = 0x3E
	c.f = flagC

	c.subA(0x0F, true, true)

	assert.Equal(t, uint8(0x2E), c.a)
	assert.Equal(t, uint8(0x60), c.f)
}

// S3: HL=0x8A23, BC=0x0605, F=0x00 -> ADD HL,BC -> HL=0x9028, H=1, C=0, N=0, Z unchanged.
func TestAddHL_S3(t *testing.T) {
	c := New(bus.New())
	c.setHL(0x8A23)
	c.setBC(0x0605)
	c.setFlag(flagZ, true)
	c.f &^= flagN | flagH | flagC

	c.addHL(c.bc())

	assert.Equal(t, uint16(0x9028), c.hl())
	assert.True(t, c.flag(flagH))
	assert.False(t, c.flag(flagC))
	assert.False(t, c.flag(flagN))
	assert.True(t, c.flag(flagZ), "ADD HL,rr never touches Z")
}

func TestIncDecVal(t *testing.T) {
	c := New(bus.New())

	c.f = 0
	assert.Equal(t, uint8(0x00), c.incVal(0xFF))
	assert.True(t, c.flag(flagZ))
	assert.True(t, c.flag(flagH))
	assert.False(t, c.flag(flagN))

	c.f = 0
	assert.Equal(t, uint8(0x0F), c.decVal(0x10))
	assert.True(t, c.flag(flagH))
	assert.True(t, c.flag(flagN))
}

func TestDAA_AfterBCDAddition(t *testing.T) {
	c := New(bus.New())
	// 0x45 + 0x38 in BCD should read 83, binary addition gives 0x7D.
	c.a = 0x45
	c.f = 0
	c.addA(0x38, false)
	assert.Equal(t, uint8(0x7D), c.a)

	c.daa()
	assert.Equal(t, uint8(0x83), c.a)
	assert.False(t, c.flag(flagC))
}

func TestDAA_AfterBCDSubtraction(t *testing.T) {
	c := New(bus.New())
	c.a = 0x83
	c.f = 0
	c.subA(0x38, false, true)

	c.daa()
	assert.Equal(t, uint8(0x45), c.a)
}

func TestRotatesAndShifts(t *testing.T) {
	c := New(bus.New())

	c.f = 0
	assert.Equal(t, uint8(0x01), c.rlc(0x80))
	assert.True(t, c.flag(flagC))

	c.f = 0
	assert.Equal(t, uint8(0x80), c.rrc(0x01))
	assert.True(t, c.flag(flagC))

	c.f = 0
	assert.Equal(t, uint8(0xAA), c.sla(0x55))
	assert.False(t, c.flag(flagC))

	c.f = 0
	assert.Equal(t, uint8(0xC0), c.sra(0x80))
	assert.False(t, c.flag(flagC))

	c.f = 0
	assert.Equal(t, uint8(0x40), c.srl(0x80))
	assert.False(t, c.flag(flagC))

	assert.Equal(t, uint8(0x21), c.swap(0x12))
}

// addFlags independently derives the Z/N/H/C the SM83 documents for
// ADD/ADC A,r, given a, the operand and a carry-in of 0 or 1.
func addFlags(a, v, cin uint8) (result, f uint8) {
	sum := uint16(a) + uint16(v) + uint16(cin)
	result = uint8(sum)
	if result == 0 {
		f |= flagZ
	}
	if (a&0x0F)+(v&0x0F)+cin > 0x0F {
		f |= flagH
	}
	if sum > 0xFF {
		f |= flagC
	}
	return result, f
}

// subFlags independently derives the Z/N/H/C the SM83 documents for
// SUB/SBC/CP A,r, given a, the operand and a carry-in of 0 or 1.
func subFlags(a, v, cin uint8) (result, f uint8) {
	diff := int16(a) - int16(v) - int16(cin)
	result = uint8(diff)
	f = flagN
	if result == 0 {
		f |= flagZ
	}
	if (int16(a)&0x0F)-(int16(v)&0x0F)-int16(cin) < 0 {
		f |= flagH
	}
	if diff < 0 {
		f |= flagC
	}
	return result, f
}

// spec.md §8 property #1: for every 8-bit pair (a,b) and every carry-in,
// ADD/ADC A,r must match the documented Z/N/H/C flag law exactly.
func TestAddA_ExhaustiveFlagLaw(t *testing.T) {
	c := New(bus.New())

	for cin := uint8(0); cin <= 1; cin++ {
		withCarry := cin == 1
		for a := 0; a <= 0xFF; a++ {
			for b := 0; b <= 0xFF; b++ {
				wantResult, wantFlags := addFlags(uint8(a), uint8(b), cin)

				c.a = uint8(a)
				c.f = 0
				if withCarry {
					c.f = flagC
				}
				c.addA(uint8(b), withCarry)

				if c.a != wantResult || c.f != wantFlags {
					t.Fatalf("addA(%#02x,%#02x,carry=%v) = (%#02x,%#02x), want (%#02x,%#02x)",
						a, b, withCarry, c.a, c.f, wantResult, wantFlags)
				}
			}
		}
	}
}

// spec.md §8 property #2: for every 8-bit pair (a,b) and every carry-in,
// SUB/SBC/CP A,r must match the documented Z/N/H/C flag law exactly.
func TestSubA_ExhaustiveFlagLaw(t *testing.T) {
	c := New(bus.New())

	for cin := uint8(0); cin <= 1; cin++ {
		withCarry := cin == 1
		for a := 0; a <= 0xFF; a++ {
			for b := 0; b <= 0xFF; b++ {
				wantResult, wantFlags := subFlags(uint8(a), uint8(b), cin)

				// store=true (SUB/SBC): A is overwritten.
				c.a = uint8(a)
				c.f = 0
				if withCarry {
					c.f = flagC
				}
				c.subA(uint8(b), withCarry, true)

				if c.a != wantResult || c.f != wantFlags {
					t.Fatalf("subA(%#02x,%#02x,carry=%v,store) = (%#02x,%#02x), want (%#02x,%#02x)",
						a, b, withCarry, c.a, c.f, wantResult, wantFlags)
				}

				// store=false (CP): A must be left untouched, flags still apply.
				c.a = uint8(a)
				c.f = 0
				if withCarry {
					c.f = flagC
				}
				c.subA(uint8(b), withCarry, false)

				if c.a != uint8(a) || c.f != wantFlags {
					t.Fatalf("subA(%#02x,%#02x,carry=%v,cp) = (%#02x,%#02x), want (%#02x,%#02x)",
						a, b, withCarry, c.a, c.f, a, wantFlags)
				}
			}
		}
	}
}

// spec.md §8 property #3: AND/OR/XOR A,r must match their fixed flag law
// (Z from the result, N/H/C pinned per operation) for every 8-bit pair.
func TestBitwiseA_ExhaustiveFlagLaw(t *testing.T) {
	c := New(bus.New())

	for a := 0; a <= 0xFF; a++ {
		for b := 0; b <= 0xFF; b++ {
			c.a = uint8(a)
			c.f = 0xFF // flags must end up exactly as documented, not merely ORed
			c.andA(uint8(b))
			want := uint8(a) & uint8(b)
			wantFlags := flagH
			if want == 0 {
				wantFlags |= flagZ
			}
			if c.a != want || c.f != wantFlags {
				t.Fatalf("andA(%#02x,%#02x) = (%#02x,%#02x), want (%#02x,%#02x)", a, b, c.a, c.f, want, wantFlags)
			}

			c.a = uint8(a)
			c.f = 0xFF
			c.orA(uint8(b))
			want = uint8(a) | uint8(b)
			wantFlags = 0
			if want == 0 {
				wantFlags = flagZ
			}
			if c.a != want || c.f != wantFlags {
				t.Fatalf("orA(%#02x,%#02x) = (%#02x,%#02x), want (%#02x,%#02x)", a, b, c.a, c.f, want, wantFlags)
			}

			c.a = uint8(a)
			c.f = 0xFF
			c.xorA(uint8(b))
			want = uint8(a) ^ uint8(b)
			wantFlags = 0
			if want == 0 {
				wantFlags = flagZ
			}
			if c.a != want || c.f != wantFlags {
				t.Fatalf("xorA(%#02x,%#02x) = (%#02x,%#02x), want (%#02x,%#02x)", a, b, c.a, c.f, want, wantFlags)
			}
		}
	}
}

// bcd packs a two-digit decimal value (0..99) into its BCD byte encoding.
func bcd(n int) uint8 {
	return uint8((n/10)<<4 | (n % 10))
}

// spec.md §8: DAA must correct a binary addition back to its BCD result for
// every pair of two-digit decimal values, including the 100-wraparound case.
func TestDAA_ExhaustiveRoundTripOverAllBCDAdditionPairs(t *testing.T) {
	c := New(bus.New())

	for a := 0; a <= 99; a++ {
		for b := 0; b <= 99; b++ {
			c.a = bcd(a)
			c.f = 0
			c.addA(bcd(b), false)

			c.daa()

			sum := a + b
			wantCarry := sum >= 100
			want := bcd(sum % 100)
			if c.a != want {
				t.Fatalf("DAA(%d+%d): A=%#02x, want %#02x", a, b, c.a, want)
			}
			if c.flag(flagC) != wantCarry {
				t.Fatalf("DAA(%d+%d): carry=%v, want %v", a, b, c.flag(flagC), wantCarry)
			}
		}
	}
}

// spec.md §8: DAA must correct a binary subtraction back to its BCD result
// for every non-negative two-digit decimal pair.
func TestDAA_ExhaustiveRoundTripOverAllBCDSubtractionPairs(t *testing.T) {
	c := New(bus.New())

	for a := 0; a <= 99; a++ {
		for b := 0; b <= a; b++ {
			c.a = bcd(a)
			c.f = 0
			c.subA(bcd(b), false, true)

			c.daa()

			want := bcd(a - b)
			if c.a != want {
				t.Fatalf("DAA(%d-%d): A=%#02x, want %#02x", a, b, c.a, want)
			}
		}
	}
}

// spec.md §8: RLC/RRC are mutual inverses and SWAP is its own inverse, for
// every possible byte value.
func TestRotatesAndSwap_ExhaustiveInverseIdentities(t *testing.T) {
	c := New(bus.New())

	for v := 0; v <= 0xFF; v++ {
		c.f = 0
		if got := c.rrc(c.rlc(uint8(v))); got != uint8(v) {
			t.Fatalf("rrc(rlc(%#02x)) = %#02x, want %#02x", v, got, v)
		}

		c.f = 0
		if got := c.rlc(c.rrc(uint8(v))); got != uint8(v) {
			t.Fatalf("rlc(rrc(%#02x)) = %#02x, want %#02x", v, got, v)
		}

		if got := c.swap(c.swap(uint8(v))); got != uint8(v) {
			t.Fatalf("swap(swap(%#02x)) = %#02x, want %#02x", v, got, v)
		}
	}
}

// spec.md §8: RL/RR are mutual inverses through the carry flag they rotate
// through, for every byte value and starting carry state.
func TestRotatesThroughCarry_ExhaustiveInverseIdentities(t *testing.T) {
	c := New(bus.New())

	for v := 0; v <= 0xFF; v++ {
		for _, c0 := range []bool{false, true} {
			c.setFlag(flagC, c0)
			r1 := c.rl(uint8(v))
			r2 := c.rr(r1)
			if r2 != uint8(v) {
				t.Fatalf("rr(rl(%#02x, carry=%v)) = %#02x, want %#02x", v, c0, r2, v)
			}
			if c.flag(flagC) != c0 {
				t.Fatalf("carry after rr(rl(%#02x, carry=%v)) = %v, want %v", v, c0, c.flag(flagC), c0)
			}
		}
	}
}

func TestBitTest(t *testing.T) {
	c := New(bus.New())

	c.f = flagC // BIT preserves C
	c.bitTest(3, 0x08)
	assert.False(t, c.flag(flagZ))
	assert.False(t, c.flag(flagN))
	assert.True(t, c.flag(flagH))
	assert.True(t, c.flag(flagC))

	c.bitTest(3, 0x00)
	assert.True(t, c.flag(flagZ))
}
