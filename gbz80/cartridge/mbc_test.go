package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func romOfBanks(banks int) []uint8 {
	rom := make([]uint8, banks*0x4000)
	for bank := 0; bank < banks; bank++ {
		rom[bank*0x4000] = uint8(bank) // bank's first byte identifies it
	}
	return rom
}

// S6: write 0x00 to 0x2000 on MBC1 -> current_rom_bank becomes 1 (not 0);
// read at 0x4000 returns the cartridge byte at offset 0x4000 (bank 1).
func TestMBC1_BankZeroAliasesToOne_S6(t *testing.T) {
	m := newMBC1(romOfBanks(4), 0)

	m.WriteROM(0x2000, 0x00)

	assert.Equal(t, 1, m.currentROMBank())
	assert.Equal(t, uint8(1), m.ReadROM(0x4000))
}

func TestMBC1_SwitchesROMBank(t *testing.T) {
	m := newMBC1(romOfBanks(4), 0)

	m.WriteROM(0x2000, 0x03)

	assert.Equal(t, 3, m.currentROMBank())
	assert.Equal(t, uint8(3), m.ReadROM(0x4000))
}

func TestMBC1_Bank0to3FFFIsAlwaysBankZero(t *testing.T) {
	m := newMBC1(romOfBanks(4), 0)
	m.WriteROM(0x2000, 0x03)

	assert.Equal(t, uint8(0), m.ReadROM(0x0000))
}

func TestMBC1_RAMDisabledByDefault(t *testing.T) {
	m := newMBC1(romOfBanks(2), 1)

	m.WriteRAM(0xA000, 0x42)

	assert.Equal(t, uint8(0xFF), m.ReadRAM(0xA000))
}

func TestMBC1_RAMEnableLatch(t *testing.T) {
	m := newMBC1(romOfBanks(2), 1)

	m.WriteROM(0x0000, 0x0A) // enable
	m.WriteRAM(0xA000, 0x42)
	assert.Equal(t, uint8(0x42), m.ReadRAM(0xA000))

	m.WriteROM(0x0000, 0x00) // disable
	assert.Equal(t, uint8(0xFF), m.ReadRAM(0xA000))
}

func TestMBC1_RAMBankingModeSelectsRAMBank(t *testing.T) {
	m := newMBC1(romOfBanks(2), 4)
	m.WriteROM(0x0000, 0x0A)   // enable RAM
	m.WriteROM(0x6000, 0x01)   // RAM banking mode
	m.WriteROM(0x4000, 0x02)   // select RAM bank 2

	m.WriteRAM(0xA000, 0x77)
	assert.Equal(t, 2, m.currentRAMBank())
	assert.Equal(t, uint8(0x77), m.ReadRAM(0xA000))

	m.WriteROM(0x4000, 0x00) // back to bank 0
	assert.Equal(t, uint8(0xFF), m.ReadRAM(0xA000), "bank 0's byte was never written")
}

func TestMBC2_RAMIsNibbleWide(t *testing.T) {
	m := newMBC2(romOfBanks(2))

	m.WriteROM(0x0000, 0x0A) // enable, bit 8 of address clear
	m.WriteRAM(0xA000, 0xFF)

	assert.Equal(t, uint8(0xFF), m.ReadRAM(0xA000), "the low nibble is set and read back with the high nibble forced to 1")
}

func TestMBC2_BankSelectRequiresAddressBit8(t *testing.T) {
	m := newMBC2(romOfBanks(4))

	m.WriteROM(0x2000, 0x02) // bit 8 of address (0x100) clear: ignored
	assert.Equal(t, uint8(1), m.romBank)

	m.WriteROM(0x2100, 0x02) // bit 8 set: applied
	assert.Equal(t, uint8(2), m.romBank)
}

func TestNoMBC_FlatROMNoBanking(t *testing.T) {
	m := newNoMBC(romOfBanks(2))

	assert.Equal(t, uint8(0), m.ReadROM(0x0000))
	assert.Equal(t, uint8(1), m.ReadROM(0x4000))

	m.WriteRAM(0xA010, 0x55)
	assert.Equal(t, uint8(0x55), m.ReadRAM(0xA010))
}
