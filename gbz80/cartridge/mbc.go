package cartridge

// MBC is the interface the bus uses to read/write the ROM and external RAM
// windows (0000-7FFF, A000-BFFF); all bank-switch side effects live behind
// it, per spec.md §4.1.
type MBC interface {
	ReadROM(addr uint16) uint8
	WriteROM(addr uint16, value uint8)
	ReadRAM(addr uint16) uint8
	WriteRAM(addr uint16, value uint8)
}

// New builds the MBC implementation for a decoded cartridge.
func New(c *Cartridge) (MBC, error) {
	switch c.Kind {
	case None:
		return newNoMBC(c.Data), nil
	case MBC1:
		return newMBC1(c.Data, c.RAMBankCount), nil
	case MBC2:
		return newMBC2(c.Data), nil
	default:
		return nil, &UnsupportedError{Field: "cartridge type", Value: uint8(c.Kind)}
	}
}

// noMBC serves cartridges with no bank-switching hardware: ROM is flat, and
// A000-BFFF is a single always-enabled 8 KiB RAM bank, present whatever the
// header's RAM size byte says.
type noMBC struct {
	rom []uint8
	ram []uint8
}

func newNoMBC(rom []uint8) *noMBC {
	return &noMBC{rom: rom, ram: make([]uint8, 0x2000)}
}

func (m *noMBC) ReadROM(addr uint16) uint8 {
	if int(addr) >= len(m.rom) {
		return 0xFF
	}
	return m.rom[addr]
}

func (m *noMBC) WriteROM(addr uint16, value uint8) {}

func (m *noMBC) ReadRAM(addr uint16) uint8 {
	return m.ram[addr-0xA000]
}

func (m *noMBC) WriteRAM(addr uint16, value uint8) {
	m.ram[addr-0xA000] = value
}

// mbc1 implements the MBC1 banking scheme described in spec.md §4.1: a 5-bit
// low ROM-bank-number register, a 2-bit register shared between the RAM
// bank number and the upper ROM bank bits depending on banking mode, and a
// RAM-enable latch gated on the low nibble of any write to 0000-1FFF.
type mbc1 struct {
	rom []uint8
	ram []uint8

	ramEnabled  bool
	romBankLow  uint8 // 5 bits, written at 2000-3FFF
	bankHiOrRAM uint8 // 2 bits, written at 4000-5FFF
	bankingMode uint8 // 0 = ROM banking mode, 1 = RAM banking mode

	ramBankCount uint8
}

func newMBC1(rom []uint8, ramBanks int) *mbc1 {
	return &mbc1{
		rom:          rom,
		ram:          make([]uint8, ramBanks*0x2000),
		romBankLow:   1,
		ramBankCount: uint8(ramBanks),
	}
}

func (m *mbc1) currentROMBank() int {
	bank := m.romBankLow & 0x1F
	if bank == 0 {
		bank = 1
	}
	if m.romBankCount() > 32 {
		bank |= m.bankHiOrRAM << 5
	}
	return int(bank)
}

func (m *mbc1) romBankCount() int {
	return len(m.rom) / 0x4000
}

func (m *mbc1) currentRAMBank() int {
	if m.bankingMode == 1 && m.ramBankCount > 0 {
		return int(m.bankHiOrRAM)
	}
	return 0
}

func (m *mbc1) ReadROM(addr uint16) uint8 {
	if addr <= 0x3FFF {
		return m.rom[addr]
	}
	bank := m.currentROMBank()
	offset := bank*0x4000 + int(addr-0x4000)
	if offset >= len(m.rom) {
		offset %= len(m.rom)
	}
	return m.rom[offset]
}

func (m *mbc1) WriteROM(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		if m.ramBankCount > 0 {
			m.ramEnabled = value&0x0F == 0x0A
		}
	case addr <= 0x3FFF:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBankLow = bank
	case addr <= 0x5FFF:
		m.bankHiOrRAM = value & 0x03
	default: // 0x6000-0x7FFF
		m.bankingMode = value & 0x01
	}
}

func (m *mbc1) ReadRAM(addr uint16) uint8 {
	if !m.ramEnabled || len(m.ram) == 0 {
		return 0xFF
	}
	offset := m.currentRAMBank()*0x2000 + int(addr-0xA000)
	if offset >= len(m.ram) {
		offset %= len(m.ram)
	}
	return m.ram[offset]
}

func (m *mbc1) WriteRAM(addr uint16, value uint8) {
	if !m.ramEnabled || len(m.ram) == 0 {
		return
	}
	offset := m.currentRAMBank()*0x2000 + int(addr-0xA000)
	if offset >= len(m.ram) {
		offset %= len(m.ram)
	}
	m.ram[offset] = value
}

// mbc2 has 16 fixed-size ROM banks and 512x4-bit built-in RAM; the RAM
// enable/select writes are additionally gated on address bit 8, per
// spec.md §4.1.
type mbc2 struct {
	rom []uint8
	ram [512]uint8 // low nibble significant only

	ramEnabled bool
	romBank    uint8
}

func newMBC2(rom []uint8) *mbc2 {
	return &mbc2{rom: rom, romBank: 1}
}

func (m *mbc2) ReadROM(addr uint16) uint8 {
	if addr <= 0x3FFF {
		return m.rom[addr]
	}
	bank := int(m.romBank)
	offset := bank*0x4000 + int(addr-0x4000)
	if offset >= len(m.rom) {
		offset %= len(m.rom)
	}
	return m.rom[offset]
}

func (m *mbc2) WriteROM(addr uint16, value uint8) {
	switch {
	case addr <= 0x1FFF:
		if addr&0x100 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
		}
	case addr <= 0x3FFF:
		if addr&0x100 != 0 {
			bank := value & 0x0F
			if bank == 0 {
				bank = 1
			}
			m.romBank = bank
		}
	}
}

func (m *mbc2) ReadRAM(addr uint16) uint8 {
	if !m.ramEnabled {
		return 0xFF
	}
	return m.ram[(addr-0xA000)%512] | 0xF0
}

func (m *mbc2) WriteRAM(addr uint16, value uint8) {
	if !m.ramEnabled {
		return
	}
	m.ram[(addr-0xA000)%512] = value & 0x0F
}
