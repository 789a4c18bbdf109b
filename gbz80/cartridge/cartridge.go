// Package cartridge decodes a Game Boy ROM image header and builds the
// appropriate memory bank controller for it.
package cartridge

import (
	"fmt"
	"strings"
	"unicode"
)

// Header field offsets, per the Game Boy cartridge header layout.
const (
	titleAddress         = 0x134
	titleLength          = 16
	cartridgeTypeAddress = 0x147
	romSizeAddress       = 0x148
	ramSizeAddress       = 0x149
	headerChecksumAddr   = 0x14D
)

// Kind identifies the memory bank controller family a cartridge uses.
type Kind uint8

const (
	// None is a cartridge with no bank switching (ROM only, optionally with
	// plain, unbanked RAM).
	None Kind = iota
	// MBC1 banks ROM and RAM per spec.md §4.1/§6.
	MBC1
	// MBC2 has built-in 4-bit RAM and simpler ROM banking.
	MBC2
)

func (k Kind) String() string {
	switch k {
	case None:
		return "NoMBC"
	case MBC1:
		return "MBC1"
	case MBC2:
		return "MBC2"
	default:
		return "unknown"
	}
}

// UnsupportedError reports a cartridge header field this emulator cannot
// handle (spec.md's CartridgeUnsupported error kind).
type UnsupportedError struct {
	Field string
	Value uint8
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("cartridge: unsupported %s byte 0x%02X", e.Field, e.Value)
}

// Cartridge is the decoded, read-only view of a loaded ROM image header.
type Cartridge struct {
	Data           []byte
	Title          string
	Kind           Kind
	ROMBankCount   int
	RAMBankCount   int
	HeaderChecksum uint8
}

// Load decodes the header of a raw cartridge image and returns a Cartridge
// ready to build an MBC from. It does not validate the header checksum;
// malformed ROMs are the caller's problem once banking proceeds.
func Load(data []byte) (*Cartridge, error) {
	if len(data) <= headerChecksumAddr {
		return nil, fmt.Errorf("cartridge: image too small to contain a header (%d bytes)", len(data))
	}

	kind, err := decodeKind(data[cartridgeTypeAddress])
	if err != nil {
		return nil, err
	}

	romBanks, err := decodeROMBanks(data[romSizeAddress])
	if err != nil {
		return nil, err
	}

	ramBanks, err := decodeRAMBanks(data[ramSizeAddress])
	if err != nil {
		return nil, err
	}

	end := titleAddress + titleLength
	if end > len(data) {
		end = len(data)
	}

	return &Cartridge{
		Data:           data,
		Title:          cleanTitle(data[titleAddress:end]),
		Kind:           kind,
		ROMBankCount:   romBanks,
		RAMBankCount:   ramBanks,
		HeaderChecksum: data[headerChecksumAddr],
	}, nil
}

func decodeKind(b byte) (Kind, error) {
	switch {
	case b == 0x00:
		return None, nil
	case b >= 0x01 && b <= 0x03:
		return MBC1, nil
	case b >= 0x05 && b <= 0x06:
		return MBC2, nil
	case b >= 0x08 && b <= 0x0D:
		return None, nil
	default:
		return None, &UnsupportedError{Field: "cartridge type (0x0147)", Value: b}
	}
}

func decodeROMBanks(code byte) (int, error) {
	if code > 8 {
		return 0, &UnsupportedError{Field: "ROM size (0x0148)", Value: code}
	}
	return 2 << code, nil
}

func decodeRAMBanks(code byte) (int, error) {
	switch code {
	case 0, 1:
		return 0, nil
	case 2:
		return 1, nil
	case 3:
		return 4, nil
	case 4:
		return 16, nil
	case 5:
		return 8, nil
	default:
		return 0, &UnsupportedError{Field: "RAM size (0x0149)", Value: code}
	}
}

// cleanTitle turns the raw, NUL-padded title bytes into a printable string.
func cleanTitle(raw []byte) string {
	runes := make([]rune, 0, len(raw))
	for _, b := range raw {
		switch {
		case b == 0:
			continue
		case b < 0x20 || b > 0x7E:
			runes = append(runes, '?')
		default:
			runes = append(runes, rune(b))
		}
	}
	title := strings.TrimSpace(string(runes))
	if title == "" {
		return "(untitled)"
	}
	for _, r := range title {
		if !unicode.IsPrint(r) {
			return "(untitled)"
		}
	}
	return title
}
