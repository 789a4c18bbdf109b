package cartridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalROM(cartType, romSize, ramSize byte) []byte {
	data := make([]byte, 0x8000)
	copy(data[titleAddress:], []byte("TESTGAME"))
	data[cartridgeTypeAddress] = cartType
	data[romSizeAddress] = romSize
	data[ramSizeAddress] = ramSize
	data[headerChecksumAddr] = 0x42
	return data
}

func TestLoad_NoMBC(t *testing.T) {
	cart, err := Load(minimalROM(0x00, 0x00, 0x00))
	require.NoError(t, err)

	assert.Equal(t, None, cart.Kind)
	assert.Equal(t, "TESTGAME", cart.Title)
	assert.Equal(t, 2, cart.ROMBankCount)
	assert.Equal(t, 0, cart.RAMBankCount)
}

func TestLoad_MBC1WithRAM(t *testing.T) {
	cart, err := Load(minimalROM(0x03, 0x01, 0x03))
	require.NoError(t, err)

	assert.Equal(t, MBC1, cart.Kind)
	assert.Equal(t, 4, cart.ROMBankCount)
	assert.Equal(t, 4, cart.RAMBankCount)
}

func TestLoad_UnsupportedCartridgeType(t *testing.T) {
	_, err := Load(minimalROM(0xFF, 0x00, 0x00))

	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "cartridge type (0x0147)", unsupported.Field)
}

func TestLoad_TooSmallForHeader(t *testing.T) {
	_, err := Load(make([]byte, 0x10))
	assert.Error(t, err)
}

func TestCleanTitle_StripsNulPadding(t *testing.T) {
	raw := append([]byte("POKEMON"), 0x00, 0x00, 0x00)
	assert.Equal(t, "POKEMON", cleanTitle(raw))
}

func TestCleanTitle_EmptyBecomesUntitled(t *testing.T) {
	assert.Equal(t, "(untitled)", cleanTitle(make([]byte, 16)))
}
