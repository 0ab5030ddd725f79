package encoding_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enc "smartpantry/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := enc.UTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestUTF8Reader_PlainUTF8(t *testing.T) {
	assert.Equal(t, "Müsli,1.99", decode(t, []byte("Müsli,1.99")))
}

func TestUTF8Reader_UTF8BOMStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Item,Price")...)
	assert.Equal(t, "Item,Price", decode(t, input))
}

func TestUTF8Reader_UTF16LE(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFE})
	for _, r := range "Milk" {
		buf.WriteByte(byte(r))
		buf.WriteByte(0)
	}

	assert.Equal(t, "Milk", decode(t, buf.Bytes()))
}

func TestUTF8Reader_Windows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid on its own in UTF-8.
	assert.Equal(t, "Café,2.50", decode(t, []byte("Caf\xE9,2.50")))
}

func TestUTF8Reader_OutputIsAlwaysValidUTF8(t *testing.T) {
	inputs := [][]byte{
		[]byte("plain ascii"),
		[]byte("Gr\xFC\xDFe;1,99"),
		{0xFE, 0xFF, 0x00, 'A'},
	}

	for _, input := range inputs {
		got := decode(t, input)
		assert.True(t, strings.ToValidUTF8(got, "") == got, "output must be valid UTF-8, got %q", got)
	}
}

func TestUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
