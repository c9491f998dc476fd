package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	content := []byte("MQ, MODELO ,SERIAL\nMQ-001, PC200-8 ,C12345\nMQ-002,320D2,D67890\n")

	headers, rows, err := Decode(content)
	require.NoError(t, err)

	assert.Equal(t, []string{"mq", "modelo", "serial"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"MQ-001", "PC200-8", "C12345"}, rows[0])
	assert.Equal(t, []string{"MQ-002", "320D2", "D67890"}, rows[1])
}

func TestDecodeSkipsBlankLines(t *testing.T) {
	content := []byte("MODELO\n\nPC200-8\n   \n320D2\n")

	_, rows, err := Decode(content)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestDecodeRejectsHeaderOnlyFile(t *testing.T) {
	for _, content := range []string{"", "MODELO,SERIAL", "MODELO,SERIAL\n\n"} {
		_, _, err := Decode([]byte(content))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no contiene filas de datos")
	}
}

func TestDecodeWindows1252Content(t *testing.T) {
	// Header "AÑO" saved as Windows-1252
	content := []byte{'A', 0xD1, 'O', '\n', '2', '0', '1', '8', '\n'}

	headers, rows, err := Decode(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"año"}, headers)
	assert.Equal(t, [][]string{{"2018"}}, rows)
}

func TestDecodeCRLFTolerance(t *testing.T) {
	content := []byte("MODELO,SERIAL\r\nPC200-8,C12345\r\n")

	headers, rows, err := Decode(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"modelo", "serial"}, headers)
	// The \r is whitespace and is trimmed off the last cell.
	assert.Equal(t, "C12345", rows[0][1])
}
