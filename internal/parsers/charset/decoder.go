package charset

import (
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding represents a text encoding seen in equipment purchase exports.
// Files saved from Excel on Windows in Latin America commonly arrive as
// Windows-1252 rather than UTF-8.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingISO88591    Encoding = "iso-8859-1"
)

// DetectEncoding detects the encoding of a byte buffer. Valid UTF-8 (with
// or without BOM) is always preferred; anything else is assumed to be
// Windows-1252, which is a superset of ISO-8859-1 for the bytes that matter
// here (á é í ó ú ñ ü and the degree sign in "N°").
func DetectEncoding(data []byte) Encoding {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return EncodingUTF8
	}
	if utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingWindows1252
}

// Decode converts a byte buffer from the specified encoding to a UTF-8
// string. A UTF-8 BOM is stripped when present.
func Decode(data []byte, enc Encoding) (string, error) {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}

	switch enc {
	case EncodingWindows1252:
		if utf8.Valid(data) {
			// Mislabeled but already UTF-8; decoding again would mangle it.
			return string(data), nil
		}
		return decodeWith(data, charmap.Windows1252)
	case EncodingISO88591:
		return decodeWith(data, charmap.ISO8859_1)
	default:
		if utf8.Valid(data) {
			return string(data), nil
		}
		return decodeWith(data, charmap.Windows1252)
	}
}

func decodeWith(data []byte, cm *charmap.Charmap) (string, error) {
	reader := transform.NewReader(strings.NewReader(string(data)), cm.NewDecoder())
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
