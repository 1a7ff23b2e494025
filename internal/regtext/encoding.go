package regtext

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/regsettings/internal/buf"
)

var errUnsupportedEncoding = errors.New("regtext: unsupported encoding")

// decodeInput converts raw .reg bytes to UTF-8. A byte order mark wins over
// the declared encoding.
func decodeInput(data []byte, enc string) (string, error) {
	if bytes.HasPrefix(data, UTF16LEBOM) {
		return decodeUTF16LEText(data)
	}
	if bytes.HasPrefix(data, UTF8BOM) {
		return string(data[len(UTF8BOM):]), nil
	}
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		return string(data), nil
	case EncodingUTF16LE:
		return decodeUTF16LEText(data)
	case EncodingWindows1252, "CP1252", "LATIN1":
		out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", errUnsupportedEncoding
	}
}

func decodeUTF16LEText(data []byte) (string, error) {
	dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeOutput converts emitted UTF-8 text to the requested encoding.
func encodeOutput(text string, enc string, withBOM bool) ([]byte, error) {
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		if withBOM {
			return append(append([]byte(nil), UTF8BOM...), text...), nil
		}
		return []byte(text), nil
	case EncodingUTF16LE:
		return encodeUTF16LE(text, withBOM), nil
	default:
		return nil, errUnsupportedEncoding
	}
}

// encodeUTF16LE encodes a string to UTF-16LE.
func encodeUTF16LE(s string, withBOM bool) []byte {
	words := utf16.Encode([]rune(s))

	size := len(words) * UTF16CodeUnitSize
	if withBOM {
		size += len(UTF16LEBOM)
	}
	out := make([]byte, size)

	offset := 0
	if withBOM {
		copy(out, UTF16LEBOM)
		offset = len(UTF16LEBOM)
	}
	for i, w := range words {
		buf.PutU16LE(out[offset+i*UTF16CodeUnitSize:], w)
	}
	return out
}

// encodeUTF16LEZeroTerminated encodes a string to UTF-16LE with null terminator.
func encodeUTF16LEZeroTerminated(s string) []byte {
	words := utf16.Encode([]rune(s))
	out := make([]byte, (len(words)+1)*UTF16CodeUnitSize)
	for i, w := range words {
		buf.PutU16LE(out[i*UTF16CodeUnitSize:], w)
	}
	return out
}

// encodeMultiString encodes REG_MULTI_SZ data: each string null
// terminated, followed by a final null.
func encodeMultiString(values []string) []byte {
	var out bytes.Buffer
	for _, v := range values {
		out.Write(encodeUTF16LEZeroTerminated(v))
	}
	out.Write([]byte{0, 0})
	return out.Bytes()
}

func utf16Words(data []byte) []uint16 {
	if len(data)%UTF16CodeUnitSize == 1 {
		data = data[:len(data)-1]
	}
	words := make([]uint16, len(data)/UTF16CodeUnitSize)
	for i := range words {
		words[i] = buf.U16LE(data[i*UTF16CodeUnitSize:])
	}
	return words
}

// decodeUTF16LEString decodes REG_SZ data, stopping at the first null.
func decodeUTF16LEString(data []byte) string {
	words := utf16Words(data)
	for i, w := range words {
		if w == 0 {
			words = words[:i]
			break
		}
	}
	return string(utf16.Decode(words))
}

// decodeMultiString decodes REG_MULTI_SZ data. Every element is null
// terminated and the list ends with one more null; empty elements in the
// middle are kept. A missing list terminator or a final unterminated
// element is tolerated.
func decodeMultiString(data []byte) []string {
	words := utf16Words(data)
	if n := len(words); n > 0 && words[n-1] == 0 {
		words = words[:n-1]
	}
	out := []string{}
	start := 0
	for i, w := range words {
		if w != 0 {
			continue
		}
		out = append(out, string(utf16.Decode(words[start:i])))
		start = i + 1
	}
	if start < len(words) {
		out = append(out, string(utf16.Decode(words[start:])))
	}
	return out
}
