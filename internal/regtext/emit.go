package regtext

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regsettings/internal/buf"
	"github.com/joshuapare/regsettings/pkg/types"
)

// Section is one [HKEY_...] block of emitted .reg text.
type Section struct {
	Root   types.Root
	Path   string // relative to Root; "" for the root key itself
	Values []Entry
}

// Entry is a named value inside a Section.
type Entry struct {
	Name  string
	Value types.Value
}

// EmitOptions controls .reg output.
type EmitOptions struct {
	// OutputEncoding is "UTF-16LE" (what regedit.exe writes) or "UTF-8".
	// Empty means UTF-8.
	OutputEncoding string
	WithBOM        bool
}

// Emit renders sections as textual .reg output, in the order given.
func Emit(sections []Section, opts EmitOptions) ([]byte, error) {
	var b strings.Builder
	b.WriteString(RegFileHeader + CRLF + CRLF)
	for _, sec := range sections {
		b.WriteString(KeyOpenBracket)
		b.WriteString(sec.Root.String())
		if sec.Path != "" {
			b.WriteString(Backslash)
			b.WriteString(sec.Path)
		}
		b.WriteString(KeyCloseBracket + CRLF)
		for _, e := range sec.Values {
			emitValue(&b, e)
		}
		b.WriteString(CRLF)
	}
	return encodeOutput(b.String(), opts.OutputEncoding, opts.WithBOM)
}

func emitValue(b *strings.Builder, e Entry) {
	if e.Name == "" {
		b.WriteString(DefaultValuePrefix)
	} else {
		b.WriteString(Quote)
		b.WriteString(escapeString(e.Name))
		b.WriteString(Quote + ValueAssignment)
	}

	v := e.Value
	switch {
	case v.Type == types.REG_SZ && !strings.ContainsAny(v.Text, "\r\n"):
		b.WriteString(Quote)
		b.WriteString(escapeString(v.Text))
		b.WriteString(Quote)
	case v.Type.IsString():
		writeHex(b, v.Type, encodeUTF16LEZeroTerminated(v.Text))
	case v.Type == types.REG_MULTI_SZ:
		writeHex(b, v.Type, encodeMultiString(v.Strings))
	case v.Type == types.REG_DWORD && v.Data == nil:
		b.WriteString(DWORDPrefix)
		fmt.Fprintf(b, DWORDHexFormat, uint32(v.Integer))
	case v.Type == types.REG_DWORD_BE && v.Data == nil:
		writeHex(b, v.Type, buf.U32BEBytes(uint32(v.Integer)))
	case v.Type == types.REG_QWORD && v.Data == nil:
		writeHex(b, v.Type, buf.U64LEBytes(v.Integer))
	default:
		writeHex(b, v.Type, v.Data)
	}
	b.WriteString(CRLF)
}

func writeHex(b *strings.Builder, t types.RegType, data []byte) {
	if t == types.REG_BINARY {
		b.WriteString(HexPrefix)
	} else {
		fmt.Fprintf(b, HexTypeFormat, uint32(t))
	}
	b.WriteString(types.FormatHex(data))
}
