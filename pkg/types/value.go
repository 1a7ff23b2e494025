package types

import (
	"encoding/hex"
	"strconv"
	"strings"
)

// Value is a decoded registry value. Exactly one payload field is
// meaningful, selected by Type:
//
//   - REG_SZ, REG_EXPAND_SZ, REG_LINK: Text
//   - REG_MULTI_SZ: Strings
//   - REG_DWORD, REG_DWORD_BE, REG_QWORD: Integer
//   - everything else: Data (raw bytes)
type Value struct {
	Type    RegType
	Text    string
	Strings []string
	Integer uint64
	Data    []byte
}

// StringValue returns a REG_SZ value.
func StringValue(s string) Value { return Value{Type: REG_SZ, Text: s} }

// ExpandStringValue returns a REG_EXPAND_SZ value.
func ExpandStringValue(s string) Value { return Value{Type: REG_EXPAND_SZ, Text: s} }

// MultiStringValue returns a REG_MULTI_SZ value. A nil slice is stored as empty.
func MultiStringValue(ss []string) Value {
	if ss == nil {
		ss = []string{}
	}
	return Value{Type: REG_MULTI_SZ, Strings: ss}
}

// DWordValue returns a REG_DWORD value.
func DWordValue(n uint32) Value { return Value{Type: REG_DWORD, Integer: uint64(n)} }

// QWordValue returns a REG_QWORD value.
func QWordValue(n uint64) Value { return Value{Type: REG_QWORD, Integer: n} }

// BinaryValue returns a value of type t carrying raw bytes.
func BinaryValue(t RegType, data []byte) Value { return Value{Type: t, Data: data} }

// IsMulti reports whether v holds an ordered sequence of strings.
func (v Value) IsMulti() bool { return v.Type == REG_MULTI_SZ }

// String is the default string conversion of a value. Integers render in
// base 10, multi-strings join with "\n", and raw data renders as the
// comma separated hex pairs a .reg file would show. An integer type that
// carries raw Data (wrong payload size) renders as hex too.
func (v Value) String() string {
	switch {
	case v.Type.IsString():
		return v.Text
	case v.Type == REG_MULTI_SZ:
		return strings.Join(v.Strings, "\n")
	case v.Type.IsInteger() && v.Data == nil:
		return strconv.FormatUint(v.Integer, 10)
	default:
		return FormatHex(v.Data)
	}
}

// Clone returns a deep copy, so stores can hand values out without
// sharing backing arrays.
func (v Value) Clone() Value {
	out := v
	if v.Strings != nil {
		out.Strings = append(make([]string, 0, len(v.Strings)), v.Strings...)
	}
	if v.Data != nil {
		out.Data = append(make([]byte, 0, len(v.Data)), v.Data...)
	}
	return out
}

// FormatHex renders data as lowercase hex pairs separated by commas.
func FormatHex(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(data) * 3)
	for i, c := range data {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(hex.EncodeToString([]byte{c}))
	}
	return b.String()
}

// ParseValue converts textual input into a Value of the named type. Multi
// strings are split on "\n"; binary accepts "0a1b" or "0a,1b".
func ParseValue(text string, typeName string) (Value, error) {
	t, err := ParseRegType(typeName)
	if err != nil {
		return Value{}, err
	}
	switch t {
	case REG_SZ, REG_EXPAND_SZ:
		return Value{Type: t, Text: text}, nil
	case REG_MULTI_SZ:
		if text == "" {
			return MultiStringValue(nil), nil
		}
		return MultiStringValue(strings.Split(text, "\n")), nil
	case REG_DWORD:
		n, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return Value{}, typeMismatch(REG_DWORD, err)
		}
		return DWordValue(uint32(n)), nil
	case REG_QWORD:
		n, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return Value{}, typeMismatch(REG_QWORD, err)
		}
		return QWordValue(n), nil
	default:
		data, err := hex.DecodeString(strings.ReplaceAll(text, ",", ""))
		if err != nil {
			return Value{}, typeMismatch(REG_BINARY, err)
		}
		return BinaryValue(REG_BINARY, data), nil
	}
}

func typeMismatch(t RegType, cause error) error {
	return &Error{Kind: ErrKindType, Msg: "invalid " + t.String() + " value", Param: "value", Err: cause}
}
