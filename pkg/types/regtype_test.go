package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegType_String(t *testing.T) {
	tests := []struct {
		name     string
		regType  RegType
		expected string
	}{
		{name: "REG_NONE", regType: REG_NONE, expected: "REG_NONE"},
		{name: "REG_SZ", regType: REG_SZ, expected: "REG_SZ"},
		{name: "REG_EXPAND_SZ", regType: REG_EXPAND_SZ, expected: "REG_EXPAND_SZ"},
		{name: "REG_BINARY", regType: REG_BINARY, expected: "REG_BINARY"},
		{name: "REG_DWORD", regType: REG_DWORD, expected: "REG_DWORD"},
		{name: "REG_DWORD_BE", regType: REG_DWORD_BE, expected: "REG_DWORD_BE"},
		{name: "REG_MULTI_SZ", regType: REG_MULTI_SZ, expected: "REG_MULTI_SZ"},
		{name: "REG_QWORD", regType: REG_QWORD, expected: "REG_QWORD"},
		{name: "Unknown type 100", regType: RegType(100), expected: "UNKNOWN_TYPE_100"},
		{
			name:     "Invalid type -1 (0xFFFFFFFF)",
			regType:  RegType(0xFFFFFFFF),
			expected: "UNKNOWN_TYPE_-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.regType.String())
		})
	}
}

func TestParseRegType(t *testing.T) {
	for name, want := range map[string]RegType{
		"sz":        REG_SZ,
		"REG_SZ":    REG_SZ,
		"expand_sz": REG_EXPAND_SZ,
		"multi_sz":  REG_MULTI_SZ,
		"dword":     REG_DWORD,
		"QWORD":     REG_QWORD,
		"binary":    REG_BINARY,
	} {
		got, err := ParseRegType(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseRegType("float")
	require.Error(t, err)
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"string", StringValue("hello"), "hello"},
		{"expand string", ExpandStringValue(`%TEMP%\x`), `%TEMP%\x`},
		{"dword", DWordValue(42), "42"},
		{"qword", QWordValue(1 << 40), "1099511627776"},
		{"binary", BinaryValue(REG_BINARY, []byte{0x01, 0xab, 0xff}), "01,ab,ff"},
		{"empty binary", BinaryValue(REG_BINARY, nil), ""},
		{"unknown type", BinaryValue(RegType(0x20), []byte{0x0a}), "0a"},
		{"multi", MultiStringValue([]string{"a", "b"}), "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.String())
		})
	}
}

func TestValue_Clone(t *testing.T) {
	orig := MultiStringValue([]string{"a"})
	cp := orig.Clone()
	cp.Strings[0] = "z"
	assert.Equal(t, "a", orig.Strings[0])

	empty := MultiStringValue(nil).Clone()
	assert.NotNil(t, empty.Strings)
	assert.Empty(t, empty.Strings)
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("0x10", "dword")
	require.NoError(t, err)
	assert.Equal(t, DWordValue(16), v)

	v, err = ParseValue("01,02", "binary")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, v.Data)

	v, err = ParseValue("a\nb", "multi_sz")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Strings)

	_, err = ParseValue("nope", "dword")
	assert.ErrorIs(t, err, ErrTypeMismatch)
	assert.ErrorIs(t, err, &Error{Kind: ErrKindType, Param: "value"})

	_, err = ParseValue("zz", "binary")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = ParseValue("1", "link")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrTypeMismatch)
}

func TestError_Is(t *testing.T) {
	err := ArgumentNull("key")
	assert.ErrorIs(t, err, ErrArgumentNull)
	assert.ErrorIs(t, err, ArgumentNull("key"))
	assert.NotErrorIs(t, err, ArgumentNull("value"))
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "value cannot be null or empty (parameter key)", err.Error())

	nf := NotFound(`key "Software\\X"`)
	assert.ErrorIs(t, nf, ErrNotFound)
}

func TestRoot(t *testing.T) {
	assert.Equal(t, "HKEY_CURRENT_USER", RootUser.String())
	assert.Equal(t, "HKU", RootUsers.Short())

	r, ok := LookupRoot("hkcu")
	require.True(t, ok)
	assert.Equal(t, RootUser, r)

	r, ok = LookupRoot("HKEY_CLASSES_ROOT")
	require.True(t, ok)
	assert.Equal(t, RootClassesRoot, r)

	_, ok = LookupRoot("HKEY_NOPE")
	assert.False(t, ok)
	assert.False(t, Root(42).Valid())
}

func TestLimits(t *testing.T) {
	assert.NoError(t, CheckKeyName(strings.Repeat("界", MaxKeyNameLen)), "limit counts characters")
	assert.Error(t, CheckKeyName(strings.Repeat("a", MaxKeyNameLen+1)))
	assert.NoError(t, CheckValueName(""))
	assert.ErrorIs(t, CheckValueName(strings.Repeat("a", MaxValueNameLen+1)), ArgumentNull("name"))
	assert.NoError(t, CheckDepth(MaxTreeDepth))
	assert.Error(t, CheckDepth(MaxTreeDepth+1))
}
