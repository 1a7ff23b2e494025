package types

import (
	"fmt"
	"strings"
)

// RegType enumerates Windows registry value types commonly encountered.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE                       RegType = 0
	REG_SZ                         RegType = 1
	REG_EXPAND_SZ                  RegType = 2
	REG_BINARY                     RegType = 3
	REG_DWORD                      RegType = 4
	REG_DWORD_LE                   RegType = 4 // alias for clarity
	REG_DWORD_BE                   RegType = 5
	REG_LINK                       RegType = 6
	REG_MULTI_SZ                   RegType = 7
	REG_RESOURCE_LIST              RegType = 8
	REG_FULL_RESOURCE_DESCRIPTOR   RegType = 9
	REG_RESOURCE_REQUIREMENTS_LIST RegType = 10
	REG_QWORD                      RegType = 11
)

// String implements the Stringer interface for RegType
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_RESOURCE_LIST:
		return "REG_RESOURCE_LIST"
	case REG_FULL_RESOURCE_DESCRIPTOR:
		return "REG_FULL_RESOURCE_DESCRIPTOR"
	case REG_RESOURCE_REQUIREMENTS_LIST:
		return "REG_RESOURCE_REQUIREMENTS_LIST"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// IsString reports whether values of this type decode to a single string.
func (t RegType) IsString() bool {
	return t == REG_SZ || t == REG_EXPAND_SZ || t == REG_LINK
}

// IsInteger reports whether values of this type decode to an integer.
func (t RegType) IsInteger() bool {
	return t == REG_DWORD || t == REG_DWORD_BE || t == REG_QWORD
}

// ParseRegType maps a user-supplied type name ("sz", "REG_DWORD", ...) to a RegType.
func ParseRegType(name string) (RegType, error) {
	switch strings.ToUpper(name) {
	case "SZ", "REG_SZ", "STRING":
		return REG_SZ, nil
	case "EXPAND_SZ", "REG_EXPAND_SZ":
		return REG_EXPAND_SZ, nil
	case "MULTI_SZ", "REG_MULTI_SZ":
		return REG_MULTI_SZ, nil
	case "DWORD", "REG_DWORD":
		return REG_DWORD, nil
	case "QWORD", "REG_QWORD":
		return REG_QWORD, nil
	case "BINARY", "REG_BINARY":
		return REG_BINARY, nil
	default:
		return REG_NONE, fmt.Errorf("unsupported value type: %s", name)
	}
}
