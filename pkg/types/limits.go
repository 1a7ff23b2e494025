package types

import "unicode/utf8"

// Windows registry limits that the portable stores enforce so a tree
// written on one platform can be imported on another.
const (
	// MaxKeyNameLen is the longest key name segment, in characters.
	MaxKeyNameLen = 255

	// MaxValueNameLen is the longest value name, in characters.
	MaxValueNameLen = 16383

	// MaxTreeDepth is the deepest key nesting the registry accepts.
	MaxTreeDepth = 512
)

// CheckKeyName validates one path segment.
func CheckKeyName(name string) error {
	if utf8.RuneCountInString(name) > MaxKeyNameLen {
		return &Error{Kind: ErrKindArgument, Msg: "key name exceeds 255 characters", Param: "path"}
	}
	return nil
}

// CheckValueName validates a value name. The empty name is the default value.
func CheckValueName(name string) error {
	if utf8.RuneCountInString(name) > MaxValueNameLen {
		return &Error{Kind: ErrKindArgument, Msg: "value name exceeds 16383 characters", Param: "name"}
	}
	return nil
}

// CheckDepth validates the number of segments below a root.
func CheckDepth(segments int) error {
	if segments > MaxTreeDepth {
		return &Error{Kind: ErrKindArgument, Msg: "key path nested deeper than 512 levels", Param: "path"}
	}
	return nil
}
