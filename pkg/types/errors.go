package types

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFormat      ErrKind = iota // malformed .reg text or stored data
	ErrKindNotFound                   // missing key/value/path
	ErrKindArgument                   // required argument missing or empty
	ErrKindPath                       // path string cannot be resolved to a root
	ErrKindType                       // text does not parse as the requested RegType
	ErrKindState                      // invalid operation for current state (e.g., readonly)
	ErrKindUnsupported                // backend not available on this platform
)

// String implements fmt.Stringer.
func (k ErrKind) String() string {
	switch k {
	case ErrKindFormat:
		return "format"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindArgument:
		return "argument"
	case ErrKindPath:
		return "path"
	case ErrKindType:
		return "type"
	case ErrKindState:
		return "state"
	case ErrKindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional parameter name and underlying cause.
type Error struct {
	Kind  ErrKind
	Msg   string
	Param string // offending parameter for ErrKindArgument
	Err   error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Msg
	if e.Param != "" {
		msg += " (parameter " + e.Param + ")"
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind, and on Param when the target names one, so callers
// can write errors.Is(err, types.ErrNotFound) against any not-found error
// produced by a store.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if e.Kind != t.Kind {
		return false
	}
	return t.Param == "" || t.Param == e.Param
}

// Sentinels commonly returned by implementations.
var (
	// ErrFormat indicates malformed .reg text or undecodable stored data.
	ErrFormat = &Error{Kind: ErrKindFormat, Msg: "malformed registry data"}
	// ErrNotFound indicates a missing key/value/path.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrArgumentNull indicates a required argument was empty.
	ErrArgumentNull = &Error{Kind: ErrKindArgument, Msg: "value cannot be null or empty"}
	// ErrInvalidPath indicates a path without a root separator.
	ErrInvalidPath = &Error{Kind: ErrKindPath, Msg: "invalid registry path"}
	// ErrTypeMismatch indicates input that cannot be converted to the requested type.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "value does not match registry type"}
	// ErrReadonly indicates a mutation was attempted on a read-only handle.
	ErrReadonly = &Error{Kind: ErrKindState, Msg: "key is open read-only"}
	// ErrUnsupported indicates the store backend is unavailable here.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "store backend not supported on this platform"}
)

// ArgumentNull returns an ErrKindArgument error naming param.
func ArgumentNull(param string) *Error {
	return &Error{Kind: ErrKindArgument, Msg: ErrArgumentNull.Msg, Param: param}
}

// NotFound returns an ErrKindNotFound error describing what was missing.
func NotFound(what string) *Error {
	return &Error{Kind: ErrKindNotFound, Msg: what + " not found"}
}
