package regtext

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regsettings/internal/buf"
	"github.com/joshuapare/regsettings/pkg/types"
)

// ParseOptions controls .reg parsing.
type ParseOptions struct {
	// InputEncoding declares the .reg text encoding when no byte order mark
	// is present: "" or "UTF-8", "UTF-16LE", "Windows-1252".
	InputEncoding string
}

type section struct {
	root types.Root
	path string
}

// Parse converts .reg text into edit operations, in file order.
func Parse(data []byte, opts ParseOptions) ([]EditOp, error) {
	text, err := decodeInput(data, opts.InputEncoding)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxLineSize)

	seenHeader := false
	var ops []EditOp
	seenKeys := make(map[section]bool)
	var current *section
	var pending strings.Builder

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), CR)
		trim := strings.TrimSpace(line)

		// Hex payloads may wrap with a trailing backslash.
		if pending.Len() > 0 {
			pending.WriteString(trim)
			if strings.HasSuffix(trim, Backslash) {
				continue
			}
			trim = pending.String()
			pending.Reset()
		} else if current != nil && isContinued(trim) {
			pending.WriteString(trim)
			continue
		}

		if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
			continue
		}
		if !seenHeader {
			if trim != RegFileHeader {
				return nil, formatErr("missing header", nil)
			}
			seenHeader = true
			continue
		}
		if strings.HasPrefix(trim, KeyOpenBracket) {
			if !strings.HasSuffix(trim, KeyCloseBracket) {
				return nil, formatErr(fmt.Sprintf("malformed section %q", trim), nil)
			}
			name := strings.TrimSuffix(strings.TrimPrefix(trim, KeyOpenBracket), KeyCloseBracket)
			if strings.HasPrefix(name, DeleteKeyPrefix) {
				root, path, err := SplitSection(strings.TrimSpace(name[1:]))
				if err != nil {
					return nil, err
				}
				ops = append(ops, OpDeleteKey{Root: root, Path: path})
				current = nil
				continue
			}
			root, path, err := SplitSection(name)
			if err != nil {
				return nil, err
			}
			current = &section{root: root, path: path}
			if !seenKeys[*current] {
				ops = append(ops, OpCreateKey{Root: root, Path: path})
				seenKeys[*current] = true
			}
			continue
		}
		if current == nil {
			return nil, formatErr(fmt.Sprintf("value without section: %q", trim), nil)
		}
		op, err := parseValueLine(*current, trim)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning .reg file: %w", err)
	}
	if !seenHeader {
		return nil, formatErr("missing header", nil)
	}
	return ops, nil
}

// SplitSection splits a section header path into its root and the path
// relative to that root. The root must be a canonical or abbreviated
// HKEY name.
func SplitSection(name string) (types.Root, string, error) {
	head, rest, _ := strings.Cut(name, Backslash)
	root, ok := types.LookupRoot(head)
	if !ok {
		return 0, "", formatErr(fmt.Sprintf("unknown root %q", head), nil)
	}
	return root, rest, nil
}

// isContinued reports whether a value line wraps onto the next line. Only
// hex payloads wrap; a quoted string always ends in a quote.
func isContinued(line string) bool {
	if !strings.HasSuffix(line, Backslash) {
		return false
	}
	return strings.Contains(line, "="+HexPrefix) || strings.Contains(line, "="+HexTypedPrefix)
}

func parseValueLine(sec section, line string) (EditOp, error) {
	if strings.HasPrefix(line, DefaultValuePrefix) {
		return parseValue(sec, "", line[len(DefaultValuePrefix):])
	}
	if !strings.HasPrefix(line, Quote) {
		return nil, formatErr(fmt.Sprintf("malformed value line %q", line), nil)
	}
	end := findClosingQuote(line)
	if end < 0 {
		return nil, formatErr(fmt.Sprintf("unterminated value name in %q", line), nil)
	}
	name := unescapeRegString(line[1:end])
	rest := strings.TrimSpace(line[end+1:])
	if !strings.HasPrefix(rest, ValueAssignment) {
		return nil, formatErr(fmt.Sprintf("missing '=' in %q", line), nil)
	}
	return parseValue(sec, name, rest[1:])
}

func parseValue(sec section, name, payload string) (EditOp, error) {
	payload = strings.TrimSpace(payload)
	if payload == DeleteValueToken {
		return OpDeleteValue{Root: sec.root, Path: sec.path, Name: name}, nil
	}
	v, err := parsePayload(payload)
	if err != nil {
		return nil, err
	}
	return OpSetValue{Root: sec.root, Path: sec.path, Name: name, Value: v}, nil
}

func parsePayload(payload string) (types.Value, error) {
	switch {
	case strings.HasPrefix(payload, Quote):
		if len(payload) < 2 || !strings.HasSuffix(payload, Quote) {
			return types.Value{}, formatErr(fmt.Sprintf("unterminated string %q", payload), nil)
		}
		return types.StringValue(unescapeRegString(payload[1 : len(payload)-1])), nil

	case strings.HasPrefix(payload, DWORDPrefix):
		hexPart := payload[len(DWORDPrefix):]
		if len(hexPart) != DWORDHexLength {
			return types.Value{}, formatErr(fmt.Sprintf("invalid dword %q", payload), nil)
		}
		n, err := strconv.ParseUint(hexPart, 16, 32)
		if err != nil {
			return types.Value{}, formatErr(fmt.Sprintf("invalid dword %q", payload), err)
		}
		return types.DWordValue(uint32(n)), nil

	case strings.HasPrefix(payload, HexPrefix), strings.HasPrefix(payload, HexTypedPrefix):
		typ, err := parseHexType(payload)
		if err != nil {
			return types.Value{}, err
		}
		data, err := parseHexBytes(payload)
		if err != nil {
			return types.Value{}, formatErr("bad hex payload", err)
		}
		return decodeTyped(typ, data), nil
	}
	return types.Value{}, formatErr(fmt.Sprintf("unsupported value %q", payload), nil)
}

// parseHexType reads the registry type from "hex:" (REG_BINARY) or
// "hex(N):" where N is hexadecimal, as regedit writes it.
func parseHexType(payload string) (types.RegType, error) {
	if strings.HasPrefix(payload, HexPrefix) {
		return types.REG_BINARY, nil
	}
	closeParen := strings.Index(payload, ")")
	if closeParen < len(HexTypedPrefix) {
		return 0, formatErr(fmt.Sprintf("malformed hex type in %q", payload), nil)
	}
	n, err := strconv.ParseUint(payload[len(HexTypedPrefix):closeParen], 16, 32)
	if err != nil {
		return 0, formatErr(fmt.Sprintf("malformed hex type in %q", payload), err)
	}
	return types.RegType(n), nil
}

// decodeTyped turns raw registry bytes into a Value for the types the
// accessor understands; anything else keeps its raw bytes.
func decodeTyped(typ types.RegType, data []byte) types.Value {
	switch typ {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		return types.Value{Type: typ, Text: decodeUTF16LEString(data)}
	case types.REG_MULTI_SZ:
		return types.MultiStringValue(decodeMultiString(data))
	case types.REG_DWORD:
		if len(data) == DWORDSize {
			return types.DWordValue(buf.U32LE(data))
		}
	case types.REG_DWORD_BE:
		if len(data) == DWORDSize {
			return types.Value{Type: typ, Integer: uint64(buf.U32BE(data))}
		}
	case types.REG_QWORD:
		if len(data) == QWORDSize {
			return types.QWordValue(buf.U64LE(data))
		}
	}
	return types.BinaryValue(typ, data)
}

func formatErr(msg string, cause error) error {
	return &types.Error{Kind: types.ErrKindFormat, Msg: "regtext: " + msg, Err: cause}
}
