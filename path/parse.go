// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPath is returned when a path string cannot be parsed.
var ErrInvalidPath = errors.New("invalid path")

func isBareFieldByte(c byte) bool {
	return c == '_' || c == '-' || c == '@' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isBareField(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isBareFieldByte(s[i]) {
			return false
		}
	}
	return true
}

// Parse parses a dotted path such as `foo.bar[2]."a key"`. A leading dot is
// optional and "." alone is the root.
func Parse(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if s == "." {
		return Root(), nil
	}

	rest := strings.TrimPrefix(s, ".")
	var segs []Segment
	expectField := true

	for len(rest) > 0 {
		switch {
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Path{}, fmt.Errorf("%w: unclosed index in %q", ErrInvalidPath, s)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("%w: bad index %q in %q", ErrInvalidPath, rest[1:end], s)
			}
			segs = append(segs, Index(idx))
			rest = rest[end+1:]
			expectField = false
		case rest[0] == '.':
			if expectField {
				return Path{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
			}
			rest = rest[1:]
			expectField = true
			if rest == "" {
				return Path{}, fmt.Errorf("%w: trailing dot in %q", ErrInvalidPath, s)
			}
		case !expectField:
			return Path{}, fmt.Errorf("%w: missing separator in %q", ErrInvalidPath, s)
		case rest[0] == '"':
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return Path{}, fmt.Errorf("%w: bad quoted segment in %q", ErrInvalidPath, s)
			}
			field, _ := strconv.Unquote(quoted)
			segs = append(segs, Field(field))
			rest = rest[len(quoted):]
			expectField = false
		default:
			end := 0
			for end < len(rest) && isBareFieldByte(rest[end]) {
				end++
			}
			if end == 0 {
				return Path{}, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidPath, rest[0], s)
			}
			segs = append(segs, Field(rest[:end]))
			rest = rest[end:]
			expectField = false
		}
	}

	return Path{segments: segs}, nil
}

// MustParse is like Parse but panics if the path is invalid.
func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("path: MustParse(%q): %v", s, err))
	}
	return p
}
