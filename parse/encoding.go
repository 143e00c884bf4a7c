package parse

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"birch/cst"
	"birch/render"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns the text raw source bytes decode to, applying the same BOM
// and coding-declaration handling Bytes applies before parsing. Tools use it
// to quote source lines in diagnostics.
func Decode(raw []byte) (string, error) {
	name, body, err := detectEncoding(raw)
	if err != nil {
		return "", err
	}
	return render.Decode(body, name)
}

// codingRe matches an encoding declaration comment, as Python sources spell
// them: the magic word may sit anywhere in the comment, "coding: name" and
// "coding=name" both count.
var codingRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-_.a-zA-Z0-9]+)`)

// detectEncoding inspects raw source bytes for a byte-order mark and a
// coding declaration in the first two lines. It returns the encoding name
// ("" for plain UTF-8) and the bytes to decode, with any mark stripped.
func detectEncoding(raw []byte) (string, []byte, error) {
	hasBOM := bytes.HasPrefix(raw, utf8BOM)
	body := raw
	if hasBOM {
		body = raw[len(utf8BOM):]
	}

	name, line := "", 0
	rest := body
	for i := 1; i <= 2 && len(rest) > 0; i++ {
		var ln []byte
		ln, rest = cutRawLine(rest)
		if m := codingRe.FindSubmatch(ln); m != nil {
			name, line = string(m[1]), i
			break
		}
		// A declaration on the second line only counts below a line that
		// carries no code.
		if !rawBlankOrComment(ln) {
			break
		}
	}

	if hasBOM {
		if name != "" && !isUTF8Name(name) {
			err := &Error{
				Pos: cst.Position{Line: line},
				Msg: fmt.Sprintf("coding %q conflicts with the UTF-8 byte-order mark", name),
			}
			return "", nil, ErrorList{err}
		}
		return "utf-8-sig", body, nil
	}
	return name, body, nil
}

// cutRawLine splits off the first physical line, without its terminator.
func cutRawLine(b []byte) (line, rest []byte) {
	for i := 0; i < len(b); i++ {
		switch b[i] {
		case '\n':
			return b[:i], b[i+1:]
		case '\r':
			if i+1 < len(b) && b[i+1] == '\n' {
				return b[:i], b[i+2:]
			}
			return b[:i], b[i+1:]
		}
	}
	return b, nil
}

func rawBlankOrComment(ln []byte) bool {
	trimmed := bytes.TrimLeft(ln, " \t\f")
	return len(trimmed) == 0 || trimmed[0] == '#'
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "utf-8", "utf8":
		return true
	}
	return false
}

// detectNewline picks the document's default terminator: the first sequence
// in the source, or "" when there is none so the document default applies.
func detectNewline(src string) string {
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\n':
			return "\n"
		case '\r':
			if i+1 < len(src) && src[i+1] == '\n' {
				return "\r\n"
			}
			return "\r"
		}
	}
	return ""
}

func endsWithNewline(src string) bool {
	if src == "" {
		return false
	}
	c := src[len(src)-1]
	return c == '\n' || c == '\r'
}
