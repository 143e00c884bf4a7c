package render

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Python-style spellings that the IANA registry does not list as aliases.
var encodingAliases = map[string]string{
	"latin-1": "latin1",
	"latin_1": "latin1",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// isUTF8Sig matches the encoding name given to sources that carry a UTF-8
// byte-order mark. Encoding re-emits the mark so such documents round-trip.
func isUTF8Sig(name string) bool {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "utf-8-sig", "utf8-sig":
		return true
	default:
		return false
	}
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	n := strings.ToLower(name)
	if alias, ok := encodingAliases[n]; ok {
		n = alias
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("render: unsupported encoding %q", name)
	}
	return enc, nil
}

// encodeText converts rendered text into the document's byte encoding.
func encodeText(text, name string) ([]byte, error) {
	if isUTF8Sig(name) {
		return append(append([]byte(nil), utf8BOM...), text...), nil
	}
	if isUTF8(name) {
		return []byte(text), nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(text))
	if err != nil {
		return nil, fmt.Errorf("render: encode as %q: %w", name, err)
	}
	return out, nil
}

// Decode converts raw document bytes to UTF-8 text according to an encoding
// name. The parser uses it when a source file declares a non-UTF-8 coding.
func Decode(raw []byte, name string) (string, error) {
	if isUTF8Sig(name) {
		return string(bytes.TrimPrefix(raw, utf8BOM)), nil
	}
	if isUTF8(name) {
		return string(raw), nil
	}
	enc, err := lookupEncoding(name)
	if err != nil {
		return "", err
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("render: decode from %q: %w", name, err)
	}
	return string(out), nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8", "ascii", "us-ascii":
		return true
	default:
		return false
	}
}
