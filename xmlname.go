package adomd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/beevik/etree"
)

// encodedCharLen is the length of an escaped character segment: "x" followed
// by four hex digits.
const encodedCharLen = 5

// isEncodedChar reports whether seg is an escaped character such as "x0020".
// Only a lowercase "x" and uppercase hex digits qualify.
func isEncodedChar(seg string) bool {
	if len(seg) != encodedCharLen || seg[0] != 'x' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if !('0' <= c && c <= '9' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// DecodeName restores identifiers the engine escaped for use as XML names.
// The name is split on "_" and every escaped segment is replaced by the
// character it encodes, so "Sales_x0020_Amount" becomes "Sales_ _Amount".
// Segments in the surrogate range xD800 to xDFFF have no character of their
// own and are left as they are.
func DecodeName(name string) string {
	if !strings.Contains(name, "_x") && !strings.HasPrefix(name, "x") {
		return name
	}
	parts := strings.Split(name, "_")
	for i, seg := range parts {
		if !isEncodedChar(seg) {
			continue
		}
		code, err := strconv.ParseUint(seg[1:], 16, 32)
		if err != nil || utf16.IsSurrogate(rune(code)) {
			continue
		}
		parts[i] = string(rune(code))
	}
	return strings.Join(parts, "_")
}

// decodeElementNames applies DecodeName to the local name of every element
// below el.
func decodeElementNames(el *etree.Element) {
	for _, child := range el.ChildElements() {
		child.Tag = DecodeName(child.Tag)
		decodeElementNames(child)
	}
}

// EncodeName escapes name for use as an XML element name with the "_xHHHH_"
// escapes the engine writes. Every character that may not appear in a name,
// including ":", is escaped; characters outside the Basic Multilingual Plane
// use eight hex digits. An underscore that would otherwise start an escape
// is itself escaped.
func EncodeName(name string) string {
	var sb strings.Builder
	for i, r := range name {
		switch {
		case r == '_' && looksEncoded(name[i+1:]):
			sb.WriteString("_x005F_")
		case i == 0 && isNameStartChar(r), i > 0 && isNameChar(r):
			sb.WriteRune(r)
		case r > 0xFFFF:
			fmt.Fprintf(&sb, "_x%08X_", r)
		default:
			fmt.Fprintf(&sb, "_x%04X_", r)
		}
	}
	return sb.String()
}

// looksEncoded reports whether s starts with an escape body such as "x0020_".
func looksEncoded(s string) bool {
	return len(s) > encodedCharLen && isEncodedChar(s[:encodedCharLen]) && s[encodedCharLen] == '_'
}

func isNameStartChar(r rune) bool {
	switch {
	case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z', r == '_':
		return true
	case 0xC0 <= r && r <= 0xD6, 0xD8 <= r && r <= 0xF6, 0xF8 <= r && r <= 0x2FF,
		0x370 <= r && r <= 0x37D, 0x37F <= r && r <= 0x1FFF, 0x200C <= r && r <= 0x200D,
		0x2070 <= r && r <= 0x218F, 0x2C00 <= r && r <= 0x2FEF, 0x3001 <= r && r <= 0xD7FF,
		0xF900 <= r && r <= 0xFDCF, 0xFDF0 <= r && r <= 0xFFFD, 0x10000 <= r && r <= 0xEFFFF:
		return true
	}
	return false
}

func isNameChar(r rune) bool {
	switch {
	case isNameStartChar(r), r == '-', r == '.', '0' <= r && r <= '9', r == 0xB7:
		return true
	case 0x300 <= r && r <= 0x36F, 0x203F <= r && r <= 0x2040:
		return true
	}
	return false
}
