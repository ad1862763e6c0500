package render

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"

	"github.com/yhkl-dev/navistream/textnorm"
)

// charset reports which runes the display can show.
type charset interface {
	encodes(r rune) bool
}

type utf8Charset struct{}

func (utf8Charset) encodes(rune) bool { return true }

type asciiCharset struct{}

func (asciiCharset) encodes(r rune) bool { return r < 0x80 }

type singleByteCharset struct {
	cm *charmap.Charmap
}

func (c singleByteCharset) encodes(r rune) bool {
	_, ok := c.cm.EncodeRune(r)
	return ok
}

// lookupCharset resolves a display encoding name.
func lookupCharset(name string) (charset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return utf8Charset{}, nil
	case "ascii", "us-ascii":
		return asciiCharset{}, nil
	case "latin1", "latin-1", "iso-8859-1":
		return singleByteCharset{charmap.ISO8859_1}, nil
	case "windows-1252", "cp1252":
		return singleByteCharset{charmap.Windows1252}, nil
	default:
		return nil, errors.Errorf("unsupported display encoding %q", name)
	}
}

func encodable(cs charset, s string) bool {
	for _, r := range s {
		if !cs.encodes(r) {
			return false
		}
	}
	return true
}

// fallback makes s displayable in cs: accents are stripped first and
// whatever still cannot be shown becomes '?'.
func fallback(cs charset, s string) string {
	s = Sanitize(s)
	if encodable(cs, s) {
		return s
	}
	s = textnorm.StripAccents(s)
	if encodable(cs, s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if cs.encodes(r) {
			return r
		}
		return '?'
	}, s)
}
