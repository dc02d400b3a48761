package sanitize

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

const charsetUTF8 = "UTF-8"

var utf8ByteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts raw file bytes to text and reports the charset used.
// Valid UTF-8 is taken as is; anything else goes through statistical charset
// detection. When detection or decoding fails the bytes are decoded as UTF-8 with
// invalid sequences replaced by U+FFFD.
func DecodeText(raw []byte) (string, string) {
	if len(raw) == 0 {
		return "", charsetUTF8
	}
	raw = bytes.TrimPrefix(raw, utf8ByteOrderMark)
	if utf8.Valid(raw) {
		return string(raw), charsetUTF8
	}

	if detected, detectError := chardet.NewTextDetector().DetectBest(raw); detectError == nil && detected != nil {
		if decoded, ok := decodeWithCharset(raw, detected.Charset); ok {
			return decoded, detected.Charset
		}
	}
	return decodeAsUTF8(raw), charsetUTF8
}

func decodeWithCharset(raw []byte, charset string) (string, bool) {
	if strings.EqualFold(charset, charsetUTF8) {
		return "", false
	}
	encoding, lookupError := htmlindex.Get(charset)
	if lookupError != nil || encoding == nil {
		return "", false
	}
	decoded, decodeError := encoding.NewDecoder().Bytes(raw)
	if decodeError != nil {
		return "", false
	}
	return string(decoded), true
}

func decodeAsUTF8(raw []byte) string {
	decoded, decodeError := unicode.UTF8.NewDecoder().Bytes(raw)
	if decodeError != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(decoded)
}
