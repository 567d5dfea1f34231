package fetch

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// DecodeBody converts a raw response body to UTF-8. Valid UTF-8 passes
// through untouched; anything else is treated as EUC-KR (which also
// covers CP949), the legacy encoding the older department boards still
// serve. Undecodable bytes become replacement runes rather than errors
// so one bad byte does not sink a whole page.
func DecodeBody(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		// The decoder substitutes by default; this path is unreachable in
		// practice but the raw bytes are still better than nothing.
		return string(raw)
	}
	return string(decoded)
}
