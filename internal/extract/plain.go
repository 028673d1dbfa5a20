package extract

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// extractPlain returns content as a string. Content that is not valid UTF-8
// is retried as Shift-JIS, the common legacy encoding for the documents this
// tool ingests.
func extractPlain(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), content)
	if err != nil {
		return "", fmt.Errorf("decode text: not valid UTF-8 or Shift-JIS: %w", err)
	}
	return string(decoded), nil
}
