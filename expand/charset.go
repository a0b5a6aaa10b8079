package expand

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"gridder/css"
)

// charsetRule matches @charset which, when present, must be the very first
// bytes of a style sheet.
var charsetRule = regexp.MustCompile(`^@charset "([^"]*)";`)

var boms = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFE, 0xFF},
	{0xFF, 0xFE},
}

// toUTF8 returns style sheet text as UTF-8. Byte order mark takes precedence
// over @charset, without either data is assumed to be UTF-8 already. The
// returned label is the encoding data was converted from, empty when no
// conversion happened.
func toUTF8(data []byte) ([]byte, string, error) {
	for _, bom := range boms {
		if bytes.HasPrefix(data, bom) {
			out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(encoding.Nop.NewDecoder())))
			if err != nil {
				return nil, "", fmt.Errorf("unable to decode style sheet: %w", err)
			}
			return out, "bom", nil
		}
	}

	m := charsetRule.FindSubmatch(data)
	if m == nil {
		return data, "", nil
	}
	label := strings.ToLower(strings.TrimSpace(string(m[1])))
	if label == "utf-8" || label == "utf8" {
		return data, "", nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unsupported style sheet charset %q: %w", label, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("unable to decode style sheet from %q: %w", label, err)
	}
	return out, label, nil
}

// markUTF8 updates top level @charset to match converted text.
func markUTF8(sheet *css.Stylesheet) {
	for _, n := range sheet.Nodes() {
		if at, ok := n.(*css.AtRule); ok && strings.EqualFold(at.Name, "charset") {
			at.Params = `"UTF-8"`
		}
	}
}
