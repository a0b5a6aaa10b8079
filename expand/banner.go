package expand

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"gridder/grid"
	"gridder/misc"
)

// BannerValues holds variables available for banner template expansion.
type BannerValues struct {
	Source  string // source name without extension
	Name    string // source name as processed
	Columns int
	Mode    string
	Version string
}

func parseBanner(text string) (*template.Template, error) {
	if len(strings.TrimSpace(text)) == 0 {
		return nil, nil
	}
	tmpl, err := template.New("banner").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("unable to parse banner template: %w", err)
	}
	return tmpl, nil
}

// banner expands template for a single style sheet into a CSS comment
// terminated by a new line. Nil template produces nothing.
func banner(tmpl *template.Template, name string, cfg grid.Config) ([]byte, error) {
	if tmpl == nil {
		return nil, nil
	}
	base := path.Base(name)
	values := BannerValues{
		Source:  strings.TrimSuffix(base, path.Ext(base)),
		Name:    name,
		Columns: cfg.Columns,
		Mode:    cfg.Mode.String(),
		Version: misc.GetVersion(),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return nil, fmt.Errorf("unable to expand banner template: %w", err)
	}
	text := strings.TrimSpace(buf.String())
	if len(text) == 0 {
		return nil, nil
	}
	// comment cannot be closed from inside
	text = strings.ReplaceAll(text, "*/", "* /")
	return []byte("/* " + text + " */\n"), nil
}

// withBanner puts head at the top of style sheet text, after @charset rule
// which must stay first.
func withBanner(text, head []byte) []byte {
	if len(head) == 0 {
		return text
	}
	at := 0
	if bytes.HasPrefix(text, []byte("@charset")) {
		if i := bytes.IndexByte(text, '\n'); i >= 0 {
			at = i + 1
		} else {
			return append(append(text, '\n'), head...)
		}
	}
	result := make([]byte, 0, len(text)+len(head))
	result = append(result, text[:at]...)
	result = append(result, head...)
	return append(result, text[at:]...)
}
