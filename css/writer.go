package css

import (
	"fmt"
	"io"
	"strings"
)

const indent = "  "

// WriteTo writes the stylesheet to w in tree order, implementing io.WriterTo.
// Top level items are separated by blank lines, nested blocks are indented.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writeNodes(cw, s.children, 0, true)
	return cw.n, cw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// String returns the CSS text of a single rule.
func (r *Rule) String() string {
	var sb strings.Builder
	writeNode(&countingWriter{w: &sb}, r, 0)
	return sb.String()
}

// countingWriter remembers first error, all subsequent writes are dropped.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}

func writeNodes(cw *countingWriter, nodes []Node, depth int, separate bool) {
	for i, n := range nodes {
		if separate && i > 0 {
			if _, isDecl := n.(*Declaration); !isDecl {
				cw.printf("\n")
			}
		}
		writeNode(cw, n, depth)
	}
}

func writeNode(cw *countingWriter, n Node, depth int) {
	pad := strings.Repeat(indent, depth)

	switch n := n.(type) {
	case *Declaration:
		cw.printf("%s%s: %s;\n", pad, n.Property, n.Value)

	case *Comment:
		cw.printf("%s%s\n", pad, n.Text)

	case *Rule:
		cw.printf("%s%s {\n", pad, n.Selector)
		writeNodes(cw, n.children, depth+1, false)
		cw.printf("%s}\n", pad)

	case *AtRule:
		head := "@" + n.Name
		if n.Params != "" {
			head += " " + n.Params
		}
		if !n.HasBlock {
			cw.printf("%s%s;\n", pad, head)
			return
		}
		cw.printf("%s%s {\n", pad, head)
		writeNodes(cw, n.children, depth+1, false)
		cw.printf("%s}\n", pad)

	case *Stylesheet:
		writeNodes(cw, n.children, depth, true)
	}
}
