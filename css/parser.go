package css

import (
	"bytes"
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into a mutable tree.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Parsing never fails, malformed
// input is skipped and noted in Stylesheet.Warnings.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	p.parseBlock(parser, sheet, sheet)

	if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
		p.log.Debug("CSS parse error", zap.Error(err))
		sheet.Warnings = append(sheet.Warnings, err.Error())
	}
	return sheet
}

// ParseString is Parse for string input.
func (p *Parser) ParseString(text string, source ...string) *Stylesheet {
	return p.Parse([]byte(text), source...)
}

// parseBlock consumes grammar items into c until the end of c's block or the
// end of input.
func (p *Parser) parseBlock(parser *css.Parser, c Container, sheet *Stylesheet) {
	// selector list before a comma arrives as separate qualified rule items
	var selectors []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			return

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			return

		case css.CommentGrammar:
			Append(c, &Comment{Text: string(data)})

		case css.AtRuleGrammar:
			Append(c, &AtRule{
				Name:   strings.TrimPrefix(string(data), "@"),
				Params: preludeText(parser.Values()),
			})

		case css.BeginAtRuleGrammar:
			at := &AtRule{
				Name:     strings.TrimPrefix(string(data), "@"),
				Params:   preludeText(parser.Values()),
				HasBlock: true,
			}
			Append(c, at)
			p.parseBlock(parser, at, sheet)

		case css.QualifiedRuleGrammar:
			selectors = append(selectors, selectorText(parser.Values()))

		case css.BeginRulesetGrammar:
			selectors = append(selectors, selectorText(parser.Values()))
			rule := &Rule{Selector: joinSelectors(selectors)}
			selectors = nil
			Append(c, rule)
			p.parseBlock(parser, rule, sheet)

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			prop := string(data)
			if gt == css.DeclarationGrammar {
				prop = strings.ToLower(prop)
			}
			Append(c, &Declaration{
				Property: prop,
				Value:    tokensToString(parser.Values()),
			})

		default:
			// stray tokens, e.g. a declaration at top level
			msg := "unexpected content: " + string(data) + tokensToString(parser.Values())
			sheet.Warnings = append(sheet.Warnings, msg)
			p.log.Debug("Skipping unexpected CSS content", zap.Stringer("grammar", gt), zap.ByteString("data", data))
		}
	}
}

// joinSelectors normalizes selector list parts into "a, b" form.
func joinSelectors(parts []string) string {
	var out []string
	for _, s := range parts {
		out = append(out, SplitSelectors(s)...)
	}
	return strings.Join(out, ", ")
}

// tokensToString rebuilds text from tokens collapsing whitespace runs.
func tokensToString(tokens []css.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			continue
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// selectorText rebuilds selector text. The lexer drops whitespace around
// combinators, top level ones get single spaces back (".a > .b").
func selectorText(tokens []css.Token) string {
	var sb strings.Builder
	depth, space := 0, false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = true
			continue
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.DelimToken:
			if depth == 0 && len(t.Data) == 1 && strings.IndexByte(">+~", t.Data[0]) >= 0 {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.Write(t.Data)
				space = true
				continue
			}
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		space = false
		sb.Write(t.Data)
	}
	return sb.String()
}

// preludeText rebuilds at-rule prelude text. The lexer drops whitespace
// after commas and colons, so "(min-width:600px)" gets its space back.
// Colons outside parentheses (@page :first) are left alone.
func preludeText(tokens []css.Token) string {
	var sb strings.Builder
	depth, space := 0, false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = true
			continue
		case css.LeftParenthesisToken, css.LeftBracketToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		}
		if space && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(t.Data)
		space = t.TokenType == css.CommaToken || (t.TokenType == css.ColonToken && depth > 0)
	}
	return sb.String()
}
