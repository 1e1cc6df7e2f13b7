package markdown

import (
	"strings"

	"github.com/goliatone/go-sitecms/richtext"
)

// ParseInline scans text once from left to right and splits it into spans,
// turning [label](href) into link spans and **text** into strong spans.
//
// existing is the number of mark definitions the caller's block already
// holds; new link keys continue from it so they stay unique within the
// block. The returned definitions are new and must be appended by the
// caller. Malformed link syntax is kept as literal text.
func ParseInline(text string, existing int) ([]richtext.Span, []richtext.MarkDef) {
	p := inlineParser{existing: existing}

	for i := 0; i < len(text); {
		switch {
		case text[i] == '[':
			if label, href, next, ok := scanLink(text, i); ok {
				p.flush()
				p.link(label, href)
				i = next
				continue
			}
			p.acc.WriteByte(text[i])
			i++
		case strings.HasPrefix(text[i:], "**"):
			p.flush()
			start := i + 2
			end := strings.Index(text[start:], "**")
			if end < 0 {
				p.acc.WriteString(text[start:])
				p.flush(richtext.MarkStrong)
				i = len(text)
				continue
			}
			p.acc.WriteString(text[start : start+end])
			p.flush(richtext.MarkStrong)
			i = start + end + 2
		default:
			p.acc.WriteByte(text[i])
			i++
		}
	}
	p.flush()

	if len(p.spans) == 0 {
		return []richtext.Span{richtext.NewSpan(richtext.SpanKey(0), text)}, nil
	}
	return p.spans, p.defs
}

type inlineParser struct {
	acc      strings.Builder
	spans    []richtext.Span
	defs     []richtext.MarkDef
	existing int
}

func (p *inlineParser) flush(marks ...string) {
	if p.acc.Len() == 0 {
		return
	}
	p.spans = append(p.spans, richtext.NewSpan(richtext.SpanKey(len(p.spans)), p.acc.String(), marks...))
	p.acc.Reset()
}

func (p *inlineParser) link(label, href string) {
	key := richtext.LinkKey(p.existing + len(p.defs))
	p.defs = append(p.defs, richtext.NewLink(key, href))
	p.spans = append(p.spans, richtext.NewSpan(richtext.SpanKey(len(p.spans)), label, key))
}

// scanLink reads a [label](href) token starting at the '[' at index start.
// It reports false when the closing bracket, the opening parenthesis right
// after it, or the closing parenthesis is missing.
func scanLink(text string, start int) (label, href string, next int, ok bool) {
	closeBracket := strings.IndexByte(text[start+1:], ']')
	if closeBracket < 0 {
		return "", "", 0, false
	}
	labelEnd := start + 1 + closeBracket
	if labelEnd+1 >= len(text) || text[labelEnd+1] != '(' {
		return "", "", 0, false
	}
	hrefStart := labelEnd + 2
	closeParen := strings.IndexByte(text[hrefStart:], ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	hrefEnd := hrefStart + closeParen
	return text[start+1 : labelEnd], text[hrefStart:hrefEnd], hrefEnd + 1, true
}
