package annotate

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

const (
	markAdded  = "added"
	markMerged = "merged"
)

var (
	styleValue  = regexp.MustCompile(`(?i)\sstyle\s*=\s*["']`)
	mergedColor = regexp.MustCompile(`(?i)\sstyle\s*=\s*["'](color: [^;"']*; )`)
)

// Unannotate removes everything Annotate injected into markup: marked name
// spans are replaced by their inner markup and marked tags get their original
// attributes back, byte for byte.
func Unannotate(markup string) string {
	if !strings.Contains(markup, "data-autoquote-") {
		return markup
	}

	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	b.Grow(len(markup))

	var spans []bool // open <span> elements, true when injected
	for {
		tt := z.Next()
		raw := string(z.Raw())
		switch tt {
		case html.ErrorToken:
			b.WriteString(raw)
			return b.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if tt == html.StartTagToken && string(name) == "span" {
				injected := hasAttr(raw, AttrHighlight) || hasAttr(raw, AttrName)
				spans = append(spans, injected)
				if injected {
					continue
				}
			}
			raw = unmarkTag(unmarkTag(raw, AttrText), AttrQuote)
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == "span" && len(spans) > 0 {
				injected := spans[len(spans)-1]
				spans = spans[:len(spans)-1]
				if injected {
					continue
				}
			}
		}
		b.WriteString(raw)
	}
}

// splitParagraph separates a whole <p> element into its start tag, inner
// markup and end tag. Anything else is returned as inner markup.
func splitParagraph(markup string) (open, inner, end string) {
	z := html.NewTokenizer(strings.NewReader(markup))
	if z.Next() != html.StartTagToken {
		return "", markup, ""
	}
	raw := string(z.Raw())
	if name, _ := z.TagName(); string(name) != "p" {
		return "", markup, ""
	}

	body := markup[len(raw):]
	trimmed := strings.TrimRightFunc(body, unicode.IsSpace)
	if len(trimmed) < len("</p>") || !strings.EqualFold(trimmed[len(trimmed)-len("</p>"):], "</p>") {
		return "", markup, ""
	}
	cut := len(trimmed) - len("</p>")
	return raw, body[:cut], body[cut:]
}

// markTags marks every start tag named tag in markup that is not marked yet.
func markTags(markup, tag, attr, color string) string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	b.Grow(len(markup))
	for {
		tt := z.Next()
		raw := string(z.Raw())
		if tt == html.ErrorToken {
			b.WriteString(raw)
			return b.String()
		}
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			if name, _ := z.TagName(); string(name) == tag && !hasAttr(raw, attr) {
				raw = markTag(raw, attr, color)
			}
		}
		b.WriteString(raw)
	}
}

// markTag adds the marker attribute and a foreground color to the raw start
// tag. An existing style attribute is prefixed instead of duplicated, and the
// marker value records which of the two edits unmarkTag has to undo.
func markTag(raw, attr, color string) string {
	at := tagNameEnd(raw)
	if loc := styleValue.FindStringIndex(raw); loc != nil && loc[0] >= at {
		return raw[:at] + ` ` + attr + `="` + markMerged + `"` + raw[at:loc[1]] + `color: ` + color + `; ` + raw[loc[1]:]
	}
	return raw[:at] + ` ` + attr + `="` + markAdded + `" style="color: ` + color + `;"` + raw[at:]
}

func unmarkTag(raw, attr string) string {
	added := ` ` + attr + `="` + markAdded + `" style="`
	if i := strings.Index(raw, added); i >= 0 {
		rest := raw[i+len(added):]
		if j := strings.IndexByte(rest, '"'); j >= 0 {
			return raw[:i] + rest[j+1:]
		}
		return raw
	}

	merged := ` ` + attr + `="` + markMerged + `"`
	if i := strings.Index(raw, merged); i >= 0 {
		raw = raw[:i] + raw[i+len(merged):]
		if m := mergedColor.FindStringSubmatchIndex(raw); m != nil {
			raw = raw[:m[2]] + raw[m[3]:]
		}
	}
	return raw
}

func hasAttr(raw, attr string) bool {
	return strings.Contains(raw, " "+attr+"=")
}

// tagNameEnd returns the offset just past the element name of a raw start tag.
func tagNameEnd(raw string) int {
	i := 1
	for i < len(raw) && !strings.ContainsRune(" \t\n\f\r/>", rune(raw[i])) {
		i++
	}
	return i
}
