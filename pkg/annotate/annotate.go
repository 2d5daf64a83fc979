package annotate

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Variant selects the styling applied by Annotate.
type Variant string

const (
	// VariantNone disables annotation.
	VariantNone Variant = ""
	// VariantNames colors the leading speaker name of every line.
	VariantNames Variant = "names"
	// VariantFull colors speaker names, the paragraph text and quotation elements.
	VariantFull Variant = "full"
)

// Marker attributes let Unannotate find everything Annotate injected.
const (
	AttrHighlight = "data-autoquote-highlight"
	AttrName      = "data-autoquote-name"
	AttrText      = "data-autoquote-text"
	AttrQuote     = "data-autoquote-quote"
)

// Default colors used when a Config leaves one empty.
const (
	DefaultNameColor  = "#CFCFC5"
	DefaultTextColor  = "#CFCFC5"
	DefaultQuoteColor = "#E6A15C"
)

// Config is an immutable annotation setup built from host settings.
type Config struct {
	Variant    Variant
	NameColor  string
	TextColor  string
	QuoteColor string
}

var (
	// breakTag matches line breaks that are not inside the attributes of another tag.
	breakTag = regexp2.MustCompile(`<br\s*/?>(?![^<]*>)`, regexp2.IgnoreCase)

	// leadingName matches "name:" at the start of a line of a simple paragraph.
	leadingName = regexp.MustCompile(`^(\s*)([^:<>"\n]+?):`)
	// leadingNameFull is the looser pattern of the full-color styling; names may wrap.
	leadingNameFull = regexp.MustCompile(`^(\s*)([^:<>"]+?):`)
)

// ParseVariant maps a user supplied name onto a Variant.
func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return VariantNone, true
	case "names", "name", "highlight":
		return VariantNames, true
	case "full", "colors", "color":
		return VariantFull, true
	}
	return VariantNone, false
}

// Annotate returns markup with its speaker names colored according to cfg.
//
// The markup is either the inner markup of a chat paragraph or the whole <p>
// element. With VariantFull a whole element also gets its text color, and
// every <q> element its quote color. Annotate never fails: markup without a
// leading name is returned unchanged.
func Annotate(markup string, cfg Config) string {
	switch cfg.Variant {
	case VariantNames:
		open, inner, end := splitParagraph(markup)
		return open + highlightNames(inner, leadingName, AttrHighlight, colorOr(cfg.NameColor, DefaultNameColor)) + end
	case VariantFull:
		open, inner, end := splitParagraph(markup)
		inner = highlightNames(inner, leadingNameFull, AttrName, colorOr(cfg.NameColor, DefaultNameColor))
		inner = markTags(inner, "q", AttrQuote, colorOr(cfg.QuoteColor, DefaultQuoteColor))
		if open != "" && !strings.Contains(open, AttrText) {
			open = markTag(open, AttrText, colorOr(cfg.TextColor, DefaultTextColor))
		}
		return open + inner + end
	}
	return markup
}

// highlightNames wraps the leading name of every break-delimited segment.
func highlightNames(markup string, pattern *regexp.Regexp, attr, color string) string {
	segments, breaks := splitBreaks(markup)

	var b strings.Builder
	b.Grow(len(markup) + len(segments)*64)
	for i, segment := range segments {
		if i > 0 {
			b.WriteString(breaks[i-1])
		}
		m := pattern.FindStringSubmatchIndex(segment)
		if m == nil {
			b.WriteString(segment)
			continue
		}
		// m: whole, leading whitespace, name
		b.WriteString(segment[m[2]:m[3]])
		b.WriteString(`<span `)
		b.WriteString(attr)
		b.WriteString(`="true" style="color: `)
		b.WriteString(color)
		b.WriteString(`;">`)
		b.WriteString(segment[m[4]:m[5]])
		b.WriteString(`</span>`)
		b.WriteString(segment[m[5]:])
	}
	return b.String()
}

// splitBreaks cuts markup at its line breaks, keeping each separator as written
// so the segments can be joined back without normalizing the markup.
func splitBreaks(markup string) (segments, breaks []string) {
	// offsets[i] is the byte offset of rune i; matches are reported in runes
	// but the markup is cut by bytes so invalid UTF-8 survives unchanged.
	offsets := make([]int, 0, len(markup)+1)
	for i := range markup {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(markup))

	last := 0
	m, err := breakTag.FindRunesMatch([]rune(markup))
	for err == nil && m != nil {
		start, end := offsets[m.Index], offsets[m.Index+m.Length]
		segments = append(segments, markup[last:start])
		breaks = append(breaks, markup[start:end])
		last = end
		m, err = breakTag.FindNextMatch(m)
	}
	segments = append(segments, markup[last:])
	return segments, breaks
}

// colorOr returns color stripped of characters that could escape the style
// attribute, or fallback when nothing usable is left.
func colorOr(color, fallback string) string {
	color = strings.Map(func(r rune) rune {
		switch r {
		case ';', '"', '\'', '<', '>', '&', '\n', '\r':
			return -1
		}
		return r
	}, color)
	if color = strings.TrimSpace(color); color == "" {
		return fallback
	}
	return color
}
