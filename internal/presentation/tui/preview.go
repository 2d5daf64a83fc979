package tui

import (
	"strings"

	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/muesli/termenv"
)

// Preview colors rewritten text the way the chat would show it: speech in
// the quote color, actions in italics and, when a name styling is enabled,
// a leading "name:" in the name color.
type Preview struct {
	profile    termenv.Profile
	nameColor  string
	quoteColor string
	textColor  string
	names      bool
}

// NewPreview builds a preview for the given settings and color profile.
func NewPreview(profile termenv.Profile, s domain.Settings) *Preview {
	p := &Preview{
		profile:    profile,
		quoteColor: s.MessageQuotesColor,
	}
	if cfg, ok := s.AnnotationConfig(); ok {
		p.names = true
		p.nameColor = cfg.NameColor
		p.textColor = cfg.TextColor
	}
	return p
}

// Render returns text with terminal styling applied line by line.
func (p *Preview) Render(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = p.renderLine(line)
	}
	return strings.Join(lines, "\n")
}

func (p *Preview) renderLine(line string) string {
	var b strings.Builder

	if p.names {
		if idx := strings.IndexByte(line, ':'); idx > 0 && !strings.ContainsAny(line[:idx], `"*<>`) {
			b.WriteString(p.style(line[:idx], p.nameColor).String())
			line = line[idx:]
		}
	}

	var (
		seg      strings.Builder
		inSpeech bool
		inAction bool
	)
	flush := func() {
		if seg.Len() == 0 {
			return
		}
		s := p.style(seg.String(), p.textColor)
		switch {
		case inSpeech:
			s = p.style(seg.String(), p.quoteColor)
		case inAction:
			s = s.Italic()
		}
		b.WriteString(s.String())
		seg.Reset()
	}

	for _, r := range line {
		switch {
		case r == '"' && !inAction:
			if inSpeech {
				seg.WriteRune(r)
				flush()
				inSpeech = false
				continue
			}
			flush()
			inSpeech = true
		case r == '*' && !inSpeech:
			if inAction {
				seg.WriteRune(r)
				flush()
				inAction = false
				continue
			}
			flush()
			inAction = true
		}
		seg.WriteRune(r)
	}
	flush()
	return b.String()
}

func (p *Preview) style(s, color string) termenv.Style {
	out := p.profile.String(s)
	if color != "" {
		out = out.Foreground(p.profile.Color(color))
	}
	return out
}
