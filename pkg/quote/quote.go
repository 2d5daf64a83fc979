package quote

import (
	"strings"
	"unicode"
)

const (
	// ActionMarker delimits action regions in typed input.
	ActionMarker = "*"

	// ToggleCommand is the chat command that flips the extension on or off.
	ToggleCommand = "//aq"
)

// ToggleRequest is returned by InterpretCommand when the input is the toggle command.
// The host flips the enabled flag, clears the input field and cancels the submission.
type ToggleRequest struct {
	Command string
}

// RewriteLine quotes the speech regions of a single input line.
//
// Double quotes typed by the user are discarded, the line is split on
// ActionMarker and the resulting chunks alternate between speech (quoted) and
// action (re-wrapped in markers). When asteriskMarkup is false every marker is
// removed from the result. The output always ends with exactly one newline.
func RewriteLine(input string, asteriskMarkup bool) string {
	input = strings.ReplaceAll(input, `"`, "")

	var b strings.Builder
	b.Grow(len(input) + 8)

	inside := false
	for _, chunk := range strings.Split(input, ActionMarker) {
		if inside {
			b.WriteString(ActionMarker)
			b.WriteString(chunk)
			b.WriteString(ActionMarker)
		} else {
			writeSpeech(&b, chunk)
		}
		inside = !inside
	}

	out := b.String()
	if !asteriskMarkup {
		out = strings.ReplaceAll(out, ActionMarker, "")
	}
	return out + "\n"
}

// writeSpeech writes chunk with its trimmed core quoted, surrounded by the
// whitespace before the first and after the last non-space character. A blank
// chunk has no core, so both runs span the whole chunk and it is written twice.
func writeSpeech(b *strings.Builder, chunk string) {
	leading := chunk[:len(chunk)-len(trimLeft(chunk))]
	trailing := chunk[len(trimRight(chunk)):]

	b.WriteString(leading)
	if core := trim(chunk); core != "" {
		b.WriteByte('"')
		b.WriteString(core)
		b.WriteByte('"')
	}
	b.WriteString(trailing)
}

// RewriteInput applies RewriteLine to every line of a multi-line input and
// trims the outer whitespace of the joined result.
func RewriteInput(input string, asteriskMarkup bool) string {
	var b strings.Builder
	for _, line := range strings.Split(input, "\n") {
		b.WriteString(RewriteLine(line, asteriskMarkup))
	}
	return trim(b.String())
}

// InterpretCommand reports whether input is the toggle command.
func InterpretCommand(input string) (ToggleRequest, bool) {
	if trim(input) != ToggleCommand {
		return ToggleRequest{}, false
	}
	return ToggleRequest{Command: ToggleCommand}, true
}

// isSpace matches the white space set of ECMAScript String.prototype.trim,
// which adds the byte order mark to the Unicode white space characters.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trim(s string) string      { return strings.TrimFunc(s, isSpace) }
func trimLeft(s string) string  { return strings.TrimLeftFunc(s, isSpace) }
func trimRight(s string) string { return strings.TrimRightFunc(s, isSpace) }
