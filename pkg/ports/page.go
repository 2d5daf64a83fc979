package ports

import "context"

// Paragraph is one rendered chat message paragraph.
type Paragraph interface {
	// HTML returns the current markup of the paragraph as the whole element,
	// <p> tag included. The full-color styling sets the text color on that
	// tag, so a page returning only the inner markup gets names and quotes
	// colored but not the text.
	HTML() string
	// SetHTML replaces the markup of the paragraph.
	SetHTML(markup string) error
}

// Page is the host document whose chat paragraphs get decorated.
type Page interface {
	// Paragraphs returns every message paragraph currently rendered.
	Paragraphs() []Paragraph

	// Added delivers batches of newly inserted paragraphs until ctx is done,
	// then closes the channel.
	Added(ctx context.Context) <-chan []Paragraph
}
