package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nameSpan = `<span data-autoquote-highlight="true" style="color: #ff0000;">`

func TestAnnotate_Names(t *testing.T) {
	cfg := Config{Variant: VariantNames, NameColor: "#ff0000"}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Single Line", "Bob: hello", nameSpan + "Bob</span>: hello"},
		{"Leading Whitespace Kept", " Bob: hi", " " + nameSpan + "Bob</span>: hi"},
		{"First Colon Only", "Bob: it is 10:30", nameSpan + "Bob</span>: it is 10:30"},
		{
			"Every Line",
			"Bob: hi<br>Alice: yo<BR/>no colon here",
			nameSpan + "Bob</span>: hi<br>" + nameSpan + "Alice</span>: yo<BR/>no colon here",
		},
		{"Whole Paragraph", "<p>Bob: hi</p>", "<p>" + nameSpan + "Bob</span>: hi</p>"},
		{"Whitespace Only", "   ", "   "},
		{"No Colon", "just talking", "just talking"},
		{"Colon In Attribute", `<a href="http://x">link</a>: hi`, `<a href="http://x">link</a>: hi`},
		{"Colon After Tag", `Bob <a title="a:b">x</a>`, `Bob <a title="a:b">x</a>`},
		{"Quoted Name", `"Bob": hi`, `"Bob": hi`},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Annotate(tt.input, cfg))
		})
	}
}

func TestAnnotate_Full(t *testing.T) {
	cfg := Config{Variant: VariantFull, NameColor: "#111", TextColor: "#222", QuoteColor: "#333"}

	t.Run("Whole Paragraph", func(t *testing.T) {
		got := Annotate(`<p>Bob: hi <q>there</q></p>`, cfg)
		assert.Equal(t,
			`<p data-autoquote-text="added" style="color: #222;">`+
				`<span data-autoquote-name="true" style="color: #111;">Bob</span>: hi `+
				`<q data-autoquote-quote="added" style="color: #333;">there</q></p>`,
			got)
	})

	t.Run("Existing Style Is Prefixed", func(t *testing.T) {
		got := Annotate(`<p style="font-weight: bold">Ann: <q class="x" style='font-style: italic'>yo</q></p>`, cfg)
		assert.Equal(t,
			`<p data-autoquote-text="merged" style="color: #222; font-weight: bold">`+
				`<span data-autoquote-name="true" style="color: #111;">Ann</span>: `+
				`<q data-autoquote-quote="merged" class="x" style='color: #333; font-style: italic'>yo</q></p>`,
			got)
	})

	t.Run("Inner Markup", func(t *testing.T) {
		got := Annotate(`Bob: <q>hi</q>`, cfg)
		assert.NotContains(t, got, AttrText)
		assert.Contains(t, got, `<q data-autoquote-quote="added" style="color: #333;">hi</q>`)
	})

	t.Run("Name After Break", func(t *testing.T) {
		got := Annotate("intro<br/>Ann: yo", cfg)
		assert.Equal(t, `intro<br/><span data-autoquote-name="true" style="color: #111;">Ann</span>: yo`, got)
	})

	t.Run("Default Colors", func(t *testing.T) {
		got := Annotate(`<p><q>x</q></p>`, Config{Variant: VariantFull})
		assert.Contains(t, got, "color: "+DefaultTextColor+";")
		assert.Contains(t, got, "color: "+DefaultQuoteColor+";")
	})
}

func TestAnnotate_None(t *testing.T) {
	assert.Equal(t, "Bob: hi", Annotate("Bob: hi", Config{}))
}

func TestAnnotate_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Bob: hello",
		"  Bob: hi<br>Alice: yo<BR />tail",
		"<p>Bob: hi <q>there</q></p>",
		`<p class="mes" style="margin: 0">Ann: <q style="x: y">a</q> and <q>b</q></p>` + "\n",
		`<em>Bob</em>: <span class="keep">hi</span>`,
		"Sam &amp; Max: hello<br>\nnext: line",
		`<q cite="x"/>`,
		`text with <img alt="a<br>b: c"> image`,
		"<P>Upper: case</P>",
	}
	configs := []Config{
		{Variant: VariantNames, NameColor: "#abc"},
		{Variant: VariantFull, NameColor: "#abc", TextColor: "red", QuoteColor: "rgb(1, 2, 3)"},
	}

	for _, cfg := range configs {
		for _, in := range inputs {
			annotated := Annotate(in, cfg)
			assert.Equal(t, in, Unannotate(annotated), "variant %s input %q", cfg.Variant, in)
		}
	}
}

func TestAnnotate_ReannotateDoesNotDoubleWrap(t *testing.T) {
	for _, cfg := range []Config{
		{Variant: VariantNames, NameColor: "#abc"},
		{Variant: VariantFull},
	} {
		once := Annotate("<p>Bob: <q>hi</q><br>Ann: yo</p>", cfg)
		twice := Annotate(once, cfg)
		assert.Equal(t, once, twice, "variant %s", cfg.Variant)
	}
}

func TestUnannotate_LeavesForeignSpans(t *testing.T) {
	in := `<span class="a"><span data-autoquote-highlight="true" style="color: red;">Bob</span>: hi</span>`
	assert.Equal(t, `<span class="a">Bob: hi</span>`, Unannotate(in))
}

func TestSplitBreaks(t *testing.T) {
	segments, breaks := splitBreaks(`a<br>b<img alt="x<br>y">c<Br   />d`)
	require.Len(t, breaks, 2)
	assert.Equal(t, []string{"<br>", "<Br   />"}, breaks)
	assert.Equal(t, []string{"a", `b<img alt="x<br>y">c`, "d"}, segments)
}

func TestAnnotate_InvalidUTF8KeepsBytes(t *testing.T) {
	inputs := []string{
		"<p>\xff Bob: hi</p>",
		"a\xfe<br>Bob\xff: hi<br/>\xc3",
	}
	for _, in := range inputs {
		for _, v := range []Variant{VariantNames, VariantFull} {
			assert.Equal(t, in, Unannotate(Annotate(in, Config{Variant: v})), "variant %s input %q", v, in)
		}
	}

	segments, breaks := splitBreaks("\xff<br>\xfe")
	assert.Equal(t, []string{"\xff", "\xfe"}, segments)
	assert.Equal(t, []string{"<br>"}, breaks)
}

func TestColorIsSanitized(t *testing.T) {
	got := Annotate("Bob: hi", Config{Variant: VariantNames, NameColor: `red;" onclick="alert(1)`})
	assert.NotContains(t, got, `onclick="`)
	assert.Equal(t, "Bob: hi", Unannotate(got))

	assert.Equal(t, DefaultNameColor, colorOr(` ;"`, DefaultNameColor))
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
		ok   bool
	}{
		{"", VariantNone, true},
		{"off", VariantNone, true},
		{"names", VariantNames, true},
		{"Highlight", VariantNames, true},
		{"full", VariantFull, true},
		{"rainbow", VariantNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseVariant(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}
