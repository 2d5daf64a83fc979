/*
Package autoquote rewrites roleplay chat input and decorates rendered chat
paragraphs.

Typed input is split on asterisks: speech is wrapped in double quotes and
actions stay between asterisks (or lose them, depending on settings). The
"//aq" command flips the extension on and off. Rendered paragraphs can get
their speaker names colored, or the full-color styling that also colors the
paragraph text and quotations.

# Usage

	ext := autoquote.New(autoquote.WithStore(file.NewStore("")))

	sub, err := ext.Submit(ctx, `hello *waves* there`)
	if err != nil {
		return err
	}
	if sub.Send {
		send(sub.Text) // "hello" waves "there"
	}

The pure transforms live in pkg/quote and pkg/annotate; pkg/host holds the
stateful pieces the Extension wires together.
*/
package autoquote
