/*
Package quote rewrites typed roleplay chat input.

Plain text is treated as speech and wrapped in double quotes, while text
between asterisks is treated as a narrated action and kept in its markers:

	quote.RewriteLine("hello *waves* there", true)
	// "hello" *waves* "there"\n

When asterisk markup is disabled the markers are stripped from the result, so
the action reads as unmarked text between two quoted speech fragments.

The functions are pure and safe for concurrent use.
*/
package quote
