package domain

// ExtensionName is the key under which the host stores the extension settings.
const ExtensionName = "AutoQuote"

// Settings keys for mapstructure and JSON standardization.
const (
	KeyEnabled               = "enabled"
	KeyAsteriskEnabled       = "asteriskEnabled"
	KeyHighlightNamesEnabled = "highlightNamesEnabled"
	KeyHighlightNamesColor   = "highlightNamesColor"
	KeyMessageColorsEnabled  = "messageColorsEnabled"
	KeyMessageTextColor      = "messageTextColor"
	KeyMessageNamesColor     = "messageNamesColor"
	KeyMessageQuotesColor    = "messageQuotesColor"
)
