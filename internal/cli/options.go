package cli

// Store kinds accepted by --store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreBunt   = "bunt"
	StoreLoam   = "loam"
)

// Options holds the persistent flags shared by every command.
type Options struct {
	Store       string
	StorePath   string
	StoreFormat string
	RedisAddr   string
	Name        string
	Debug       bool
	MetricsFile string
}

// AnnotateOptions configures the annotate command.
type AnnotateOptions struct {
	Variant    string
	Undo       bool
	InPlace    bool
	NameColor  string
	TextColor  string
	QuoteColor string
}

// PreviewOptions configures the preview command.
type PreviewOptions struct {
	Markdown    bool
	Style       string
	Interactive bool
}
