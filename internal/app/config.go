package app

// Config holds runtime configuration for the application.
type Config struct {
	InputPath  string
	OutputPath string

	// Stream encodings; empty means detect from the path extension
	InputFormat  string
	OutputFormat string
	InputCharset string
	Indent       string

	// Field paths, dotted
	SourceField     string
	TargetField     string
	HTMLSourceField string

	// Optional summaries of the extracted references
	SummaryPath    string
	SummaryPDFPath string

	// Behavior
	DryRun  bool
	Verbose bool
}
