package config

// Config holds docline configuration.
type Config struct {
	// Input is the directory of PDF files to process (non-recursive).
	Input string `mapstructure:"input" yaml:"input"`

	// Output is the directory receiving one JSON artifact per input.
	Output string `mapstructure:"output" yaml:"output"`

	// Schema is the path to an external JSON Schema for output records.
	// Empty selects the embedded default schema.
	Schema string `mapstructure:"schema" yaml:"schema"`

	// Workers bounds concurrent per-file processing.
	Workers int `mapstructure:"workers" yaml:"workers"`

	// MaxPages rejects documents above this page count. Zero disables
	// the bound.
	MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`

	// PDFPassword is tried as the user password for encrypted inputs.
	// Supports ${ENV_VAR} syntax.
	PDFPassword string `mapstructure:"pdf_password" yaml:"pdf_password"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Heuristics HeuristicsCfg `mapstructure:"heuristics" yaml:"heuristics"`
}

// HeuristicsCfg tunes heading detection and section grouping.
type HeuristicsCfg struct {
	// HeadingScore is the minimum heading score (see internal/headings).
	HeadingScore int `mapstructure:"heading_score" yaml:"heading_score"`

	// SizeRatio is the font-size multiple of the document average at
	// which text earns heading points.
	SizeRatio float64 `mapstructure:"size_ratio" yaml:"size_ratio"`

	// StrongSizeRatio marks clearly oversized text.
	StrongSizeRatio float64 `mapstructure:"strong_size_ratio" yaml:"strong_size_ratio"`

	// MaxHeadingWords filters paragraphs out of heading candidates.
	MaxHeadingWords int `mapstructure:"max_heading_words" yaml:"max_heading_words"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:    "./input",
		Output:   "./output",
		Workers:  4,
		MaxPages: 2000,
		LogLevel: "info",
		Heuristics: HeuristicsCfg{
			HeadingScore:    3,
			SizeRatio:       1.1,
			StrongSizeRatio: 1.3,
			MaxHeadingWords: 20,
		},
	}
}
