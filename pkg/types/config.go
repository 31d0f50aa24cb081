package types

import "time"

// PandocConfig holds the formatting options passed to pandoc for every file.
type PandocConfig struct {
	// Bin is the pandoc executable name or path (default "pandoc").
	Bin string `json:"bin" yaml:"bin" mapstructure:"bin"`

	// PDFEngine selects the LaTeX engine pandoc drives (default "pdflatex").
	PDFEngine string `json:"pdf_engine" yaml:"pdf_engine" mapstructure:"pdf_engine"`

	// Margin is the page geometry margin (default "1in").
	Margin string `json:"margin" yaml:"margin" mapstructure:"margin"`

	// FontSize is the base font size (default "11pt").
	FontSize string `json:"fontsize" yaml:"fontsize" mapstructure:"fontsize"`

	// LinkColor colors hyperlinks; colorlinks is always on (default "blue").
	LinkColor string `json:"linkcolor" yaml:"linkcolor" mapstructure:"linkcolor"`

	// TOCDepth is the table-of-contents depth (default 3).
	TOCDepth int `json:"toc_depth" yaml:"toc_depth" mapstructure:"toc_depth"`

	// PaperSize is the LaTeX paper size (default "a4").
	PaperSize string `json:"papersize" yaml:"papersize" mapstructure:"papersize"`
}

// HistoryConfig controls the run history ledger.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups every setting the pipeline reads.
type Config struct {
	// Timeout bounds a single file's conversion (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// OutputDir is the PDF subdirectory created under the input directory
	// (default "pdf_output").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// ArchivePrefix names the default archive: <prefix>_<YYYYMMDD_HHMMSS>.zip.
	ArchivePrefix string `json:"archive_prefix" yaml:"archive_prefix" mapstructure:"archive_prefix"`

	// OnlyConverted restricts the archive to PDFs produced by this run instead
	// of every PDF found in OutputDir.
	OnlyConverted bool `json:"only_converted" yaml:"only_converted" mapstructure:"only_converted"`

	Pandoc  PandocConfig  `json:"pandoc" yaml:"pandoc" mapstructure:"pandoc"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`

	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	Color    bool   `json:"color" yaml:"color" mapstructure:"color"`
}

// Default values applied when a setting is absent.
const (
	DefaultTimeout       = 120 * time.Second
	DefaultOutputDir     = "pdf_output"
	DefaultArchivePrefix = "phd_documents"
	DefaultPandocBin     = "pandoc"
	DefaultPDFEngine     = "pdflatex"
	DefaultMargin        = "1in"
	DefaultFontSize      = "11pt"
	DefaultLinkColor     = "blue"
	DefaultTOCDepth      = 3
	DefaultPaperSize     = "a4"
	DefaultLogLevel      = "warn"
)

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() Config {
	return Config{
		Timeout:       DefaultTimeout,
		OutputDir:     DefaultOutputDir,
		ArchivePrefix: DefaultArchivePrefix,
		Pandoc: PandocConfig{
			Bin:       DefaultPandocBin,
			PDFEngine: DefaultPDFEngine,
			Margin:    DefaultMargin,
			FontSize:  DefaultFontSize,
			LinkColor: DefaultLinkColor,
			TOCDepth:  DefaultTOCDepth,
			PaperSize: DefaultPaperSize,
		},
		History:  HistoryConfig{Enabled: true},
		LogLevel: DefaultLogLevel,
		Color:    true,
	}
}
