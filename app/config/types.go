package config

// SourceConfig represents a complete per-source configuration file,
// resolved from its raw YAML form by the loader.
type SourceConfig struct {
	Name     string // Derived from filename (without .yml extension)
	Settings SourceSettings
}

// SourceSettings contains fetch settings for one upstream data source
type SourceSettings struct {
	Enabled bool
	PageNo  int
	NumRows int
	Timeout int // seconds
}
