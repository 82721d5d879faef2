package cfg

type Cfg struct {
	// Upstream API credentials; an empty key disables its source
	DataGoKrAPIKey string
	KStartupAPIKey string
	KoccaAPIKey    string
	KonepsAPIKey   string

	// Storage configuration
	DBPath string

	// Application configuration
	SourcesDir        string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
