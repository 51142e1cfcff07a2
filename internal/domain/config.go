package domain

type Config struct {
	Version          string
	ConfigPath       string
	DownloadLocation string `yaml:"downloadLocation"`
	NamingTemplate   string `yaml:"namingTemplate"`
	ConcurrencyLimit int    `yaml:"concurrencyLimit"`
	RetryLimit       int    `yaml:"retryLimit"`
	DocumentFormat   string `yaml:"documentFormat"`
	URLsFile         string `yaml:"urlsFile"`
	ErrorLog         string `yaml:"errorLog"`
	LogPath          string `yaml:"logPath"`
	LogLevel         string `yaml:"logLevel"`
	LogMaxSize       int    `yaml:"logMaxSize"` // in megabytes
	LogMaxBackups    int    `yaml:"logMaxBackups"`
}

// DocumentFormats lists the supported per-chapter document outputs.
var DocumentFormats = []string{"pdf", "cbz", "epub"}

func ValidDocumentFormat(format string) bool {
	if format == "" {
		return true
	}
	for _, f := range DocumentFormats {
		if f == format {
			return true
		}
	}
	return false
}
