package parsel

import "time"

// Default configuration values.
const (
	DefaultWarnLimit     = 5000
	DefaultJoinSeparator = ""
	DefaultCacheExpire   = 24 * time.Hour
	DefaultRateLimit     = 1.0
)

// DefaultHeaders are sent with every HTTP request unless overridden.
var DefaultHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
}

// Config holds user configuration. It is loaded once at startup and passed
// explicitly to the components that need it.
type Config struct {
	Color          bool
	ViMode         bool
	WarnLimit      int
	JoinSeparator  string
	StartMode      Mode
	PreferredShell string
	InitialInput   []string

	HistoryFileCSS   string
	HistoryFileXPath string
	HistoryFileEmbed string

	Requests RequestsConfig
}

// RequestsConfig configures document fetching.
type RequestsConfig struct {
	Headers     map[string]string
	CacheExpire time.Duration
	CacheFile   string
	RateLimit   float64
}

// DefaultConfig returns the configuration used when no file overrides it.
// File paths are rooted at cacheDir.
func DefaultConfig(cacheDir string) *Config {
	headers := make(map[string]string, len(DefaultHeaders))
	for k, v := range DefaultHeaders {
		headers[k] = v
	}
	return &Config{
		Color:            true,
		WarnLimit:        DefaultWarnLimit,
		JoinSeparator:    DefaultJoinSeparator,
		StartMode:        ModeCSS,
		InitialInput:     []string{},
		HistoryFileCSS:   cacheDir + "/history_css",
		HistoryFileXPath: cacheDir + "/history_xpath",
		HistoryFileEmbed: cacheDir + "/history_embed",
		Requests: RequestsConfig{
			Headers:     headers,
			CacheExpire: DefaultCacheExpire,
			CacheFile:   cacheDir + "/requests.db",
			RateLimit:   DefaultRateLimit,
		},
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.WarnLimit < 0 {
		return Errorf(EINVALID, "warn_limit must not be negative")
	}
	if _, err := ParseMode(string(c.StartMode)); err != nil {
		return err
	}
	if c.Requests.RateLimit < 0 {
		return Errorf(EINVALID, "requests.rate_limit must not be negative")
	}
	return nil
}
