package yahoo

// Config holds the settings for the Yahoo CSV quote endpoint
// Each value can be overridden by an environment variable, otherwise the default applies
type Config struct {
	Name              string
	BaseURL           string
	SecuritySeparator string // joins ticker symbols in the request
	ResponseSeparator string // splits fields in each response line
}

const (
	envName              = "QUOTESERVICE_YAHOO_NAME"
	envBaseURL           = "QUOTESERVICE_YAHOO_URL"
	envSecuritySeparator = "QUOTESERVICE_YAHOO_SECURITYSEPARATOR"
	envResponseSeparator = "QUOTESERVICE_YAHOO_RESPONSESEPARATOR"
)

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Name:              "Yahoo",
		BaseURL:           "http://finance.yahoo.com/d/quotes.csv",
		SecuritySeparator: "+",
		ResponseSeparator: ",",
	}
}

// LoadConfig reads overrides through getenv on top of DefaultConfig
func LoadConfig(getenv func(string) string) Config {
	cfg := DefaultConfig()
	if v := getenv(envName); v != "" {
		cfg.Name = v
	}
	if v := getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := getenv(envSecuritySeparator); v != "" {
		cfg.SecuritySeparator = v
	}
	if v := getenv(envResponseSeparator); v != "" {
		cfg.ResponseSeparator = v
	}
	return cfg
}
