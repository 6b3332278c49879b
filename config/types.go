package config

// Config represents the complete configuration structure
type Config struct {
	Bridge  BridgeConfig  `mapstructure:"bridge"`
	List    ListConfig    `mapstructure:"list"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BridgeConfig holds the User Tasks Bridge connection details. The
// access token is an OIDC bearer token obtained outside this tool; it
// is usually supplied via the BRIDGE_ACCESS_TOKEN environment variable
// rather than the config file.
type BridgeConfig struct {
	URL         string `mapstructure:"url"`
	TenantID    string `mapstructure:"tenant_id"`
	AccessToken string `mapstructure:"access_token"`
}

// ListConfig contains defaults for list commands.
type ListConfig struct {
	Limit       int  `mapstructure:"limit"`
	ShowDetails bool `mapstructure:"show_details"`
}

// FilterConfig maps preset names to filter expressions.
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
