package config

// RegisterConfig holds the crawl parameters of one named register.
// The tool ships with the UK Commons register built in; other
// registers with the same page structure are configured here.
type RegisterConfig struct {
	// Seeds are the register's index URLs.
	Seeds []string `yaml:"seeds,omitempty"`

	// AllowedDomains restricts which hosts the crawl may touch.
	AllowedDomains []string `yaml:"allowedDomains,omitempty"`

	// IndexPathPattern matches per-edition index page paths.
	IndexPathPattern string `yaml:"indexPathPattern,omitempty"`

	// SourceDocument labels the register edition on emitted records.
	SourceDocument string `yaml:"sourceDocument,omitempty"`

	// OutputPattern overrides the output file path. Supports the
	// {date} token.
	OutputPattern string `yaml:"outputPattern,omitempty"`

	// MinSubjects and MinInterests override the quality-gate
	// thresholds. Zero means use the global value.
	MinSubjects  int `yaml:"minSubjects,omitempty"`
	MinInterests int `yaml:"minInterests,omitempty"`
}

// File represents the structure of the .registerscan configuration file.
type File struct {
	// Registers maps register names to their configurations.
	Registers map[string]RegisterConfig `yaml:"registers,omitempty"`

	// Defaults contains default register configuration applied to all
	// registers unless overridden in the named configuration.
	Defaults RegisterConfig `yaml:"defaults,omitempty"`
}

// GetRegisterConfig returns the configuration for a named register.
// It merges the named configuration with defaults.
func (cf *File) GetRegisterConfig(name string) RegisterConfig {
	// Start with defaults
	result := cf.Defaults

	if rc, ok := cf.Registers[name]; ok {
		if len(rc.Seeds) > 0 {
			result.Seeds = rc.Seeds
		}
		if len(rc.AllowedDomains) > 0 {
			result.AllowedDomains = rc.AllowedDomains
		}
		if rc.IndexPathPattern != "" {
			result.IndexPathPattern = rc.IndexPathPattern
		}
		if rc.SourceDocument != "" {
			result.SourceDocument = rc.SourceDocument
		}
		if rc.OutputPattern != "" {
			result.OutputPattern = rc.OutputPattern
		}
		if rc.MinSubjects != 0 {
			result.MinSubjects = rc.MinSubjects
		}
		if rc.MinInterests != 0 {
			result.MinInterests = rc.MinInterests
		}
	}

	return result
}

// Apply overlays a register configuration onto the Config. Only
// non-zero fields override.
func (c *Config) Apply(rc RegisterConfig) {
	if len(rc.Seeds) > 0 {
		c.Seeds = rc.Seeds
	}
	if len(rc.AllowedDomains) > 0 {
		c.AllowedDomains = rc.AllowedDomains
	}
	if rc.IndexPathPattern != "" {
		c.IndexPathPattern = rc.IndexPathPattern
	}
	if rc.SourceDocument != "" {
		c.SourceDocument = rc.SourceDocument
	}
	if rc.OutputPattern != "" {
		c.OutputPattern = rc.OutputPattern
	}
	if rc.MinSubjects != 0 {
		c.MinSubjects = rc.MinSubjects
	}
	if rc.MinInterests != 0 {
		c.MinInterests = rc.MinInterests
	}
}
