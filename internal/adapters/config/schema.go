package config

// Settingsfile is the structure of the optional ypms.yaml file.
type Settingsfile struct {
	EnvsDir              string `yaml:"envs_dir"`
	CacheDir             string `yaml:"cache_dir"`
	DefaultEnv           string `yaml:"default_env"`
	DefaultSource        string `yaml:"default_source"`
	HTTPTimeout          string `yaml:"http_timeout"`
	UserAgent            string `yaml:"user_agent"`
	DependencyFetchLimit int    `yaml:"dependency_fetch_limit"`
}
