package config

// LoadFromEnv reads .env from the working directory (existing variables win) and
// then loads the process environment.
func LoadFromEnv() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return Load(FromEnviron())
}
