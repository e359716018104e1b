package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads .env.local and .env from the working directory or the
// nearest parent that has them. DOTENV_PATH pins a single file.
// It returns the files that were loaded.
func LoadDotEnv() []string {
	if p := strings.TrimSpace(os.Getenv("DOTENV_PATH")); p != "" {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return []string{p}
			}
		}
		return nil
	}

	candidates := []string{
		".env.local",
		".env",
	}

	var loaded []string
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	for dir := wd; ; {
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := godotenv.Load(p); err == nil {
				loaded = append(loaded, p)
			}
		}
		if len(loaded) > 0 {
			return loaded
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
