package prereq

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envFileName is the root-level key=value configuration the test frameworks
// read.
const envFileName = ".env"

// requiredKeys must be present or the run cannot produce meaningful
// results; a missing base URL would point every test at nothing.
var requiredKeys = []string{"BASE_URL", "LOGIN_EMAIL", "PASSWORD"}

// optionalKeys degrade gracefully: the frameworks substitute defaults.
var optionalKeys = []string{"ANDROID_APP_PATH", "IOS_APP_PATH"}

// checkEnvFile requires the config file to exist at the project root.
func (p *Pipeline) checkEnvFile(_ *Outcome) Result {
	path := filepath.Join(p.Root, envFileName)
	if _, err := os.Stat(path); err != nil {
		return Result{Passed: false, Detail: envFileName + " file not found at repo root"}
	}
	return Result{Passed: true}
}

// checkRequiredKeys parses the env file and reports every missing required
// key in one diagnostic.
func (p *Pipeline) checkRequiredKeys(_ *Outcome) Result {
	keys, err := loadEnvFile(filepath.Join(p.Root, envFileName))
	if err != nil {
		return Result{Passed: false, Detail: fmt.Sprintf("could not parse %s: %v", envFileName, err)}
	}
	var missing []string
	for _, key := range requiredKeys {
		if !keys.Exists(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Result{Passed: false, Detail: "Missing required environment variables: " + strings.Join(missing, ", ")}
	}
	return Result{Passed: true, Detail: envFileName + " file validated"}
}

// checkOptionalKeys warns about absent optional keys without failing.
func (p *Pipeline) checkOptionalKeys(_ *Outcome) Result {
	keys, err := loadEnvFile(filepath.Join(p.Root, envFileName))
	if err != nil {
		return Result{Passed: false, Detail: fmt.Sprintf("could not parse %s: %v", envFileName, err)}
	}
	var missing []string
	for _, key := range optionalKeys {
		if !keys.Exists(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Result{Passed: false, Detail: "Optional keys not set: " + strings.Join(missing, ", ")}
	}
	return Result{Passed: true}
}

func loadEnvFile(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), dotenv.Parser()); err != nil {
		return nil, err
	}
	return k, nil
}
