package envloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"deploy_config/internal/app/port"

	"github.com/joho/godotenv"
)

const DefaultEnvFilePath = ".env"

// Environment resolves variables from the process environment first and
// falls back to the values read from a dotenv file. Real environment
// variables are never overridden by the file.
type Environment struct {
	filePath   string
	fileValues map[string]string
	lookupEnv  func(string) (string, bool)
}

// Load reads the dotenv file at path. A missing file is not an error: the
// resulting Environment then only sees the process environment.
func Load(path string, log port.Logger) (*Environment, error) {
	env := &Environment{
		filePath:   path,
		fileValues: map[string]string{},
		lookupEnv:  os.LookupEnv,
	}
	if path == "" {
		return env, nil
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("Env file not found, using process environment only", "path", path)
			return env, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	env.fileValues = values
	log.Info("Env file loaded", "path", path, "variables", len(values))
	return env, nil
}

// Process returns an Environment backed only by the process environment.
func Process() *Environment {
	return &Environment{fileValues: map[string]string{}, lookupEnv: os.LookupEnv}
}

// Lookup implements port.Environment.
func (e *Environment) Lookup(key string) (string, bool) {
	if e.lookupEnv != nil {
		if v, ok := e.lookupEnv(key); ok {
			return v, true
		}
	}
	v, ok := e.fileValues[key]
	return v, ok
}

// FilePath returns the dotenv path this environment was loaded from.
func (e *Environment) FilePath() string {
	return e.filePath
}

// FileKeys returns the variable names defined in the dotenv file, sorted.
func (e *Environment) FileKeys() []string {
	keys := make([]string, 0, len(e.fileValues))
	for k := range e.fileValues {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MapEnvironment is a fixed set of variables, handy for tests and embedding.
type MapEnvironment map[string]string

// Lookup implements port.Environment.
func (m MapEnvironment) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
