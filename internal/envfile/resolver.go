package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/eugenenazirov/aca-deployer/internal/config"
)

const (
	StateDirName     = ".azure"
	StateFileName    = "config.json"
	SettingsFileName = ".env"
)

// Resolution is the result of resolving settings for one run.
type Resolution struct {
	Settings     config.Settings
	Environment  string
	SettingsFile string
	// Loaded lists names taken from the settings file, in file order.
	Loaded []string
	// Skipped lists names present in the file but already set beforehand.
	Skipped  []string
	Warnings []string
}

// Resolver locates and loads the settings file for an environment.
type Resolver struct {
	root        string
	environment string
	logger      *zap.Logger
}

// NewResolver creates a Resolver rooted at root. When environment is empty,
// the default-environment pointer in the state file is used.
func NewResolver(root, environment string, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		root:        root,
		environment: environment,
		logger:      logger,
	}
}

// StateDir returns the provisioning state directory.
func (r *Resolver) StateDir() string {
	return filepath.Join(r.root, StateDirName)
}

// Resolve merges the environment's settings file into base. Entries already
// set in base are kept. A malformed state file downgrades to a warning and
// resolution continues with base alone. Only a settings file that exists but
// cannot be read is an error.
func (r *Resolver) Resolve(base config.Settings) (Resolution, error) {
	res := Resolution{Settings: base}

	environment, warning := r.resolveEnvironment()
	if warning != "" {
		res.Warnings = append(res.Warnings, warning)
	}
	if environment == "" {
		return res, nil
	}
	res.Environment = environment

	path := filepath.Join(r.StateDir(), environment, SettingsFileName)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("settings file not found", zap.String("path", path))
			return res, nil
		}
		return Resolution{}, fmt.Errorf("open settings file: %w", err)
	}
	defer f.Close()

	entries, err := ParseSettings(f)
	if err != nil {
		return Resolution{}, fmt.Errorf("load %s: %w", path, err)
	}
	res.SettingsFile = path

	fill := make(map[string]string, len(entries))
	for _, entry := range entries {
		if _, exists := base.Lookup(entry.Name); exists {
			res.Skipped = appendOnce(res.Skipped, entry.Name)
			continue
		}
		// The first assignment in the file wins, like any other pre-set value.
		if _, seen := fill[entry.Name]; seen {
			continue
		}
		res.Loaded = append(res.Loaded, entry.Name)
		fill[entry.Name] = entry.Value
	}
	res.Settings = base.Merge(fill)

	r.logger.Debug("settings file loaded",
		zap.String("path", path),
		zap.String("environment", environment),
		zap.Int("loaded", len(res.Loaded)),
		zap.Int("skipped", len(res.Skipped)),
	)

	return res, nil
}

// resolveEnvironment returns the environment name and an optional warning.
func (r *Resolver) resolveEnvironment() (string, string) {
	if r.environment != "" {
		return r.environment, ""
	}

	path := filepath.Join(r.StateDir(), StateFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("state file not found", zap.String("path", path))
			return "", ""
		}
		return "", fmt.Sprintf("could not read %s: %v", path, err)
	}

	result := ParseDefaultEnvironment(data)
	if !result.OK() {
		return "", fmt.Sprintf("could not read default environment from %s: %v", path, result.Failure)
	}
	return result.Environment, ""
}

func appendOnce(list []string, name string) []string {
	for _, existing := range list {
		if existing == name {
			return list
		}
	}
	return append(list, name)
}
