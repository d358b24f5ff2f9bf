package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/payquery/payquery/internal/query"
)

// Environment variables that override the selected environment.
const (
	EnvAPIToken    = "PAYABLI_API_TOKEN"
	EnvEnvironment = "PAYABLI_ENVIRONMENT"
)

// API base URLs by environment name.
const (
	ProductionURL = "https://api-payabli.com"
	QAURL         = "https://api-qa.payabli.com"
	SandboxURL    = "https://api-sandbox.payabli.com"
)

var (
	// ErrNoEnvironments is returned when the environments file is missing
	// and the process environment does not supply a token either.
	ErrNoEnvironments = errors.New("no environments configured")

	// ErrUnknownEnvironment is returned for a name absent from the file.
	ErrUnknownEnvironment = errors.New("unknown environment")
)

// Environment is one named set of API credentials.
type Environment struct {
	APIToken    string `yaml:"api_token" json:"api_token"`
	OrgID       string `yaml:"org_id" json:"org_id"`
	Entrypoint  string `yaml:"entrypoint" json:"entrypoint"`
	Environment string `yaml:"environment" json:"environment"`
}

// BaseURL maps the environment name to its API host. Anything other than
// production or qa is the sandbox.
func (e Environment) BaseURL() string {
	switch e.Environment {
	case "production":
		return ProductionURL
	case "qa":
		return QAURL
	default:
		return SandboxURL
	}
}

// Scope returns the identifiers used to complete a route.
func (e Environment) Scope() query.Scope {
	return query.Scope{OrgID: e.OrgID, Entrypoint: e.Entrypoint}
}

// WithEnv applies PAYABLI_API_TOKEN and PAYABLI_ENVIRONMENT. Environment
// variables take precedence over file values.
func (e Environment) WithEnv() Environment {
	if tok := os.Getenv(EnvAPIToken); tok != "" {
		e.APIToken = tok
	}
	if name := os.Getenv(EnvEnvironment); name != "" {
		e.Environment = name
	}
	return e
}

// Masked returns a copy safe to print: all but the last four characters
// of the token are hidden.
func (e Environment) Masked() Environment {
	if n := len(e.APIToken); n > 4 {
		e.APIToken = strings.Repeat("*", n-4) + e.APIToken[n-4:]
	} else if n > 0 {
		e.APIToken = strings.Repeat("*", n)
	}
	return e
}

// File is the environments file, ~/payquery.yml by default:
//
//	environments:
//	  default:
//	    api_token: ...
//	    org_id: "123"
//	    entrypoint: acme01
//	    environment: sandbox
type File struct {
	Environments map[string]Environment `yaml:"environments"`
}

// Load reads and parses the environments file at path. A missing file is
// reported with an error wrapping fs.ErrNotExist.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-selected config path
	if err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if f.Environments == nil {
		f.Environments = make(map[string]Environment)
	}
	return &f, nil
}

// Save writes the file to path with owner-only permissions.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode environments: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}

// Get returns the named environment.
func (f *File) Get(name string) (Environment, bool) {
	env, ok := f.Environments[name]
	return env, ok
}

// Put adds or replaces the named environment.
func (f *File) Put(name string, env Environment) {
	if f.Environments == nil {
		f.Environments = make(map[string]Environment)
	}
	f.Environments[name] = env
}

// Names lists the environment names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Environments))
	for name := range f.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadOrEmpty reads the file at path, returning an empty File when it does
// not exist yet.
func LoadOrEmpty(path string) (*File, error) {
	f, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &File{Environments: make(map[string]Environment)}, nil
	}
	return f, err
}

// Resolve loads the named environment from the file at path and applies
// the environment-variable overrides. Without a file, a token in
// PAYABLI_API_TOKEN is enough for an ad-hoc default environment.
func Resolve(path, name string) (Environment, error) {
	f, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		if name == query.DefaultTarget && os.Getenv(EnvAPIToken) != "" {
			return Environment{}.WithEnv(), nil
		}
		return Environment{}, fmt.Errorf("%w: %s does not exist", ErrNoEnvironments, path)
	}
	if err != nil {
		return Environment{}, err
	}

	env, ok := f.Get(name)
	if !ok {
		return Environment{}, fmt.Errorf("%w %q in %s (have: %s)", ErrUnknownEnvironment, name, path, strings.Join(f.Names(), ", "))
	}
	env = env.WithEnv()
	if env.APIToken == "" {
		return Environment{}, fmt.Errorf("environment %q has no api_token", name)
	}
	return env, nil
}
