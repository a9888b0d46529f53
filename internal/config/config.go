// Package config resolves run settings: built-in defaults, then the json5
// config file and its .local override, then HATVP_* environment variables.
// Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// DefaultFile is read from the working directory when --config is not set.
const DefaultFile = "hatvp.json5"

// Error policies.
const (
	OnErrorSkip  = "skip"
	OnErrorAbort = "abort"
)

// Outputs are the default CSV paths of every command.
type Outputs struct {
	PersonalInfo         string `json:"personal_info"`
	SpouseActivities     string `json:"spouse_activities"`
	Participations       string `json:"participations"`
	ExternalRoles        string `json:"external_roles"`
	MandateRemuneration  string `json:"mandate_remuneration"`
	OrganizationMentions string `json:"organization_mentions"`
	PeopleMentions       string `json:"people_mentions"`
	NormalizedHoldings   string `json:"normalized_holdings"`
	HoldingsReport       string `json:"holdings_report"`
}

// Catalogues locates the name lists of the mention tally.
type Catalogues struct {
	Organizations string `json:"organizations"`
	People        string `json:"people"`
	Column        string `json:"column"`
}

// Split configures the splitting of the combined declarations file.
type Split struct {
	Input     string `json:"input"`
	OutputDir string `json:"output_dir"`
}

// Config holds every setting of a run.
type Config struct {
	InputDir    string     `json:"input_dir"`
	Outputs     Outputs    `json:"outputs"`
	Catalogues  Catalogues `json:"catalogues"`
	Split       Split      `json:"split"`
	OnError     string     `json:"on_error"`
	LenientText bool       `json:"lenient_text"`
	Debug       bool       `json:"debug"`
}

// Default returns the layout used by the published datasets.
func Default() Config {
	return Config{
		InputDir: "split_declarations",
		Outputs: Outputs{
			PersonalInfo:         "personal_info.csv",
			SpouseActivities:     filepath.Join("pii", "spouse_activities.csv"),
			Participations:       "participations.csv",
			ExternalRoles:        "external_roles.csv",
			MandateRemuneration:  "mandate_remuneration.csv",
			OrganizationMentions: "organization_mentions.csv",
			PeopleMentions:       "people_mentions.csv",
			NormalizedHoldings:   filepath.Join("holdings", "normalized_holdings.csv"),
			HoldingsReport:       filepath.Join("holdings", "person_holdings_report.csv"),
		},
		Catalogues: Catalogues{
			Organizations: filepath.Join("avis", "NER", "organizations.csv"),
			People:        filepath.Join("avis", "NER", "people.csv"),
			Column:        "name",
		},
		Split: Split{
			Input:     "declarations.xml",
			OutputDir: "split_declarations",
		},
		OnError: OnErrorSkip,
	}
}

// Load resolves the configuration. A missing config file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	LoadEnv()

	file, err := ReadConfig[Config](path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := mergo.Merge(&cfg, file, mergo.WithOverride); err != nil {
			return cfg, fmt.Errorf("failed to merge config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.InputDir = GetEnv("HATVP_INPUT_DIR", c.InputDir)
	c.OnError = GetEnv("HATVP_ON_ERROR", c.OnError)
	c.Catalogues.Organizations = GetEnv("HATVP_ORGANIZATIONS", c.Catalogues.Organizations)
	c.Catalogues.People = GetEnv("HATVP_PEOPLE", c.Catalogues.People)
	c.LenientText = GetEnvBool("HATVP_LENIENT_TEXT", c.LenientText)
	c.Debug = GetEnvBool("HATVP_DEBUG", c.Debug)
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	c.OnError = strings.ToLower(strings.TrimSpace(c.OnError))
	if c.OnError != OnErrorSkip && c.OnError != OnErrorAbort {
		return fmt.Errorf("invalid on_error %q: want %q or %q", c.OnError, OnErrorSkip, OnErrorAbort)
	}
	if c.InputDir == "" {
		return errors.New("input_dir must not be empty")
	}
	return nil
}

// ReadConfig reads the json5 file name, then merges <base>.local.<ext> from
// the same directory over it. os.ErrNotExist is returned when neither
// exists.
func ReadConfig[T any](name string) (T, error) {
	var out T
	found := false

	data, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(data) > 0 {
		if err := json5.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf("%s: %w", name, err)
		}
		found = true
	}

	localName := localPath(name)
	data, err = os.ReadFile(localName)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if len(data) > 0 {
		var override T
		if err := json5.Unmarshal(data, &override); err != nil {
			return out, fmt.Errorf("%s: %w", localName, err)
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
		found = true
	}

	if !found {
		return out, os.ErrNotExist
	}
	return out, nil
}

// localPath turns "dir/hatvp.json5" into "dir/hatvp.local.json5".
func localPath(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + ".local" + ext
}
