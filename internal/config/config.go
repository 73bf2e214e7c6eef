// Package config loads botgen settings from defaults, an optional botgen.toml
// or botgen.yaml file and BOTGEN_* environment variables.
package config

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/mxkacsa/botgen/ast"
	"github.com/mxkacsa/botgen/gen"
)

// Config is the full botgen configuration.
type Config struct {
	Bot       BotConfig                    `mapstructure:"bot" toml:"bot"`
	Database  DatabaseConfig               `mapstructure:"database" toml:"database"`
	Generate  GenerateConfig               `mapstructure:"generate" toml:"generate"`
	Log       LogConfig                    `mapstructure:"log" toml:"log"`
	Groups    []ast.Group                  `mapstructure:"groups" toml:"groups,omitempty"`
	Media     map[string]MediaConfig       `mapstructure:"media" toml:"media,omitempty"`
	Templates map[string]map[string]string `mapstructure:"templates" toml:"templates,omitempty"`
}

// BotConfig describes the generated bot.
type BotConfig struct {
	Name string `mapstructure:"name" toml:"name"`
	// ProjectID is emitted as PROJECT_ID; zero emits None.
	ProjectID int64 `mapstructure:"project_id" toml:"project_id"`
	Logging   bool  `mapstructure:"logging" toml:"logging"`
}

// DatabaseConfig toggles the user database helpers of the generated bot.
type DatabaseConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
}

// GenerateConfig controls the compiler itself.
type GenerateConfig struct {
	Strict bool   `mapstructure:"strict" toml:"strict"`
	Output string `mapstructure:"output" toml:"output"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"`
}

// MediaConfig is a stored file a media node can reference by name.
type MediaConfig struct {
	Kind     string `mapstructure:"kind" toml:"kind"`
	URL      string `mapstructure:"url" toml:"url,omitempty"`
	FileID   string `mapstructure:"file_id" toml:"file_id,omitempty"`
	FilePath string `mapstructure:"file_path" toml:"file_path,omitempty"`
	MimeType string `mapstructure:"mime_type" toml:"mime_type,omitempty"`
}

// Validate checks the values viper cannot type-check on its own.
func (c *Config) Validate() error {
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}
	if c.Bot.ProjectID < 0 {
		return errors.Newf("bot.project_id must be >= 0, got %d", c.Bot.ProjectID)
	}

	ids := make(map[string]bool, len(c.Groups))
	for i, g := range c.Groups {
		if strings.TrimSpace(g.ChatID) == "" {
			return errors.Newf("groups[%d]: chat_id is required", i)
		}
		if g.ID != "" && ids[g.ID] {
			return errors.Newf("groups[%d]: id '%s' already used", i, g.ID)
		}
		ids[g.ID] = true
	}

	known := make(map[string]bool)
	for _, key := range gen.MessageKeys() {
		known[key] = true
	}
	for _, key := range c.templateKeys() {
		if !known[key] {
			return errors.WithHint(
				errors.Newf("templates: unknown message key '%s'", key),
				"run `botgen nodes --messages` to list the keys",
			)
		}
	}
	return nil
}

// Options converts the configuration into generator options.
func (c *Config) Options() gen.Options {
	opts := gen.Options{
		BotName:             c.Bot.Name,
		Groups:              c.Groups,
		UserDatabaseEnabled: c.Database.Enabled,
		EnableLogging:       c.Bot.Logging,
		StrictTargets:       c.Generate.Strict,
	}
	if c.Bot.ProjectID > 0 {
		id := c.Bot.ProjectID
		opts.ProjectID = &id
	}

	if len(c.Templates) > 0 {
		opts.TemplateOverrides = make(map[string]string)
		for scope, texts := range c.Templates {
			for name, text := range texts {
				opts.TemplateOverrides[scope+"."+name] = text
			}
		}
	}

	if len(c.Media) > 0 {
		opts.Media = make(map[string]ast.MediaAsset, len(c.Media))
		for name, m := range c.Media {
			opts.Media[name] = ast.MediaAsset{
				Name:     name,
				Kind:     m.Kind,
				URL:      m.URL,
				FileID:   m.FileID,
				FilePath: m.FilePath,
				MimeType: m.MimeType,
			}
		}
	}
	return opts
}

// templateKeys returns the dotted message keys of the template table, sorted.
func (c *Config) templateKeys() []string {
	var keys []string
	for scope, texts := range c.Templates {
		for name := range texts {
			keys = append(keys, scope+"."+name)
		}
	}
	sort.Strings(keys)
	return keys
}
