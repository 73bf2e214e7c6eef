package config

import "github.com/spf13/viper"

// EnvPrefix prefixes every environment override, e.g. BOTGEN_BOT_NAME.
const EnvPrefix = "BOTGEN"

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "botgen.toml"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("bot.name", "My Bot")
	v.SetDefault("bot.project_id", 0)
	v.SetDefault("bot.logging", true)

	v.SetDefault("database.enabled", false)

	v.SetDefault("generate.strict", false)
	v.SetDefault("generate.output", "bot.py")

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}
