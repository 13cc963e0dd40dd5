// Package config provides application configuration loaded from
// environment variables (PROTCLEAN_ prefix) and an optional YAML file.
//
// The cleaning markers (contaminant substring, RepID markers, k77 prefix
// and the metagenome blacklist) are configuration with documented defaults
// equal to the pipeline's historical constants, so tests can substitute
// them without touching stage logic.
package config
