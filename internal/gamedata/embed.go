// Package gamedata loads the creature roster and answers lookups against it.
package gamedata

import "embed"

// dataFS embeds the YAML data files from this directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS
