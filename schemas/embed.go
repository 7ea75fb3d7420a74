// Package schemas holds the JSON Schemas for the lookup tables and the parsed profile.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
