// Package schemas embeds the JSON Schemas for corpus files and CLI outputs.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
