// Package schemas embeds the JSON Schemas describing the matcher's JSON output.
package schemas

import "embed"

// Schema file names.
const (
	Analysis        = "analysis.schema.json"
	Recommendations = "recommendations.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
