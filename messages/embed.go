// Package messages embeds the translation files, one JSON document per locale.
package messages

import "embed"

//go:embed *.json
var FS embed.FS
