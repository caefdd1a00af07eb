package report

import "embed"

//go:embed templates/*.md
var templates embed.FS
