// Package migrations chứa các file SQL cho goose, được nhúng vào binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
