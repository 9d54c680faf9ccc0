// Package appfs embeds the files the binaries need at runtime:
// database migrations, e-mail templates and the common passwords list.
package appfs

import "embed"

//go:embed migrations/*.sql all:assets
var FS embed.FS
