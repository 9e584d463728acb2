// Package migrations содержит встраиваемые SQL-миграции схемы портала.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
