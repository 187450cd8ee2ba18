// Package schemas provides embedded SQL schema files.
package schemas

import "embed"

// KeyValue contains the key-value table schema, one file per driver.
//
//go:embed kv/*.sql
var KeyValue embed.FS
