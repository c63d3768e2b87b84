// Package schemas holds the JSON Schemas shipped with the binary.
package schemas

import _ "embed"

// CVSnapshot is the schema every persisted CV snapshot must satisfy.
//
//go:embed cv_snapshot.schema.json
var CVSnapshot string

// CVImport accepts the looser documents handed to the import command.
//
//go:embed cv_import.schema.json
var CVImport string
