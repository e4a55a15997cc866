// Package web holds the embedded chat page.
package web

import _ "embed"

// Index is the single-page chat UI served at the root path.
//
//go:embed index.html
var Index []byte
