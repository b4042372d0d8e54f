// Package web carries the browser viewer served at the HTTP root.
package web

import "embed"

//go:embed index.html
var FS embed.FS

func Index() ([]byte, error) { return FS.ReadFile("index.html") }
