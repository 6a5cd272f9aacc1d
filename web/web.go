// Package web embeds the browser client served at / by the proxy.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var content embed.FS

// Static returns the browser client assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err) // the embedded directory name is fixed at compile time
	}
	return sub
}
