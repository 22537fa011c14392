// Package web carries the embedded single-page recorder UI. The page talks
// to the JSON API only; all session state lives on the server.
package web

import (
	"embed"
	"net/http"
)

//go:embed index.html
var content embed.FS

func Handler() http.Handler {
	return http.FileServer(http.FS(content))
}
