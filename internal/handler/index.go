package handler

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexPage []byte

// IndexHandler serves the dashboard page.
func IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexPage)
	}
}

// Health is a liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
