package main

import "net/http"

// healthCheckHandler reports liveness only; the upstream gateway is not
// probed.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
