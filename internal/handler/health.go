package handler

import "net/http"

// HandleHealthz reports process liveness. It touches no dependencies: a 200
// here means only that the HTTP server is accepting requests.
func HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
