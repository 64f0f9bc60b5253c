package handler

import (
	"net/http"

	"github.com/msomdec/taskflow/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, tasks *service.TaskService) {
	authHandler := NewAuthHandler(auth)
	taskHandler := NewTaskHandler(tasks)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.Handle("POST /api/tasks", RequireAuth(auth, http.HandlerFunc(taskHandler.HandleCreate)))
	mux.Handle("GET /api/tasks", RequireAuth(auth, http.HandlerFunc(taskHandler.HandleList)))
	mux.Handle("GET /api/tasks/{id}", RequireAuth(auth, http.HandlerFunc(taskHandler.HandleGet)))
	mux.Handle("PUT /api/tasks/{id}", RequireAuth(auth, http.HandlerFunc(taskHandler.HandleUpdate)))
	mux.Handle("DELETE /api/tasks/{id}", RequireAuth(auth, http.HandlerFunc(taskHandler.HandleDelete)))
}
