package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jeremyjsx/dashboard/internal/users"
)

func ListUsers(repo *users.Repository, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := repo.List(r.Context())
		if err != nil {
			logger.Error("list users failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, r, http.StatusOK, map[string]any{"data": list})
	}
}
