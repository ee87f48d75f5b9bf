package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"elite/internal/api"

	"github.com/gorilla/mux"
)

const ServiceName = "e-lite-api"

// Clock is the store round-trip used by the readiness check.
type Clock interface {
	Now(ctx context.Context) (time.Time, error)
}

func RegisterHandlers(r *mux.Router, db Clock) {
	r.HandleFunc("/health", liveHandler).Methods("GET")
	r.HandleFunc("/health/db", dbHandler(db)).Methods("GET")
}

func liveHandler(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": ServiceName,
	})
}

func dbHandler(db Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now, err := db.Now(r.Context())
		if err != nil {
			log.Printf("Database health check failed: %v", err)
			api.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"db":    "error",
				"error": err.Error(),
			})
			return
		}

		api.WriteJSON(w, http.StatusOK, map[string]any{
			"ok":  true,
			"db":  "connected",
			"now": now.Format(time.RFC3339Nano),
		})
	}
}
