package pushups

import (
	"log"
	"net/http"
	"strings"

	"elite/internal/api"
	"elite/internal/models"

	"github.com/gorilla/mux"
)

const (
	minReps          = 1
	maxReps          = 10000
	maxUserIDLength  = 64
	defaultListLimit = 100
	maxListLimit     = 500
	defaultDailyDays = 30
	maxDailyDays     = 365
)

type createRequest struct {
	UserID *string `json:"user_id"`
	Reps   *int    `json:"reps"`
}

func RegisterHandlers(r *mux.Router, store Store, defaultUserID string) {
	r.HandleFunc("/pushups", createPushupHandler(store, defaultUserID)).Methods("POST")
	r.HandleFunc("/pushups", listPushupsHandler(store, defaultUserID)).Methods("GET")
	r.HandleFunc("/pushups/stats", statsHandler(store, defaultUserID)).Methods("GET")
	r.HandleFunc("/pushups/daily", dailyHandler(store, defaultUserID)).Methods("GET")
}

func createPushupHandler(store Store, defaultUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := api.DecodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		userID, reps, err := validateCreate(req, defaultUserID)
		if err != nil {
			writeError(w, err)
			return
		}

		pushup, err := store.Create(r.Context(), userID, reps)
		if err != nil {
			log.Printf("Error creating pushup record for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		api.WriteJSON(w, http.StatusCreated, struct {
			OK     bool           `json:"ok"`
			Pushup *models.Pushup `json:"pushup"`
		}{OK: true, Pushup: pushup})
	}
}

func listPushupsHandler(store Store, defaultUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r, defaultUserID)
		if err != nil {
			writeError(w, err)
			return
		}
		limit, err := api.QueryInt(r, "limit", defaultListLimit, 1, maxListLimit)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := store.List(r.Context(), userID, limit)
		if err != nil {
			log.Printf("Error listing pushups for %s: %v", userID, err)
			writeError(w, err)
			return
		}
		if items == nil {
			items = []models.Pushup{}
		}

		api.WriteJSON(w, http.StatusOK, struct {
			OK    bool            `json:"ok"`
			Items []models.Pushup `json:"items"`
		}{OK: true, Items: items})
	}
}

func statsHandler(store Store, defaultUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r, defaultUserID)
		if err != nil {
			writeError(w, err)
			return
		}

		stats, err := store.Stats(r.Context(), userID)
		if err != nil {
			log.Printf("Error computing pushup stats for %s: %v", userID, err)
			writeError(w, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, struct {
			OK bool `json:"ok"`
			*models.PushupStats
		}{OK: true, PushupStats: stats})
	}
}

func dailyHandler(store Store, defaultUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDParam(r, defaultUserID)
		if err != nil {
			writeError(w, err)
			return
		}
		days, err := api.QueryInt(r, "days", defaultDailyDays, 1, maxDailyDays)
		if err != nil {
			writeError(w, err)
			return
		}

		items, err := store.Daily(r.Context(), userID, days)
		if err != nil {
			log.Printf("Error computing daily pushups for %s: %v", userID, err)
			writeError(w, err)
			return
		}
		if items == nil {
			items = []models.DailyReps{}
		}

		api.WriteJSON(w, http.StatusOK, struct {
			OK    bool               `json:"ok"`
			Days  int                `json:"days"`
			Items []models.DailyReps `json:"items"`
		}{OK: true, Days: days, Items: items})
	}
}

func validateCreate(req createRequest, defaultUserID string) (string, int, error) {
	userID := defaultUserID
	if req.UserID != nil {
		userID = strings.TrimSpace(*req.UserID)
	}
	if err := api.CheckLength("user_id", userID, 1, maxUserIDLength); err != nil {
		return "", 0, err
	}

	if req.Reps == nil {
		return "", 0, api.Unprocessable("reps is required")
	}
	if *req.Reps < minReps || *req.Reps > maxReps {
		return "", 0, api.Unprocessable("reps must be between %d and %d", minReps, maxReps)
	}
	return userID, *req.Reps, nil
}

func userIDParam(r *http.Request, defaultUserID string) (string, error) {
	userID := api.QueryString(r, "user_id", defaultUserID)
	if err := api.CheckLength("user_id", userID, 1, maxUserIDLength); err != nil {
		return "", err
	}
	return userID, nil
}

func writeError(w http.ResponseWriter, err error) {
	api.WriteJSON(w, api.StatusOf(err), struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}{OK: false, Error: err.Error()})
}
