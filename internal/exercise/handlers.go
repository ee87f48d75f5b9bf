package exercise

import (
	"log"
	"net/http"
	"strings"

	"elite/internal/api"
	"elite/internal/models"

	"github.com/gorilla/mux"
)

const (
	maxNameLength    = 64
	minValue         = 0
	maxValue         = 100000
	defaultListLimit = 365
	maxListLimit     = 3650
)

type upsertRequest struct {
	UserID    string       `json:"user_id"`
	Exercise  string       `json:"exercise"`
	Value     *int         `json:"value"`
	EntryDate *models.Date `json:"entry_date"`
}

func RegisterHandlers(r *mux.Router, store Store, defaultUserID string) {
	r.HandleFunc("/exercise", upsertEntryHandler(store)).Methods("POST")
	r.HandleFunc("/exercise", listEntriesHandler(store, defaultUserID)).Methods("GET")
}

func upsertEntryHandler(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertRequest
		if err := api.DecodeJSON(r, &req); err != nil {
			writeDetail(w, err)
			return
		}

		entry, err := validateUpsert(req)
		if err != nil {
			writeDetail(w, err)
			return
		}

		if err := store.Upsert(r.Context(), entry); err != nil {
			log.Printf("Error saving %s entry for %s: %v", entry.Exercise, entry.UserID, err)
			writeDetail(w, err)
			return
		}

		api.WriteJSON(w, http.StatusCreated, struct {
			Saved bool `json:"saved"`
		}{Saved: true})
	}
}

func listEntriesHandler(store Store, defaultUserID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := parseQuery(r, defaultUserID)
		if err != nil {
			writeDetail(w, err)
			return
		}

		items, err := store.List(r.Context(), q)
		if err != nil {
			log.Printf("Error listing %s entries for %s: %v", q.Exercise, q.UserID, err)
			writeDetail(w, err)
			return
		}
		if items == nil {
			items = []models.ExercisePoint{}
		}

		api.WriteJSON(w, http.StatusOK, items)
	}
}

func validateUpsert(req upsertRequest) (Entry, error) {
	userID := strings.TrimSpace(req.UserID)
	exercise := strings.TrimSpace(req.Exercise)
	if err := api.CheckLength("user_id", userID, 1, maxNameLength); err != nil {
		return Entry{}, err
	}
	if err := api.CheckLength("exercise", exercise, 1, maxNameLength); err != nil {
		return Entry{}, err
	}
	if req.Value == nil {
		return Entry{}, api.Unprocessable("value is required")
	}
	if *req.Value < minValue || *req.Value > maxValue {
		return Entry{}, api.Unprocessable("value must be between %d and %d", minValue, maxValue)
	}
	return Entry{
		UserID:    userID,
		Exercise:  exercise,
		Value:     *req.Value,
		EntryDate: req.EntryDate,
	}, nil
}

func parseQuery(r *http.Request, defaultUserID string) (Query, error) {
	q := Query{
		UserID:   api.QueryString(r, "user_id", defaultUserID),
		Exercise: api.QueryString(r, "exercise", ""),
	}
	if q.Exercise == "" {
		return Query{}, api.BadRequest("exercise query parameter is required")
	}
	if err := api.CheckLength("user_id", q.UserID, 1, maxNameLength); err != nil {
		return Query{}, err
	}
	if err := api.CheckLength("exercise", q.Exercise, 1, maxNameLength); err != nil {
		return Query{}, err
	}

	var err error
	if q.From, err = dateParam(r, "from"); err != nil {
		return Query{}, err
	}
	if q.To, err = dateParam(r, "to"); err != nil {
		return Query{}, err
	}
	if q.From != nil && q.To != nil && q.From.After(q.To.Time) {
		return Query{}, api.BadRequest("from must not be after to")
	}

	q.Limit, err = api.QueryInt(r, "limit", defaultListLimit, 1, maxListLimit)
	if err != nil {
		return Query{}, err
	}
	return q, nil
}

func dateParam(r *http.Request, name string) (*models.Date, error) {
	raw := api.QueryString(r, name, "")
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, api.BadRequest("%s: %v", name, err)
	}
	return &d, nil
}

func writeDetail(w http.ResponseWriter, err error) {
	api.WriteJSON(w, api.StatusOf(err), struct {
		Detail string `json:"detail"`
	}{Detail: err.Error()})
}
