package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fintrack-server/src/apperr"
	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/response"
	"fintrack-server/src/service"
	"fintrack-server/src/util"
)

const (
	invalidBody  = "Invalid request body"
	maxBodyBytes = 1 << 20 // 1 MiB
)

// decodeBody decodes a JSON request body of at most maxBodyBytes into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// parseFilter reads the list filters shared by expenses and incomes. class
// names the query parameter holding the category or source.
func parseFilter(r *http.Request, class string) (models.EntryFilter, error) {
	q := r.URL.Query()
	filter := models.EntryFilter{
		Class:  strings.TrimSpace(q.Get(class)),
		Search: strings.TrimSpace(q.Get("search")),
	}

	if v := q.Get("startDate"); v != "" {
		start, err := util.ParseDate(v)
		if err != nil {
			return filter, apperr.Validation("Invalid startDate")
		}
		filter.StartDate = &start
	}
	if v := q.Get("endDate"); v != "" {
		end, err := util.ParseEndDate(v)
		if err != nil {
			return filter, apperr.Validation("Invalid endDate")
		}
		filter.EndDate = &end
	}
	return filter, nil
}

func listEntries[T service.Entry](ledger *service.Ledger[T], class string, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseFilter(r, class)
		if err != nil {
			rw.Error(w, r, err)
			return
		}

		entries, err := ledger.List(r.Context(), middleware.CallerID(r), filter)
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		if entries == nil {
			entries = []T{}
		}
		response.List(w, entries)
	}
}

func getEntry[T service.Entry](ledger *service.Ledger[T], rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := ledger.Get(r.Context(), middleware.CallerID(r), chi.URLParam(r, "id"))
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, entry)
	}
}

// createEntry decodes the body into a fresh P and hands it to the ledger.
func createEntry[T service.Entry, P any, PP interface {
	*P
	service.Payload[T]
}](ledger *service.Ledger[T], rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.CallerID(r)
		payload := PP(new(P))
		if err := decodeBody(w, r, payload); err != nil {
			slog.Warn("Failed to decode create request body", "resource", ledger.Name(), "user_id", userID, "error", err)
			response.Fail(w, http.StatusBadRequest, invalidBody)
			return
		}

		entry, err := ledger.Create(r.Context(), userID, payload)
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		slog.Info("Created "+ledger.Name(), "id", entry.EntryID(), "user_id", userID)
		response.Data(w, http.StatusCreated, entry)
	}
}

func updateEntry[T service.Entry, P any, PP interface {
	*P
	service.Payload[T]
}](ledger *service.Ledger[T], rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.CallerID(r)
		id := chi.URLParam(r, "id")
		payload := PP(new(P))
		if err := decodeBody(w, r, payload); err != nil {
			slog.Warn("Failed to decode update request body", "resource", ledger.Name(), "id", id, "user_id", userID, "error", err)
			response.Fail(w, http.StatusBadRequest, invalidBody)
			return
		}

		entry, err := ledger.Update(r.Context(), userID, id, payload)
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		slog.Info("Updated "+ledger.Name(), "id", id, "user_id", userID)
		response.Data(w, http.StatusOK, entry)
	}
}

func deleteEntry[T service.Entry](ledger *service.Ledger[T], deleted string, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.CallerID(r)
		id := chi.URLParam(r, "id")
		if err := ledger.Delete(r.Context(), userID, id); err != nil {
			rw.Error(w, r, err)
			return
		}
		slog.Info("Deleted "+ledger.Name(), "id", id, "user_id", userID)
		response.Message(w, http.StatusOK, deleted)
	}
}
