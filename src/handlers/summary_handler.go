package handlers

import (
	"net/http"

	"fintrack-server/src/middleware"
	"fintrack-server/src/response"
	"fintrack-server/src/service"
)

func GetSummary(reports *service.Reporting, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := reports.Summary(r.Context(), middleware.CallerID(r))
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, summary)
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Server is running",
	})
}
