package handlers

import (
	"log/slog"
	"net/http"

	"fintrack-server/src/middleware"
	"fintrack-server/src/models"
	"fintrack-server/src/response"
	"fintrack-server/src/service"
)

func Register(svc *service.Identity, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeBody(w, r, &req); err != nil {
			slog.Warn("Failed to decode register request body", "error", err)
			response.Fail(w, http.StatusBadRequest, invalidBody)
			return
		}

		user, err := svc.Register(r.Context(), req)
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.Data(w, http.StatusCreated, user)
	}
}

func Login(svc *service.Identity, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeBody(w, r, &req); err != nil {
			slog.Warn("Failed to decode login request body", "error", err)
			response.Fail(w, http.StatusBadRequest, invalidBody)
			return
		}

		user, err := svc.Login(r.Context(), req)
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, user)
	}
}

func GetProfile(svc *service.Identity, rw response.Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.Profile(r.Context(), middleware.CallerID(r))
		if err != nil {
			rw.Error(w, r, err)
			return
		}
		response.Data(w, http.StatusOK, user)
	}
}
