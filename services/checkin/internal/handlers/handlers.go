package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/diagnosis/staycheck/internal/http/response"
	"github.com/diagnosis/staycheck/pkg/auth"
	"github.com/diagnosis/staycheck/pkg/config"
	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/diagnosis/staycheck/services/checkin/internal/service"
)

type contextKey string

const claimsKey contextKey = "claims"

type Handlers struct {
	adminService   service.AdminService
	checkInService service.CheckInService
	config         *config.Config
}

func New(adminService service.AdminService, checkInService service.CheckInService, cfg *config.Config) *Handlers {
	return &Handlers{
		adminService:   adminService,
		checkInService: checkInService,
		config:         cfg,
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireHost admits requests carrying a valid host session.
func (h *Handlers) RequireHost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			response.Unauthorized(w, "Missing or invalid authorization header")
			return
		}

		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil {
			response.WriteError(w, http.StatusUnauthorized, "Invalid token", response.CodeInvalidToken)
			return
		}
		if claims.Role != auth.RoleHost {
			response.Forbidden(w, "Host session required")
			return
		}

		ctx := context.WithValue(r.Context(), logger.ActorKey, "host:"+claims.Email)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireGuestSession admits requests carrying a guest session token in the
// Authorization header or the session_token query parameter.
func (h *Handlers) RequireGuestSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("session_token")
		}
		if token == "" {
			response.Unauthorized(w, "Guest session required")
			return
		}

		claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
		if err != nil || claims.Role != auth.RoleGuest || claims.MagicToken == "" {
			response.WriteError(w, http.StatusUnauthorized, "Invalid guest session", response.CodeInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), logger.ActorKey, "guest:"+claims.Subject)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return false
	}
	return true
}

// writeServiceError maps service sentinels onto HTTP responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		response.WriteError(w, http.StatusNotFound, "Check-in link is invalid", response.CodeUnknownToken)
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, service.ErrCheckInNotOpen):
		response.CheckInNotOpen(w, "Check-in is only available on your check-in date")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(w, "Invalid email or password")
	default:
		logger.ErrorContext(r.Context(), "Request failed", "error", err, "path", r.URL.Path)
		response.InternalError(w, "Internal server error")
	}
}
