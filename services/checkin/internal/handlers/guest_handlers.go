package handlers

import (
	"net/http"
	"strings"

	"github.com/diagnosis/staycheck/internal/http/response"
	"github.com/diagnosis/staycheck/pkg/logger"
	"github.com/diagnosis/staycheck/services/checkin/internal/domain"
	"github.com/go-chi/chi/v5"
)

const maxIDDocumentSize = 10 << 20

// StartCheckIn is the magic-link landing. An unknown token is a 404 so the
// client stays on the host screens.
func (h *Handlers) StartCheckIn(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.BadRequest(w, "token is required")
		return
	}

	start, err := h.checkInService.StartSession(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, start)
}

func (h *Handlers) GetCheckIn(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Guest session required")
		return
	}

	view, err := h.checkInService.View(r.Context(), claims.MagicToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Guest session required")
		return
	}

	var patch domain.ContactPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	guest, err := h.checkInService.UpdateContact(r.Context(), claims.MagicToken, &patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guest)
}

// UploadIDDocument accepts a multipart "file" image. Only its name is recorded.
func (h *Handlers) UploadIDDocument(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Guest session required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxIDDocumentSize)
	if err := r.ParseMultipartForm(maxIDDocumentSize); err != nil {
		response.BadRequest(w, "Invalid multipart upload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		response.BadRequest(w, "ID document must be an image")
		return
	}

	guest, err := h.checkInService.RecordIDDocument(r.Context(), claims.MagicToken, header.Filename)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	logger.InfoContext(r.Context(), "ID document recorded", "guest_id", guest.ID, "bytes", header.Size)
	writeJSON(w, http.StatusOK, guest)
}

func (h *Handlers) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)
	if claims == nil {
		response.Unauthorized(w, "Guest session required")
		return
	}

	result, err := h.checkInService.SelectAnswer(r.Context(), claims.MagicToken, chi.URLParam(r, "answerID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
