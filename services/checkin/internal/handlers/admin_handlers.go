package handlers

import (
	"net/http"
	"strconv"

	"github.com/diagnosis/staycheck/internal/http/response"
	"github.com/diagnosis/staycheck/services/checkin/internal/domain"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginReq
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.adminService.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePropertyReq
	if !decodeJSON(w, r, &req) {
		return
	}

	property, err := h.adminService.CreateProperty(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, property)
}

func (h *Handlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.adminService.ListProperties(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"properties": properties})
}

func (h *Handlers) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateGuestReq
	if !decodeJSON(w, r, &req) {
		return
	}

	guest, err := h.adminService.CreateGuest(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, guest)
}

// ListGuests accepts an optional property_id filter.
func (h *Handlers) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.adminService.ListGuests(r.Context(), r.URL.Query().Get("property_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"guests": guests})
}

func (h *Handlers) GetGuest(w http.ResponseWriter, r *http.Request) {
	guest, err := h.adminService.GetGuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guest)
}

func (h *Handlers) GetMagicLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.adminService.MagicLink(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

func (h *Handlers) SendMagicLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.adminService.SendMagicLink(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, link)
}

func (h *Handlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuestionReq
	if !decodeJSON(w, r, &req) {
		return
	}

	question, err := h.adminService.CreateQuestion(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

func (h *Handlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.adminService.ListQuestions(r.Context(), r.URL.Query().Get("property_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

func (h *Handlers) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAnswerReq
	if !decodeJSON(w, r, &req) {
		return
	}

	answer, err := h.adminService.CreateAnswer(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, answer)
}

func (h *Handlers) ListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := h.adminService.ListAnswers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}

func (h *Handlers) CreateInstructionPage(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInstructionPageReq
	if !decodeJSON(w, r, &req) {
		return
	}

	page, err := h.adminService.CreateInstructionPage(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (h *Handlers) ListInstructionPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.adminService.ListInstructionPages(r.Context(), r.URL.Query().Get("property_id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"pages": pages})
}

func (h *Handlers) GetInstructionPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.adminService.GetInstructionPage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) AppendStep(w http.ResponseWriter, r *http.Request) {
	var in domain.StepInput
	if !decodeJSON(w, r, &in) {
		return
	}

	page, err := h.adminService.AppendStep(r.Context(), chi.URLParam(r, "id"), &in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (h *Handlers) UpdateStep(w http.ResponseWriter, r *http.Request) {
	index, ok := stepIndex(w, r)
	if !ok {
		return
	}
	var patch domain.StepPatch
	if !decodeJSON(w, r, &patch) {
		return
	}

	page, err := h.adminService.UpdateStep(r.Context(), chi.URLParam(r, "id"), index, &patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) RemoveStep(w http.ResponseWriter, r *http.Request) {
	index, ok := stepIndex(w, r)
	if !ok {
		return
	}

	page, err := h.adminService.RemoveStep(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// MoveStep takes ?direction=up|down.
func (h *Handlers) MoveStep(w http.ResponseWriter, r *http.Request) {
	index, ok := stepIndex(w, r)
	if !ok {
		return
	}
	dir, ok := domain.ParseMoveDirection(r.URL.Query().Get("direction"))
	if !ok {
		response.BadRequest(w, "direction must be up or down")
		return
	}

	page, err := h.adminService.MoveStep(r.Context(), chi.URLParam(r, "id"), index, dir)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// stepIndex reads the zero-based {index} path parameter.
func stepIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		response.BadRequest(w, "Invalid step index")
		return 0, false
	}
	return index, true
}
