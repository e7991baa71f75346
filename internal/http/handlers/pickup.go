package handlers

import (
	"net/http"

	"ecopickup/internal/domain"
	"ecopickup/internal/logx"
)

// PickupHandler handles HTTP requests for pickup resources.
type PickupHandler struct {
	uc     pickupUsecase
	logger logx.Logger
}

// NewPickupHandler creates a new PickupHandler.
func NewPickupHandler(logger logx.Logger, uc pickupUsecase) *PickupHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &PickupHandler{uc: uc, logger: logger}
}

// Create handles POST /pickups.
func (h *PickupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPickupRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	p, err := h.uc.Create(r.Context(), req.toModel())
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, pickupToResponse(*p))
}

// GetByID handles GET /pickups/{id}.
func (h *PickupHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.uc.Get(r.Context(), id)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, pickupToResponse(*p))
}

// List handles GET /pickups with optional status, limit and offset query parameters.
func (h *PickupHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.PickupStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.PickupStatus(s)
		if !st.Valid() {
			writeError(h.logger, w, r, http.StatusBadRequest, "invalid status")
			return
		}
		status = &st
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.uc.List(r.Context(), status, limit, offset)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, pickupsToResponse(list))
}
