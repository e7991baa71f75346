package handlers

import (
	"net/http"

	"ecopickup/internal/approval"
	"ecopickup/internal/logx"
	"ecopickup/internal/service/lifecycle"
)

// LifecycleHandler exposes the assign and complete operations and the courier nonce lookup.
type LifecycleHandler struct {
	uc     lifecycleUsecase
	logger logx.Logger
}

// NewLifecycleHandler creates a new LifecycleHandler.
func NewLifecycleHandler(logger logx.Logger, uc lifecycleUsecase) *LifecycleHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &LifecycleHandler{uc: uc, logger: logger}
}

// Assign handles POST /pickups/{id}/assign.
func (h *LifecycleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req assignPickupRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}
	ap, err := approval.ParseJSON(req.CourierApproval)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}

	res, err := h.uc.Assign(r.Context(), lifecycle.AssignRequest{
		PickupID:  id,
		CourierID: req.CourierID,
		Dropoff:   req.DropoffLocation,
		Approval:  ap,
	})
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, assignResultToResponse(res))
}

// Complete handles POST /pickups/{id}/complete. The body is optional.
func (h *LifecycleHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := idFromURL(r, "id")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	var req completePickupRequest
	if ok := decodeOptionalJSON(h.logger, w, r, &req); !ok {
		return
	}
	ap, err := approval.ParseJSON(req.CourierApproval)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}

	res, err := h.uc.Complete(r.Context(), lifecycle.CompleteRequest{PickupID: id, Approval: ap})
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, completeResultToResponse(res))
}

// CourierNonce handles GET /couriers/{wallet}/nonce.
func (h *LifecycleHandler) CourierNonce(w http.ResponseWriter, r *http.Request) {
	wallet, err := idFromURL(r, "wallet")
	if err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.uc.CourierNonce(r.Context(), wallet)
	if err != nil {
		writeUsecaseError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, courierNonceResponse{Wallet: res.Wallet, Nonce: res.Nonce.String()})
}
