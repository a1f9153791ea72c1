package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	apperrors "reservasport/internal/errors"
	"reservasport/internal/service"
)

type AdminHandler struct {
	Service *service.ReservationService
}

func NewAdminHandler(svc *service.ReservationService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListReservations(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *AdminHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.InvalidInput("invalid reservation id"))
		return
	}
	removed, err := h.Service.CancelReservation(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CancelReservationResponse{
		Message: "reservation cancelled",
		Removed: *removed,
	})
}
