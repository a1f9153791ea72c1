package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"reservasport/internal/entities"
	apperrors "reservasport/internal/errors"
	"reservasport/internal/service"
)

type UserReservationHandler struct {
	Service *service.ReservationService
}

func NewUserReservationHandler(svc *service.ReservationService) *UserReservationHandler {
	return &UserReservationHandler{Service: svc}
}

func (h *UserReservationHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{OK: true, Time: time.Now().Format(time.RFC3339)})
}

func (h *UserReservationHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.Service.ActiveCourts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courts)
}

func (h *UserReservationHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	courtIDParam := r.URL.Query().Get("courtId")
	date := r.URL.Query().Get("date")
	if courtIDParam == "" || date == "" {
		writeError(w, apperrors.InvalidInput("invalid params, use courtId and date=YYYY-MM-DD"))
		return
	}
	courtID, err := strconv.Atoi(courtIDParam)
	if err != nil {
		writeError(w, apperrors.InvalidInput("invalid params, use courtId and date=YYYY-MM-DD"))
		return
	}
	resp, err := h.Service.Availability(courtID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("invalid request body"))
		return
	}
	reservation, err := h.Service.CreateReservation(&req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateReservationResponse{
		Message:     "reservation created",
		Reservation: *reservation,
	})
}

func (h *UserReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListReservations(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
