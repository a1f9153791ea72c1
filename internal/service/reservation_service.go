package service

import (
	"regexp"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"reservasport/internal/db"
	"reservasport/internal/entities"
	apperrors "reservasport/internal/errors"
	"reservasport/internal/store"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	phoneRe = regexp.MustCompile(`^\d{6,15}$`)
)

type ReservationService struct {
	Store  *store.Store
	notify *NotifyService
	clock  clockwork.Clock
}

func NewReservationService(st *store.Store, notify *NotifyService, clock clockwork.Clock) *ReservationService {
	return &ReservationService{Store: st, notify: notify, clock: clock}
}

func (s *ReservationService) ActiveCourts() ([]db.Court, error) {
	courts := make([]db.Court, 0)
	err := s.Store.View(func(snap *db.Snapshot) error {
		for _, c := range snap.Courts {
			if c.Activa {
				courts = append(courts, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return courts, nil
}

// Availability reports the booked/free state of every slot the court offers
// on the given date, in the court's declared slot order.
func (s *ReservationService) Availability(courtID int, date string) (*entities.AvailabilityResponse, error) {
	if !dateRe.MatchString(date) {
		return nil, apperrors.InvalidInput("invalid date, use YYYY-MM-DD")
	}
	var resp *entities.AvailabilityResponse
	err := s.Store.View(func(snap *db.Snapshot) error {
		court := snap.Court(courtID)
		if court == nil {
			return apperrors.NotFound("court not found or inactive")
		}
		slots := make([]entities.SlotAvailability, 0, len(court.TimeSlots))
		for _, sid := range court.TimeSlots {
			meta := snap.SlotMeta(sid)
			slots = append(slots, entities.SlotAvailability{
				ID:         meta.ID,
				Label:      meta.Label,
				Disponible: !snap.IsTaken(court.ID, date, sid),
			})
		}
		resp = &entities.AvailabilityResponse{Court: *court, Date: date, Slots: slots}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateReservation validates and commits a new reservation. The checks run
// in a fixed order so clients always see the first failing one. Court, slot
// and uniqueness checks plus the commit happen inside a single store update,
// which is what keeps two racing requests from booking the same slot.
func (s *ReservationService) CreateReservation(req *entities.ReservationRequest) (*db.Reservation, error) {
	if req.CourtID == 0 || req.Date == "" || req.SlotID == "" || req.ClienteNombre == "" || req.ClienteTelefono == "" {
		return nil, apperrors.InvalidInput("missing required fields")
	}
	if !dateRe.MatchString(req.Date) {
		return nil, apperrors.InvalidInput("invalid date, use YYYY-MM-DD")
	}
	today := s.clock.Now().Format("2006-01-02")
	if req.Date < today {
		return nil, apperrors.InvalidInput("reservations on past dates are not allowed")
	}
	if !phoneRe.MatchString(req.ClienteTelefono) {
		return nil, apperrors.InvalidInput("invalid phone, use 6-15 digits")
	}

	var (
		reservation db.Reservation
		courtNombre string
		slotLabel   string
	)
	err := s.Store.Update(func(snap *db.Snapshot) error {
		court := snap.Court(req.CourtID)
		if court == nil {
			return apperrors.NotFound("court not found or inactive")
		}
		if !containsSlot(court.TimeSlots, req.SlotID) {
			return apperrors.InvalidInput("invalid slot for this court")
		}
		if snap.IsTaken(court.ID, req.Date, req.SlotID) {
			return apperrors.Conflict("slot already taken")
		}
		reservation = db.Reservation{
			ID:              snap.NextReservationID,
			CourtID:         court.ID,
			Date:            req.Date,
			SlotID:          req.SlotID,
			ClienteNombre:   req.ClienteNombre,
			ClienteTelefono: req.ClienteTelefono,
			CreatedAt:       s.clock.Now(),
		}
		snap.NextReservationID++
		snap.Reservations = append(snap.Reservations, reservation)
		courtNombre = court.Nombre
		slotLabel = snap.SlotMeta(req.SlotID).Label
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("reservation_id", reservation.ID).
		Int("court_id", reservation.CourtID).
		Str("date", reservation.Date).
		Str("slot", reservation.SlotID).
		Msg("reservation created")
	s.notify.ReservationChanged(reservation, courtNombre, slotLabel, "confirmada")
	return &reservation, nil
}

// ListReservations returns the ledger in insertion order, optionally
// filtered by exact date.
func (s *ReservationService) ListReservations(date string) ([]db.Reservation, error) {
	if date != "" && !dateRe.MatchString(date) {
		return nil, apperrors.InvalidInput("invalid date, use YYYY-MM-DD")
	}
	list := make([]db.Reservation, 0)
	err := s.Store.View(func(snap *db.Snapshot) error {
		for _, r := range snap.Reservations {
			if date == "" || r.Date == date {
				list = append(list, r)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// CancelReservation removes a reservation by id. The id counter is never
// rewound, so ids stay monotonic across cancellations.
func (s *ReservationService) CancelReservation(id int) (*db.Reservation, error) {
	var (
		removed     db.Reservation
		courtNombre string
		slotLabel   string
	)
	err := s.Store.Update(func(snap *db.Snapshot) error {
		idx := -1
		for i, r := range snap.Reservations {
			if r.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return apperrors.NotFound("reservation not found")
		}
		removed = snap.Reservations[idx]
		snap.Reservations = append(snap.Reservations[:idx], snap.Reservations[idx+1:]...)
		if court := snap.Court(removed.CourtID); court != nil {
			courtNombre = court.Nombre
		}
		slotLabel = snap.SlotMeta(removed.SlotID).Label
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("reservation_id", removed.ID).Msg("reservation cancelled")
	s.notify.ReservationChanged(removed, courtNombre, slotLabel, "cancelada")
	return &removed, nil
}

func containsSlot(slots []string, id string) bool {
	for _, s := range slots {
		if s == id {
			return true
		}
	}
	return false
}
