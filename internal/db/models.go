package db

import "time"

// Court is a bookable physical resource. TimeSlots references entries of the
// shared slot catalog by id, in the order they should be offered.
type Court struct {
	ID        int      `json:"id"`
	Nombre    string   `json:"nombre"`
	Tipo      string   `json:"tipo"`
	Tarifa    float64  `json:"tarifa"`
	Activa    bool     `json:"activa"`
	TimeSlots []string `json:"time_slots"`
}

// TimeSlot is a catalog entry naming a time range shared across courts.
type TimeSlot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Reservation struct {
	ID              int       `json:"id"`
	CourtID         int       `json:"courtId"`
	Date            string    `json:"date"`
	SlotID          string    `json:"slotId"`
	ClienteNombre   string    `json:"clienteNombre"`
	ClienteTelefono string    `json:"clienteTelefono"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AdminToken records when a bearer token was issued; validity is derived
// lazily from CreatedAt plus the configured TTL.
type AdminToken struct {
	CreatedAt time.Time `json:"createdAt"`
}

// Snapshot is the entire persisted application state, read and written as a
// single unit.
type Snapshot struct {
	Courts            []Court               `json:"courts"`
	TimeSlots         []TimeSlot            `json:"time_slots"`
	Reservations      []Reservation         `json:"reservations"`
	NextReservationID int                   `json:"nextReservationId"`
	AdminTokens       map[string]AdminToken `json:"adminTokens"`
}

// Court returns the active court with the given id, or nil.
func (s *Snapshot) Court(id int) *Court {
	for i := range s.Courts {
		if s.Courts[i].ID == id && s.Courts[i].Activa {
			return &s.Courts[i]
		}
	}
	return nil
}

// SlotMeta resolves a slot id against the catalog, falling back to using the
// id itself as label when the catalog has no entry.
func (s *Snapshot) SlotMeta(id string) TimeSlot {
	for _, ts := range s.TimeSlots {
		if ts.ID == id {
			return ts
		}
	}
	return TimeSlot{ID: id, Label: id}
}

// IsTaken reports whether a reservation already exists for the exact
// (court, date, slot) triple.
func (s *Snapshot) IsTaken(courtID int, date, slotID string) bool {
	for _, r := range s.Reservations {
		if r.CourtID == courtID && r.Date == date && r.SlotID == slotID {
			return true
		}
	}
	return false
}
