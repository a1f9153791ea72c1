package entities

import "reservasport/internal/db"

// SlotAvailability is one catalog slot of a court with its booked/free state
// for the requested date.
type SlotAvailability struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Disponible bool   `json:"disponible"`
}

type AvailabilityResponse struct {
	Court db.Court           `json:"court"`
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}
