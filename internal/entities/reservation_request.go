package entities

// ReservationRequest is the client payload for creating a reservation.
type ReservationRequest struct {
	CourtID         int    `json:"courtId"`
	Date            string `json:"date"`
	SlotID          string `json:"slotId"`
	ClienteNombre   string `json:"clienteNombre"`
	ClienteTelefono string `json:"clienteTelefono"`
}
