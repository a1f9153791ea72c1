package entities

// ReservationEmailData feeds the admin notification email body.
type ReservationEmailData struct {
	ClienteNombre   string
	ClienteTelefono string
	CourtNombre     string
	Date            string
	SlotLabel       string
	Status          string
}
