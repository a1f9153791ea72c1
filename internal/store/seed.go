package store

import "reservasport/internal/db"

// SeedSnapshot is the initial catalog written on first start: three courts
// sharing an hourly slot vocabulary, an empty ledger and no admin tokens.
func SeedSnapshot() *db.Snapshot {
	hours := []string{
		"09:00", "10:00", "11:00", "12:00", "13:00",
		"14:00", "15:00", "16:00", "17:00", "18:00",
		"19:00", "20:00",
	}
	catalog := make([]db.TimeSlot, 0, len(hours))
	slotIDs := make([]string, 0, len(hours))
	for i, h := range hours {
		end := "21:00"
		if i+1 < len(hours) {
			end = hours[i+1]
		}
		catalog = append(catalog, db.TimeSlot{ID: h, Label: h + " - " + end})
		slotIDs = append(slotIDs, h)
	}

	return &db.Snapshot{
		Courts: []db.Court{
			{ID: 1, Nombre: "Cancha Central", Tipo: "padel", Tarifa: 12000, Activa: true, TimeSlots: slotIDs},
			{ID: 2, Nombre: "Cancha Azul", Tipo: "tenis", Tarifa: 10000, Activa: true, TimeSlots: slotIDs},
			{ID: 3, Nombre: "Cancha Verde", Tipo: "futbol5", Tarifa: 15000, Activa: true, TimeSlots: slotIDs[:10]},
		},
		TimeSlots:         catalog,
		Reservations:      []db.Reservation{},
		NextReservationID: 1,
		AdminTokens:       map[string]db.AdminToken{},
	}
}
