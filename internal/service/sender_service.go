package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"reservasport/internal/db"
	"reservasport/internal/entities"
)

// NotifyService sends best-effort notifications when a reservation is
// created or cancelled: an SMS to the client and an email to the facility
// owner. Failures are logged and never surfaced to the caller.
type NotifyService struct {
	adminEmail string
}

func NewNotifyService(adminEmail string) *NotifyService {
	return &NotifyService{adminEmail: adminEmail}
}

// ReservationChanged fires the SMS and email for a created ("confirmada") or
// cancelled ("cancelada") reservation. Safe on a nil receiver.
func (n *NotifyService) ReservationChanged(r db.Reservation, courtNombre, slotLabel, status string) {
	if n == nil {
		return
	}

	smsBody := fmt.Sprintf("ReservaSport: tu reserva #%d está %s.\n%s, %s, %s.",
		r.ID, status, courtNombre, r.Date, slotLabel)
	go func() {
		if err := SendSMS(r.ClienteTelefono, smsBody); err != nil {
			log.Warn().Err(err).Int("reservation_id", r.ID).Msg("confirmation SMS not sent")
		}
	}()

	if n.adminEmail == "" {
		return
	}
	data := entities.ReservationEmailData{
		ClienteNombre:   r.ClienteNombre,
		ClienteTelefono: r.ClienteTelefono,
		CourtNombre:     courtNombre,
		Date:            r.Date,
		SlotLabel:       slotLabel,
		Status:          status,
	}
	subject := fmt.Sprintf("Reserva #%d %s - %s %s", r.ID, data.Status, data.Date, data.SlotLabel)
	body := fmt.Sprintf(
		"Reserva #%d %s.\n\n"+
			"Cancha: %s\n"+
			"Fecha: %s\n"+
			"Franja: %s\n"+
			"Cliente: %s (tel. %s)\n",
		r.ID, data.Status, data.CourtNombre, data.Date, data.SlotLabel,
		data.ClienteNombre, data.ClienteTelefono,
	)
	go func() {
		if err := SendEmailWithSendGrid(n.adminEmail, "Administración", subject, body); err != nil {
			log.Warn().Err(err).Int("reservation_id", r.ID).Msg("admin notification email not sent")
		}
	}()
}
