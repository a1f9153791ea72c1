package service

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"reservasport/internal/db"
	"reservasport/internal/entities"
	apperrors "reservasport/internal/errors"
	"reservasport/internal/store"
)

// testNow is midday so both "yesterday" and "tomorrow" stay inside simple
// date arithmetic.
var testNow = time.Date(2030, 6, 15, 12, 0, 0, 0, time.Local)

func newTestStore(t *testing.T, snap *db.Snapshot) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return store.New(path)
}

// Court 1 declares slot 11:00 that the catalog does not know, to cover the
// label fallback. Court 2 is inactive.
func testSnapshot() *db.Snapshot {
	return &db.Snapshot{
		Courts: []db.Court{
			{ID: 1, Nombre: "Cancha Central", Tipo: "padel", Tarifa: 12000, Activa: true, TimeSlots: []string{"09:00", "10:00", "11:00"}},
			{ID: 2, Nombre: "Cancha Cerrada", Tipo: "tenis", Tarifa: 10000, Activa: false, TimeSlots: []string{"09:00"}},
		},
		TimeSlots: []db.TimeSlot{
			{ID: "09:00", Label: "09:00 - 10:00"},
			{ID: "10:00", Label: "10:00 - 11:00"},
		},
		Reservations:      []db.Reservation{},
		NextReservationID: 1,
		AdminTokens:       map[string]db.AdminToken{},
	}
}

func newTestService(t *testing.T) *ReservationService {
	t.Helper()
	st := newTestStore(t, testSnapshot())
	return NewReservationService(st, nil, clockwork.NewFakeClockAt(testNow))
}

func validRequest() *entities.ReservationRequest {
	return &entities.ReservationRequest{
		CourtID:         1,
		Date:            "2030-06-20",
		SlotID:          "09:00",
		ClienteNombre:   "Ana García",
		ClienteTelefono: "123456789",
	}
}

func requireHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, code, httpErr.Code)
	require.Contains(t, httpErr.Message, msg)
}

func TestCreateReservationValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*entities.ReservationRequest)
		code    int
		message string
	}{
		{"missing name", func(r *entities.ReservationRequest) { r.ClienteNombre = "" }, http.StatusBadRequest, "missing required fields"},
		{"missing court", func(r *entities.ReservationRequest) { r.CourtID = 0 }, http.StatusBadRequest, "missing required fields"},
		{"malformed date", func(r *entities.ReservationRequest) { r.Date = "20-06-2030" }, http.StatusBadRequest, "invalid date"},
		{"past date", func(r *entities.ReservationRequest) { r.Date = "2030-06-14" }, http.StatusBadRequest, "past dates"},
		{"short phone", func(r *entities.ReservationRequest) { r.ClienteTelefono = "12345" }, http.StatusBadRequest, "invalid phone"},
		{"alpha phone", func(r *entities.ReservationRequest) { r.ClienteTelefono = "12345678x" }, http.StatusBadRequest, "invalid phone"},
		{"unknown court", func(r *entities.ReservationRequest) { r.CourtID = 99 }, http.StatusNotFound, "court not found"},
		{"inactive court", func(r *entities.ReservationRequest) { r.CourtID = 2 }, http.StatusNotFound, "court not found"},
		{"undeclared slot", func(r *entities.ReservationRequest) { r.SlotID = "23:00" }, http.StatusBadRequest, "invalid slot"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t)
			req := validRequest()
			tc.mutate(req)
			_, err := svc.CreateReservation(req)
			requireHTTPError(t, err, tc.code, tc.message)
		})
	}
}

// Missing-field check must win even when other fields are also invalid.
func TestCreateReservationFailFastOrder(t *testing.T) {
	svc := newTestService(t)
	req := validRequest()
	req.ClienteNombre = ""
	req.Date = "garbage"
	req.ClienteTelefono = "abc"
	_, err := svc.CreateReservation(req)
	requireHTTPError(t, err, http.StatusBadRequest, "missing required fields")

	// With fields present, the date check comes before the phone check.
	req = validRequest()
	req.Date = "garbage"
	req.ClienteTelefono = "abc"
	_, err = svc.CreateReservation(req)
	requireHTTPError(t, err, http.StatusBadRequest, "invalid date")
}

func TestCreateReservationTodayIsAllowed(t *testing.T) {
	svc := newTestService(t)
	req := validRequest()
	req.Date = testNow.Format("2006-01-02")
	res, err := svc.CreateReservation(req)
	require.NoError(t, err)
	require.Equal(t, req.Date, res.Date)
}

func TestCreateReservationAssignsMonotonicIDs(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.CreateReservation(validRequest())
	require.NoError(t, err)
	require.Equal(t, 1, first.ID)
	require.Equal(t, testNow, first.CreatedAt)

	second := validRequest()
	second.SlotID = "10:00"
	res2, err := svc.CreateReservation(second)
	require.NoError(t, err)
	require.Equal(t, 2, res2.ID)

	// Cancelling must not free the id for reuse.
	_, err = svc.CancelReservation(res2.ID)
	require.NoError(t, err)

	third := validRequest()
	third.SlotID = "10:00"
	res3, err := svc.CreateReservation(third)
	require.NoError(t, err)
	require.Equal(t, 3, res3.ID)
}

func TestCreateReservationConflict(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateReservation(validRequest())
	require.NoError(t, err)

	_, err = svc.CreateReservation(validRequest())
	requireHTTPError(t, err, http.StatusConflict, "slot already taken")
}

func TestConcurrentAdmissionSingleWinner(t *testing.T) {
	svc := newTestService(t)

	const attempts = 20
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateReservation(validRequest())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	created, conflicts := 0, 0
	for err := range results {
		if err == nil {
			created++
			continue
		}
		var httpErr *apperrors.HTTPError
		require.ErrorAs(t, err, &httpErr)
		require.Equal(t, http.StatusConflict, httpErr.Code)
		conflicts++
	}
	require.Equal(t, 1, created)
	require.Equal(t, attempts-1, conflicts)
}

func TestAvailabilityReflectsLedger(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateReservation(validRequest())
	require.NoError(t, err)

	resp, err := svc.Availability(1, "2030-06-20")
	require.NoError(t, err)
	require.Equal(t, 1, resp.Court.ID)
	require.Equal(t, "2030-06-20", resp.Date)
	require.Len(t, resp.Slots, 3)

	require.Equal(t, "09:00 - 10:00", resp.Slots[0].Label)
	require.False(t, resp.Slots[0].Disponible)
	require.True(t, resp.Slots[1].Disponible)
	require.True(t, resp.Slots[2].Disponible)

	// 11:00 has no catalog entry, the id doubles as label.
	require.Equal(t, "11:00", resp.Slots[2].ID)
	require.Equal(t, "11:00", resp.Slots[2].Label)

	// A different date is unaffected.
	other, err := svc.Availability(1, "2030-06-21")
	require.NoError(t, err)
	require.True(t, other.Slots[0].Disponible)
}

func TestAvailabilityErrors(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Availability(1, "junk")
	requireHTTPError(t, err, http.StatusBadRequest, "invalid date")

	_, err = svc.Availability(99, "2030-06-20")
	requireHTTPError(t, err, http.StatusNotFound, "court not found")

	_, err = svc.Availability(2, "2030-06-20")
	requireHTTPError(t, err, http.StatusNotFound, "court not found")

	// Syntactically valid but non-calendar dates are accepted.
	resp, err := svc.Availability(1, "2030-13-99")
	require.NoError(t, err)
	require.True(t, resp.Slots[0].Disponible)
}

func TestListReservations(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateReservation(validRequest())
	require.NoError(t, err)

	later := validRequest()
	later.Date = "2030-06-21"
	_, err = svc.CreateReservation(later)
	require.NoError(t, err)

	all, err := svc.ListReservations("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, all[0].ID)
	require.Equal(t, 2, all[1].ID)

	filtered, err := svc.ListReservations("2030-06-21")
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, 2, filtered[0].ID)

	empty, err := svc.ListReservations("2031-01-01")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Len(t, empty, 0)

	_, err = svc.ListReservations("junk")
	requireHTTPError(t, err, http.StatusBadRequest, "invalid date")
}

func TestCancelReservation(t *testing.T) {
	svc := newTestService(t)
	created, err := svc.CreateReservation(validRequest())
	require.NoError(t, err)

	removed, err := svc.CancelReservation(created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, removed.ID)
	require.Equal(t, "09:00", removed.SlotID)

	_, err = svc.CancelReservation(created.ID)
	requireHTTPError(t, err, http.StatusNotFound, "reservation not found")

	// The slot is bookable again after cancellation.
	resp, err := svc.Availability(1, "2030-06-20")
	require.NoError(t, err)
	require.True(t, resp.Slots[0].Disponible)
}
