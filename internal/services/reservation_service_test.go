package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/islandexpress/bus-booking-backend/internal/models"
	"github.com/islandexpress/bus-booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory ReservationStore. WithTx serializes units of
// work behind one mutex and restores a snapshot on error, giving the same
// observable behavior as the row-locked Postgres store: units on the same
// seat key cannot interleave and failed units leave no writes behind.
type fakeStore struct {
	mu       sync.Mutex
	routes   []models.Route
	seats    map[int64]*models.Seat
	bookings map[string]*models.Booking

	nextSeatID int64

	failUpdateSeat error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		seats:    make(map[int64]*models.Seat),
		bookings: make(map[string]*models.Booking),
	}
}

func (f *fakeStore) addRoute(id, busID int64, travelDate time.Time) {
	f.routes = append(f.routes, models.Route{
		ID:         id,
		BusID:      busID,
		Origin:     "Colombo",
		Destination: "Kandy",
		TravelDate: travelDate,
	})
}

func (f *fakeStore) addSeat(busID, routeID int64, seatNumber string) int64 {
	f.nextSeatID++
	f.seats[f.nextSeatID] = &models.Seat{
		ID:         f.nextSeatID,
		BusID:      busID,
		RouteID:    routeID,
		SeatNumber: seatNumber,
		Status:     models.SeatStatusAvailable,
	}
	return f.nextSeatID
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	seatSnap := make(map[int64]*models.Seat, len(f.seats))
	for id, seat := range f.seats {
		copied := *seat
		seatSnap[id] = &copied
	}
	bookingSnap := make(map[string]*models.Booking, len(f.bookings))
	for id, booking := range f.bookings {
		copied := *booking
		bookingSnap[id] = &copied
	}

	if err := fn(ctx); err != nil {
		f.seats = seatSnap
		f.bookings = bookingSnap
		return err
	}
	return nil
}

func (f *fakeStore) ActiveRouteForBus(ctx context.Context, busID int64) (*models.Route, error) {
	today := time.Now().Truncate(24 * time.Hour)
	var active *models.Route
	for i := range f.routes {
		route := f.routes[i]
		if route.BusID != busID || route.TravelDate.Before(today) {
			continue
		}
		if active == nil || route.TravelDate.Before(active.TravelDate) {
			active = &route
		}
	}
	if active == nil {
		return nil, models.ErrRouteNotFound
	}
	return active, nil
}

func (f *fakeStore) SeatForUpdate(ctx context.Context, busID, routeID int64, seatNumber string) (*models.Seat, error) {
	for _, seat := range f.seats {
		if seat.BusID == busID && seat.RouteID == routeID && seat.SeatNumber == seatNumber {
			copied := *seat
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) SeatByIDForUpdate(ctx context.Context, seatID int64) (*models.Seat, error) {
	seat, ok := f.seats[seatID]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *seat
	return &copied, nil
}

func (f *fakeStore) UpdateSeatStatus(ctx context.Context, seatID int64, status models.SeatStatus) error {
	if f.failUpdateSeat != nil {
		return f.failUpdateSeat
	}
	seat, ok := f.seats[seatID]
	if !ok {
		return models.ErrNotFound
	}
	seat.Status = status
	return nil
}

func (f *fakeStore) InsertBooking(ctx context.Context, booking *models.Booking) error {
	copied := *booking
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	f.bookings[copied.ID] = &copied
	return nil
}

func (f *fakeStore) BookingForUpdate(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeStore) UpdateBookingStatus(ctx context.Context, bookingID string, status models.BookingStatus) error {
	booking, ok := f.bookings[bookingID]
	if !ok {
		return models.ErrNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

func (f *fakeStore) ExpiredPendingBookings(ctx context.Context, cutoff time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []string
	for id, booking := range f.bookings {
		if booking.Status == models.BookingStatusPending && booking.CreatedAt.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeStore) seat(id int64) models.Seat {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.seats[id]
}

func (f *fakeStore) booking(id string) models.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.bookings[id]
}

func newTestService(store *fakeStore) *ReservationService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewReservationService(store, validator.NewSeatNumberValidator(), logger)
}

func reserveRequest(seatNumber string) *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		BusID:           7,
		SeatNumber:      seatNumber,
		BoardingPointID: 10,
		DropPointID:     20,
	}
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func TestReserve_Success(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	seatID := store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	bookingID, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.NoError(t, err)
	require.NotEmpty(t, bookingID)

	assert.Equal(t, models.SeatStatusBooked, store.seat(seatID).Status)

	booking := store.booking(bookingID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, "user-1", booking.UserID)
	assert.Equal(t, seatID, booking.SeatID)
	assert.Equal(t, int64(10), booking.BoardingPointID)
	assert.Equal(t, int64(20), booking.DropPointID)
}

func TestReserve_SeatAlreadyBooked(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	_, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), "user-2", reserveRequest("A1"))
	assert.ErrorIs(t, err, models.ErrSeatUnavailable)
}

func TestReserve_SameSeatConcurrent(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	seatID := store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	const workers = 32
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n)
			_, err := svc.Reserve(context.Background(), user, reserveRequest("A1"))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	successes, unavailable := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, models.ErrSeatUnavailable):
			unavailable++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, unavailable)
	assert.Equal(t, models.SeatStatusBooked, store.seat(seatID).Status)
}

func TestReserve_DistinctSeatsConcurrent(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())

	const workers = 16
	seatIDs := make([]int64, workers)
	for i := 0; i < workers; i++ {
		seatIDs[i] = store.addSeat(7, 42, fmt.Sprintf("A%d", i+1))
	}
	svc := newTestService(store)

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", n)
			_, err := svc.Reserve(context.Background(), user, reserveRequest(fmt.Sprintf("A%d", n+1)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	for _, id := range seatIDs {
		assert.Equal(t, models.SeatStatusBooked, store.seat(id).Status)
	}
}

func TestReserve_RouteNotFound(t *testing.T) {
	store := newFakeStore()
	// Only a past route exists for this bus
	store.addRoute(41, 7, time.Now().AddDate(0, 0, -2))
	store.addSeat(7, 41, "A1")
	svc := newTestService(store)

	_, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	assert.ErrorIs(t, err, models.ErrRouteNotFound)

	store.mu.Lock()
	assert.Empty(t, store.bookings)
	store.mu.Unlock()
}

func TestReserve_UnknownSeatNumber(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	_, err := svc.Reserve(context.Background(), "user-1", reserveRequest("Z9"))
	assert.ErrorIs(t, err, models.ErrSeatUnavailable)
}

func TestReserve_InvalidInput(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	cases := []struct {
		name   string
		userID string
		req    *models.CreateBookingRequest
	}{
		{"Empty user", "", reserveRequest("A1")},
		{"Zero bus id", "user-1", &models.CreateBookingRequest{SeatNumber: "A1", BoardingPointID: 10, DropPointID: 20}},
		{"Bad seat format", "user-1", &models.CreateBookingRequest{BusID: 7, SeatNumber: "1A", BoardingPointID: 10, DropPointID: 20}},
		{"Missing boarding point", "user-1", &models.CreateBookingRequest{BusID: 7, SeatNumber: "A1", DropPointID: 20}},
		{"Missing drop point", "user-1", &models.CreateBookingRequest{BusID: 7, SeatNumber: "A1", BoardingPointID: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Reserve(context.Background(), tc.userID, tc.req)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}

	store.mu.Lock()
	assert.Empty(t, store.bookings)
	store.mu.Unlock()
}

func TestReserve_RollbackLeavesNoPartialState(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	seatID := store.addSeat(7, 42, "A1")
	store.failUpdateSeat = fmt.Errorf("connection reset")
	svc := newTestService(store)

	_, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.Error(t, err)

	// The booking inserted before the failing seat update must be gone
	store.mu.Lock()
	assert.Empty(t, store.bookings)
	store.mu.Unlock()
	assert.Equal(t, models.SeatStatusAvailable, store.seat(seatID).Status)

	// The seat is reservable once the store recovers
	store.failUpdateSeat = nil
	_, err = svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	assert.NoError(t, err)
}

func TestConfirm(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	bookingID, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.NoError(t, err)

	require.NoError(t, svc.Confirm(context.Background(), bookingID))
	assert.Equal(t, models.BookingStatusConfirmed, store.booking(bookingID).Status)

	// Confirming twice fails without corrupting state
	err = svc.Confirm(context.Background(), bookingID)
	assert.ErrorIs(t, err, models.ErrInvalidState)
	assert.Equal(t, models.BookingStatusConfirmed, store.booking(bookingID).Status)
}

func TestConfirm_UnknownBooking(t *testing.T) {
	svc := newTestService(newFakeStore())

	err := svc.Confirm(context.Background(), "no-such-booking")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRelease_RoundTrip(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	seatID := store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	bookingID, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.NoError(t, err)

	require.NoError(t, svc.Release(context.Background(), bookingID))
	assert.Equal(t, models.BookingStatusCancelled, store.booking(bookingID).Status)
	assert.Equal(t, models.SeatStatusAvailable, store.seat(seatID).Status)

	// The seat can be reserved again by someone else
	secondID, err := svc.Reserve(context.Background(), "user-2", reserveRequest("A1"))
	require.NoError(t, err)
	assert.NotEqual(t, bookingID, secondID)
	assert.Equal(t, models.SeatStatusBooked, store.seat(seatID).Status)
}

func TestRelease_ConfirmedBooking(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	seatID := store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	bookingID, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.NoError(t, err)
	require.NoError(t, svc.Confirm(context.Background(), bookingID))

	require.NoError(t, svc.Release(context.Background(), bookingID))
	assert.Equal(t, models.SeatStatusAvailable, store.seat(seatID).Status)
}

func TestRelease_AlreadyCancelled(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	bookingID, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.NoError(t, err)
	require.NoError(t, svc.Release(context.Background(), bookingID))

	err = svc.Release(context.Background(), bookingID)
	assert.ErrorIs(t, err, models.ErrInvalidState)
}

func TestConfirmReleaseRace_OneWinner(t *testing.T) {
	store := newFakeStore()
	store.addRoute(42, 7, tomorrow())
	store.addSeat(7, 42, "A1")
	svc := newTestService(store)

	bookingID, err := svc.Reserve(context.Background(), "user-1", reserveRequest("A1"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		results <- svc.Confirm(context.Background(), bookingID)
	}()
	go func() {
		defer wg.Done()
		results <- svc.Release(context.Background(), bookingID)
	}()
	wg.Wait()
	close(results)

	// Release always lands: either it ran first, or it cancels the
	// just-confirmed booking. Confirm only succeeds if it ran first.
	final := store.booking(bookingID).Status
	assert.Equal(t, models.BookingStatusCancelled, final)
	for err := range results {
		if err != nil {
			assert.ErrorIs(t, err, models.ErrInvalidState)
		}
	}
}
