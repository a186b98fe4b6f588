package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const DefaultHoldTTL = 5 * time.Minute

// MemoryLedger keeps seat occupancy in process memory with one mutex per
// show, so two customers booking different shows never block one another.
// Expired holds are reclaimed lazily whenever an operation touches their
// show, and by the periodic sweep.
type MemoryLedger struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu        sync.RWMutex
	shows     map[int]*showLedger
	holdIndex map[string]int // hold id -> show id
}

// showLedger is the per-show critical section. All seat records and holds of
// one show live behind its mutex.
type showLedger struct {
	mu    sync.Mutex
	seats map[domain.SeatLabel]seatRecord
	holds map[string]*domain.Hold
}

// seatRecord is the occupancy of one seat. Seats with no record are
// available.
type seatRecord struct {
	status    domain.SeatStatus
	holdID    string
	bookingID string
}

type MemoryOption func(*MemoryLedger)

// WithClock substitutes the wall clock, so tests can advance time past hold
// expiry without sleeping.
func WithClock(clock clockwork.Clock) MemoryOption {
	return func(l *MemoryLedger) {
		l.clock = clock
	}
}

func WithHoldTTL(ttl time.Duration) MemoryOption {
	return func(l *MemoryLedger) {
		l.ttl = ttl
	}
}

func NewMemoryLedger(opts ...MemoryOption) *MemoryLedger {
	l := &MemoryLedger{
		clock:     clockwork.NewRealClock(),
		ttl:       DefaultHoldTTL,
		shows:     make(map[int]*showLedger),
		holdIndex: make(map[string]int),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *MemoryLedger) TryHold(
	ctx context.Context,
	showID, customerID int,
	seats []domain.SeatLabel) (*domain.Hold, error) {

	if len(seats) == 0 {
		return nil, domain.ErrInvalidSeatSelection
	}

	show := l.showFor(showID)
	now := l.clock.Now()

	show.mu.Lock()
	expired := show.purgeExpired(now)

	for _, seat := range seats {
		if _, taken := show.seats[seat]; taken {
			show.mu.Unlock()
			l.dropFromIndex(expired)
			return nil, domain.ErrSeatUnavailable
		}
	}

	hold := &domain.Hold{
		ID:         uuid.New().String(),
		ShowID:     showID,
		CustomerID: customerID,
		Seats:      append([]domain.SeatLabel(nil), seats...),
		CreatedAt:  now,
		ExpiresAt:  now.Add(l.ttl),
	}

	for _, seat := range seats {
		show.seats[seat] = seatRecord{status: domain.SeatHeld, holdID: hold.ID}
	}
	show.holds[hold.ID] = hold
	show.mu.Unlock()

	l.dropFromIndex(expired)

	l.mu.Lock()
	l.holdIndex[hold.ID] = showID
	l.mu.Unlock()

	return copyHold(hold), nil
}

func (l *MemoryLedger) GetHold(ctx context.Context, holdID string) (*domain.Hold, error) {
	show, err := l.showOfHold(holdID)
	if err != nil {
		return nil, err
	}

	show.mu.Lock()
	defer show.mu.Unlock()

	hold, ok := show.holds[holdID]
	if !ok {
		return nil, domain.ErrHoldNotFound
	}

	if hold.Expired(l.clock.Now()) {
		return nil, domain.ErrHoldExpired
	}

	return copyHold(hold), nil
}

func (l *MemoryLedger) Confirm(ctx context.Context, holdID string) (*domain.Booking, error) {
	show, err := l.showOfHold(holdID)
	if err != nil {
		return nil, err
	}

	show.mu.Lock()

	hold, ok := show.holds[holdID]
	if !ok {
		show.mu.Unlock()
		return nil, domain.ErrHoldNotFound
	}

	now := l.clock.Now()

	if hold.Expired(now) {
		// The hold can never be confirmed anymore; reclaim its seats now
		// rather than waiting for the sweep.
		show.removeHold(hold)
		show.mu.Unlock()
		l.dropFromIndex([]string{holdID})
		return nil, domain.ErrHoldExpired
	}

	booking := &domain.Booking{
		ID:          uuid.New().String(),
		ShowID:      hold.ShowID,
		CustomerID:  hold.CustomerID,
		Seats:       append([]domain.SeatLabel(nil), hold.Seats...),
		ConfirmedAt: now,
	}

	for _, seat := range hold.Seats {
		show.seats[seat] = seatRecord{status: domain.SeatBooked, bookingID: booking.ID}
	}
	delete(show.holds, holdID)
	show.mu.Unlock()

	l.dropFromIndex([]string{holdID})

	return booking, nil
}

func (l *MemoryLedger) Release(ctx context.Context, holdID string) error {
	show, err := l.showOfHold(holdID)
	if err != nil {
		return err
	}

	show.mu.Lock()

	hold, ok := show.holds[holdID]
	if !ok {
		show.mu.Unlock()
		return domain.ErrHoldNotFound
	}

	show.removeHold(hold)
	show.mu.Unlock()

	l.dropFromIndex([]string{holdID})

	return nil
}

func (l *MemoryLedger) StateOf(
	ctx context.Context,
	showID int,
	seat domain.SeatLabel) (domain.SeatState, error) {

	l.mu.RLock()
	show, ok := l.shows[showID]
	l.mu.RUnlock()

	if !ok {
		return domain.SeatState{Status: domain.SeatAvailable}, nil
	}

	show.mu.Lock()
	expired := show.purgeExpired(l.clock.Now())

	state := domain.SeatState{Status: domain.SeatAvailable}

	if record, taken := show.seats[seat]; taken {
		state.Status = record.status
		state.HoldID = record.holdID
		state.BookingID = record.bookingID

		if hold, held := show.holds[record.holdID]; held {
			state.ExpiresAt = hold.ExpiresAt
		}
	}
	show.mu.Unlock()

	l.dropFromIndex(expired)

	return state, nil
}

// Sweep reclaims every expired hold across all shows and returns how many it
// removed. It runs periodically so that shows nobody touches again do not
// pin expired holds in memory forever.
func (l *MemoryLedger) Sweep() int {
	l.mu.RLock()
	shows := make([]*showLedger, 0, len(l.shows))
	for _, show := range l.shows {
		shows = append(shows, show)
	}
	l.mu.RUnlock()

	now := l.clock.Now()
	swept := 0

	for _, show := range shows {
		show.mu.Lock()
		expired := show.purgeExpired(now)
		show.mu.Unlock()

		l.dropFromIndex(expired)
		swept += len(expired)
	}

	return swept
}

func (l *MemoryLedger) showFor(showID int) *showLedger {
	l.mu.RLock()
	show, ok := l.shows[showID]
	l.mu.RUnlock()

	if ok {
		return show
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if show, ok = l.shows[showID]; ok {
		return show
	}

	show = &showLedger{
		seats: make(map[domain.SeatLabel]seatRecord),
		holds: make(map[string]*domain.Hold),
	}
	l.shows[showID] = show

	return show
}

func (l *MemoryLedger) showOfHold(holdID string) (*showLedger, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	showID, ok := l.holdIndex[holdID]
	if !ok {
		return nil, domain.ErrHoldNotFound
	}

	return l.shows[showID], nil
}

func (l *MemoryLedger) dropFromIndex(holdIDs []string) {
	if len(holdIDs) == 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, id := range holdIDs {
		delete(l.holdIndex, id)
	}
}

// purgeExpired removes every expired hold of the show together with its seat
// records. Caller must hold the show mutex; returned ids still need to be
// dropped from the hold index after the mutex is released.
func (s *showLedger) purgeExpired(now time.Time) []string {
	var expired []string

	for id, hold := range s.holds {
		if hold.Expired(now) {
			s.removeHold(hold)
			expired = append(expired, id)
		}
	}

	return expired
}

// removeHold frees the hold's seats and deletes it. Booked seats are never
// touched: a seat record only points at a hold while its status is Held.
func (s *showLedger) removeHold(hold *domain.Hold) {
	for _, seat := range hold.Seats {
		if record, ok := s.seats[seat]; ok && record.holdID == hold.ID {
			delete(s.seats, seat)
		}
	}

	delete(s.holds, hold.ID)
}

func copyHold(hold *domain.Hold) *domain.Hold {
	copied := *hold
	copied.Seats = append([]domain.SeatLabel(nil), hold.Seats...)

	return &copied
}
