package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// holdGrace is how long an expired hold hash is kept around after its seat
// locks have lapsed, so that a late Confirm still gets ErrHoldExpired
// instead of ErrHoldNotFound.
const holdGrace = time.Hour

var holdSeatsScript = redis.NewScript(`
	-- KEYS[1] = hold hash key
	-- ARGV = [holdId, showId, customerId, ttl, grace, now, seatsCsv, label1, label2, ...]

	local hold_id = ARGV[1]
	local show_id = ARGV[2]
	local ttl = tonumber(ARGV[4])
	local now = tonumber(ARGV[6])

	for i = 8, #ARGV do
		local label = ARGV[i]
		if redis.call("EXISTS", "seat_booked:" .. show_id .. ":" .. label) == 1 then
			return {err = "seat unavailable"}
		end
		if redis.call("EXISTS", "seat_hold:" .. show_id .. ":" .. label) == 1 then
			return {err = "seat unavailable"}
		end
	end

	for i = 8, #ARGV do
		redis.call("SET", "seat_hold:" .. show_id .. ":" .. ARGV[i], hold_id, "EX", ttl)
	end

	redis.call("HSET", KEYS[1],
		"show_id", show_id,
		"customer_id", ARGV[3],
		"seats", ARGV[7],
		"created_at", ARGV[6],
		"expires_at", now + ttl
	)
	redis.call("EXPIRE", KEYS[1], ttl + tonumber(ARGV[5]))

	return "OK"
`)

var confirmHoldScript = redis.NewScript(`
	-- KEYS[1] = hold hash key
	-- ARGV = [now, bookingId]

	if redis.call("EXISTS", KEYS[1]) == 0 then
		return {err = "hold not found"}
	end

	local show_id = redis.call("HGET", KEYS[1], "show_id")
	local seats_csv = redis.call("HGET", KEYS[1], "seats")
	local expires_at = tonumber(redis.call("HGET", KEYS[1], "expires_at"))

	if expires_at <= tonumber(ARGV[1]) then
		for label in string.gmatch(seats_csv, "[^,]+") do
			redis.call("DEL", "seat_hold:" .. show_id .. ":" .. label)
		end
		redis.call("DEL", KEYS[1])
		return {err = "hold expired"}
	end

	for label in string.gmatch(seats_csv, "[^,]+") do
		redis.call("SET", "seat_booked:" .. show_id .. ":" .. label, ARGV[2])
		redis.call("DEL", "seat_hold:" .. show_id .. ":" .. label)
	end

	local customer_id = redis.call("HGET", KEYS[1], "customer_id")
	redis.call("DEL", KEYS[1])

	return {show_id, customer_id, seats_csv}
`)

var releaseHoldScript = redis.NewScript(`
	-- KEYS[1] = hold hash key

	if redis.call("EXISTS", KEYS[1]) == 0 then
		return {err = "hold not found"}
	end

	local show_id = redis.call("HGET", KEYS[1], "show_id")
	local seats_csv = redis.call("HGET", KEYS[1], "seats")

	for label in string.gmatch(seats_csv, "[^,]+") do
		local key = "seat_hold:" .. show_id .. ":" .. label
		if redis.call("GET", key) == KEYS[1]:sub(6) then
			redis.call("DEL", key)
		end
	end

	redis.call("DEL", KEYS[1])

	return "OK"
`)

// RedisLedger backs the per-show critical section with Redis, so that
// multiple processes can share one occupancy record. Atomicity comes from
// Lua scripts; hold expiry comes from key TTLs.
type RedisLedger struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisLedger(client redis.UniversalClient, ttl time.Duration) *RedisLedger {
	if ttl <= 0 {
		ttl = DefaultHoldTTL
	}

	return &RedisLedger{client: client, ttl: ttl}
}

func (l *RedisLedger) TryHold(
	ctx context.Context,
	showID, customerID int,
	seats []domain.SeatLabel) (*domain.Hold, error) {

	if len(seats) == 0 {
		return nil, domain.ErrInvalidSeatSelection
	}

	now := time.Now()
	hold := &domain.Hold{
		ID:         uuid.New().String(),
		ShowID:     showID,
		CustomerID: customerID,
		Seats:      append([]domain.SeatLabel(nil), seats...),
		CreatedAt:  now,
		ExpiresAt:  now.Add(l.ttl),
	}

	argv := []interface{}{
		hold.ID,
		showID,
		customerID,
		int(l.ttl.Seconds()),
		int(holdGrace.Seconds()),
		now.Unix(),
		joinSeats(seats),
	}
	for _, seat := range seats {
		argv = append(argv, string(seat))
	}

	err := holdSeatsScript.Run(ctx, l.client, []string{holdKey(hold.ID)}, argv...).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, "seat unavailable") {
			return nil, domain.ErrSeatUnavailable
		}

		return nil, err
	}

	return hold, nil
}

func (l *RedisLedger) GetHold(ctx context.Context, holdID string) (*domain.Hold, error) {
	fields, err := l.client.HGetAll(ctx, holdKey(holdID)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, domain.ErrHoldNotFound
	}

	hold, err := holdFromFields(holdID, fields)
	if err != nil {
		return nil, err
	}

	if hold.Expired(time.Now()) {
		return nil, domain.ErrHoldExpired
	}

	return hold, nil
}

func (l *RedisLedger) Confirm(ctx context.Context, holdID string) (*domain.Booking, error) {
	bookingID := uuid.New().String()
	now := time.Now()

	cmd := confirmHoldScript.Run(ctx, l.client, []string{holdKey(holdID)}, now.Unix(), bookingID)
	if err := cmd.Err(); err != nil {
		switch {
		case redis.HasErrorPrefix(err, "hold not found"):
			return nil, domain.ErrHoldNotFound
		case redis.HasErrorPrefix(err, "hold expired"):
			return nil, domain.ErrHoldExpired
		default:
			return nil, err
		}
	}

	reply, err := cmd.StringSlice()
	if err != nil || len(reply) != 3 {
		return nil, fmt.Errorf("unexpected confirm script reply: %w", err)
	}

	showID, err := strconv.Atoi(reply[0])
	if err != nil {
		return nil, err
	}

	customerID, err := strconv.Atoi(reply[1])
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:          bookingID,
		ShowID:      showID,
		CustomerID:  customerID,
		Seats:       splitSeats(reply[2]),
		ConfirmedAt: now,
	}, nil
}

func (l *RedisLedger) Release(ctx context.Context, holdID string) error {
	err := releaseHoldScript.Run(ctx, l.client, []string{holdKey(holdID)}).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, "hold not found") {
			return domain.ErrHoldNotFound
		}

		return err
	}

	return nil
}

func (l *RedisLedger) StateOf(
	ctx context.Context,
	showID int,
	seat domain.SeatLabel) (domain.SeatState, error) {

	bookingID, err := l.client.Get(ctx, seatBookedKey(showID, seat)).Result()
	if err != nil && err != redis.Nil {
		return domain.SeatState{}, err
	}

	if bookingID != "" {
		return domain.SeatState{Status: domain.SeatBooked, BookingID: bookingID}, nil
	}

	holdID, err := l.client.Get(ctx, seatHoldKey(showID, seat)).Result()
	if err != nil && err != redis.Nil {
		return domain.SeatState{}, err
	}

	if holdID == "" {
		return domain.SeatState{Status: domain.SeatAvailable}, nil
	}

	state := domain.SeatState{Status: domain.SeatHeld, HoldID: holdID}

	ttl, err := l.client.PTTL(ctx, seatHoldKey(showID, seat)).Result()
	if err == nil && ttl > 0 {
		state.ExpiresAt = time.Now().Add(ttl)
	}

	return state, nil
}

func holdFromFields(holdID string, fields map[string]string) (*domain.Hold, error) {
	showID, err := strconv.Atoi(fields["show_id"])
	if err != nil {
		return nil, fmt.Errorf("malformed hold %s: %w", holdID, err)
	}

	customerID, err := strconv.Atoi(fields["customer_id"])
	if err != nil {
		return nil, fmt.Errorf("malformed hold %s: %w", holdID, err)
	}

	createdAt, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed hold %s: %w", holdID, err)
	}

	expiresAt, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed hold %s: %w", holdID, err)
	}

	return &domain.Hold{
		ID:         holdID,
		ShowID:     showID,
		CustomerID: customerID,
		Seats:      splitSeats(fields["seats"]),
		CreatedAt:  time.Unix(createdAt, 0),
		ExpiresAt:  time.Unix(expiresAt, 0),
	}, nil
}

func holdKey(holdID string) string {
	return fmt.Sprintf("hold:%s", holdID)
}

func seatHoldKey(showID int, seat domain.SeatLabel) string {
	return fmt.Sprintf("seat_hold:%d:%s", showID, seat)
}

func seatBookedKey(showID int, seat domain.SeatLabel) string {
	return fmt.Sprintf("seat_booked:%d:%s", showID, seat)
}

func joinSeats(seats []domain.SeatLabel) string {
	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = string(seat)
	}

	return strings.Join(labels, ",")
}

func splitSeats(csv string) []domain.SeatLabel {
	parts := strings.Split(csv, ",")
	seats := make([]domain.SeatLabel, len(parts))
	for i, part := range parts {
		seats[i] = domain.SeatLabel(part)
	}

	return seats
}
