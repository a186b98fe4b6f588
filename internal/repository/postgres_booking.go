package repository

import (
	"context"
	"errors"

	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create persists a confirmed booking. The unique (show_id, seat_label)
// constraint on booking_seats is a backstop for multi-process deployments
// where two ledgers could disagree; a violation surfaces as
// domain.ErrSeatUnavailable.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking domain.Booking) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (id, show_id, customer_id, confirmed_at)
			VALUES ($1, $2, $3, $4)
		`

		_, err := tx.Exec(ctx, query, booking.ID, booking.ShowID, booking.CustomerID, booking.ConfirmedAt)
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(booking.Seats))
		for _, seat := range booking.Seats {
			rows = append(rows, []any{booking.ID, booking.ShowID, string(seat)})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "show_id", "seat_label"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrSeatUnavailable
	}

	return err
}

func (p *PostgresBookingRepository) GetByCustomer(ctx context.Context, customerID int) ([]domain.Booking, error) {
	query := `
		SELECT b.id, b.show_id, b.customer_id, b.confirmed_at,
			ARRAY_AGG(bs.seat_label ORDER BY bs.seat_label) AS seats
		FROM bookings b
		JOIN booking_seats bs ON bs.booking_id = b.id
		WHERE b.customer_id = $1
		GROUP BY b.id, b.show_id, b.customer_id, b.confirmed_at
		ORDER BY b.confirmed_at, b.id
	`

	rows, err := p.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking

	for rows.Next() {
		var (
			booking domain.Booking
			seats   []string
		)

		err := rows.Scan(&booking.ID, &booking.ShowID, &booking.CustomerID, &booking.ConfirmedAt, &seats)
		if err != nil {
			return nil, err
		}

		booking.Seats = make([]domain.SeatLabel, len(seats))
		for i, seat := range seats {
			booking.Seats[i] = domain.SeatLabel(seat)
		}

		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}
