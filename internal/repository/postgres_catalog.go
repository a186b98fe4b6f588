package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

func (p *PostgresCatalogRepository) GetTheater(ctx context.Context, theaterID int) (*domain.Theater, error) {
	query := `
		SELECT id, name, street, city, state, country, postal_code
		FROM theaters
		WHERE id = $1
	`

	var theater domain.Theater

	err := p.db.QueryRow(ctx, query, theaterID).Scan(
		&theater.ID,
		&theater.Name,
		&theater.Street,
		&theater.City,
		&theater.State,
		&theater.Country,
		&theater.PostalCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &theater, nil
}

func (p *PostgresCatalogRepository) GetShow(ctx context.Context, showID int) (*domain.Show, error) {
	query := `
		SELECT s.id, s.movie_id, s.screen_id, s.start_time, m.duration, s.base_price
		FROM shows s
		JOIN movies m ON m.id = s.movie_id
		WHERE s.id = $1
	`

	var (
		show      domain.Show
		basePrice pgtype.Numeric
	)

	err := p.db.QueryRow(ctx, query, showID).Scan(
		&show.ID,
		&show.MovieID,
		&show.ScreenID,
		&show.StartTime,
		&show.Duration,
		&basePrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	show.BasePrice = numericToDecimal(basePrice)

	return &show, nil
}

func (p *PostgresCatalogRepository) GetScreenLayout(ctx context.Context, screenID int) (*domain.ScreenLayout, error) {
	query := `
		SELECT id, seat_rows, seat_cols, row_classes
		FROM screens
		WHERE id = $1
	`

	var (
		layout     domain.ScreenLayout
		rowClasses []string
	)

	err := p.db.QueryRow(ctx, query, screenID).Scan(
		&layout.ScreenID,
		&layout.Rows,
		&layout.Cols,
		&rowClasses,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	layout.RowClasses = make([]domain.SeatClass, len(rowClasses))
	for i, class := range rowClasses {
		layout.RowClasses[i] = domain.SeatClass(class)
	}

	return &layout, nil
}

func (p *PostgresCatalogRepository) FindShowsByTheaterAndDateRange(
	ctx context.Context,
	theaterID int,
	start, end time.Time) ([]domain.Show, error) {

	query := `
		SELECT s.id, s.movie_id, s.screen_id, s.start_time, m.duration, s.base_price
		FROM shows s
		JOIN movies m ON m.id = s.movie_id
		JOIN screens sc ON sc.id = s.screen_id
		WHERE sc.theater_id = $1
		AND s.start_time BETWEEN $2 AND $3
		ORDER BY s.start_time, s.id
	`

	rows, err := p.db.Query(ctx, query, theaterID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shows []domain.Show

	for rows.Next() {
		var (
			show      domain.Show
			basePrice pgtype.Numeric
		)

		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.ScreenID,
			&show.StartTime,
			&show.Duration,
			&basePrice,
		)
		if err != nil {
			return nil, err
		}

		show.BasePrice = numericToDecimal(basePrice)
		shows = append(shows, show)
	}

	return shows, rows.Err()
}

func (p *PostgresCatalogRepository) GetCustomer(ctx context.Context, customerID int) (*domain.Customer, error) {
	query := `
		SELECT id, name, email, phone
		FROM customers
		WHERE id = $1
	`

	var customer domain.Customer

	err := p.db.QueryRow(ctx, query, customerID).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &customer, nil
}

// numericToDecimal converts straight from the numeric's coefficient and
// exponent, so NUMERIC values survive without a lossy float round-trip.
func numericToDecimal(numeric pgtype.Numeric) decimal.Decimal {
	if !numeric.Valid || numeric.NaN || numeric.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(numeric.Int, numeric.Exp)
}
