package integration_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/cinexhq/booking-engine/internal/app"
	"github.com/cinexhq/booking-engine/internal/payment"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

const (
	dbName         = "booking_engine"
	dbUser         = "test_user"
	dbPassword     = "test_password"
	dbImageName    = "postgres:17-alpine"
	cacheImageName = "redis:7"

	holdTTL = 2 * time.Minute
)

type BaseSuite struct {
	suite.Suite
	app            *app.Application
	db             *pgxpool.Pool
	redis          *redis.Client
	verifier       *payment.MockVerifier
	dbContainer    *PostgresContainer
	cacheContainer *RedisContainer
}

func (s *BaseSuite) SetupSuite() {
	ctx := context.Background()

	postgresContainer, err := getDbContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	redisContainer, err := getCacheContainer(ctx)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return
	}

	s.dbContainer = postgresContainer
	s.cacheContainer = redisContainer

	s.db, err = pgxpool.New(ctx, postgresContainer.ConnectionString)
	s.Require().NoError(err)

	s.redis = redis.NewClient(&redis.Options{Addr: redisContainer.ConnectionString})
	s.Require().NoError(s.redis.Ping(ctx).Err())

	s.seedCatalog(ctx)

	cfg := app.Config{
		Port: 3000,
		Env:  "test",
		DB: app.DBConfig{
			DSN:          postgresContainer.ConnectionString,
			MaxOpenConns: 25,
			MaxIdleTime:  2 * time.Minute,
		},
		Redis: app.RedisConfig{
			URL:          redisContainer.ConnectionString,
			MaxOpenConns: 10,
			MaxIdleConns: 10,
			MaxIdleTime:  2 * time.Minute,
		},
		Ledger: app.LedgerConfig{
			Backend: "redis",
			HoldTTL: holdTTL,
		},
	}

	s.verifier = &payment.MockVerifier{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.app, err = app.NewApplication(cfg, logger, s.db, s.redis, s.verifier)
	s.Require().NoError(err)
}

func (s *BaseSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.dbContainer != nil {
		if err := testcontainers.TerminateContainer(s.dbContainer.Container.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if s.cacheContainer != nil {
		if err := testcontainers.TerminateContainer(s.cacheContainer.Container); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
}

func (s *BaseSuite) SetupTest() {
	ctx := context.Background()

	s.verifier.VerifyFunc = nil

	s.Require().NoError(s.redis.FlushAll(ctx).Err())

	_, err := s.db.Exec(ctx, `TRUNCATE booking_seats, bookings`)
	s.Require().NoError(err)
}

// seedCatalog inserts the fixed catalog every test runs against: one theater
// with one 2x3 screen, one movie and two shows.
func (s *BaseSuite) seedCatalog(ctx context.Context) {
	stmts := []string{
		`INSERT INTO theaters (id, name, street, city, state, country, postal_code)
		 VALUES (1, 'Downtown 5', '500 Congress Ave', 'Austin', 'TX', 'USA', '78701')`,
		`INSERT INTO screens (id, theater_id, name, seat_rows, seat_cols, row_classes)
		 VALUES (1, 1, 'Screen 1', 2, 3, '{Standard,VIP}')`,
		`INSERT INTO movies (id, title, genre, release_date, duration)
		 VALUES (1, 'The Long Haul', 'Drama', '2026-06-12', 120)`,
		`INSERT INTO shows (id, movie_id, screen_id, start_time, base_price)
		 VALUES (1, 1, 1, '2026-09-04T18:30:00Z', 20.00),
		        (2, 1, 1, '2026-09-05T21:00:00Z', 25.00)`,
		`INSERT INTO customers (id, name, email, phone)
		 VALUES (1, 'Ada Lovelace', 'ada@example.com', '+1-512-555-0100'),
		        (2, 'Grace Hopper', 'grace@example.com', '+1-512-555-0101')`,
	}

	for _, stmt := range stmts {
		_, err := s.db.Exec(ctx, stmt)
		s.Require().NoError(err)
	}
}
