package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinexhq/booking-engine/internal/booking"
	"github.com/cinexhq/booking-engine/internal/domain"
	"github.com/cinexhq/booking-engine/internal/ledger"
	"github.com/cinexhq/booking-engine/internal/payment"
	"github.com/cinexhq/booking-engine/internal/repository"
	appvalidator "github.com/cinexhq/booking-engine/internal/validator"
	"github.com/cinexhq/booking-engine/internal/vcs"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	catalogRepo domain.CatalogRepository
	bookingRepo domain.BookingRepository

	ledger       ledger.Ledger
	seatMap      *ledger.SeatMap
	orchestrator *booking.Orchestrator
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	DB               DBConfig
	Redis            RedisConfig
	Ledger           LedgerConfig
	Stripe           StripeConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// LedgerConfig selects where the per-show critical section lives. The
// memory backend is for single-process deployments; the redis backend
// shares the occupancy record across processes.
type LedgerConfig struct {
	Backend       string // memory | redis
	HoldTTL       time.Duration
	SweepInterval time.Duration
}

type StripeConfig struct {
	SecretKey string
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL (required for the redis ledger backend)")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.Ledger.Backend, "ledger-backend", "memory", "Reservation ledger backend (memory|redis)")
	flag.DurationVar(&cfg.Ledger.HoldTTL, "hold-ttl", ledger.DefaultHoldTTL, "How long a seat hold stays valid")
	flag.DurationVar(&cfg.Ledger.SweepInterval, "sweep-interval", time.Minute, "How often expired holds are swept")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := newDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(cfg.DB.DSN); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	var redisClient redis.UniversalClient
	if cfg.Redis.URL != "" {
		redisClient, err = newRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	app, err := NewApplication(cfg, logger, db, redisClient, payment.NewStripeVerifier())
	if err != nil {
		return err
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	var sweeper *ledger.Sweeper
	if memLedger, ok := app.ledger.(*ledger.MemoryLedger); ok {
		sweeper, err = ledger.NewSweeper(memLedger, cfg.Ledger.SweepInterval, logger)
		if err != nil {
			return err
		}

		sweeper.Start()
		defer sweeper.Shutdown()
	}

	return app.serve()
}

// NewApplication wires the repositories, the ledger backend and the booking
// orchestrator. redisClient may be nil when the memory backend is selected.
func NewApplication(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	verifier domain.PaymentVerifier) (*Application, error) {

	catalogRepo := repository.NewPostgresCatalogRepository(db)
	bookingRepo := repository.NewPostgresBookingRepository(db)

	var seatLedger ledger.Ledger

	switch cfg.Ledger.Backend {
	case "", "memory":
		seatLedger = ledger.NewMemoryLedger(ledger.WithHoldTTL(cfg.Ledger.HoldTTL))
	case "redis":
		if redisClient == nil {
			return nil, errors.New("redis ledger backend requires a redis url")
		}
		seatLedger = ledger.NewRedisLedger(redisClient, cfg.Ledger.HoldTTL)
	default:
		return nil, fmt.Errorf("unknown ledger backend: %q", cfg.Ledger.Backend)
	}

	app := &Application{
		config:       cfg,
		logger:       logger,
		db:           db,
		redis:        redisClient,
		validator:    appvalidator.NewValidator(),
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		ledger:       seatLedger,
		seatMap:      ledger.NewSeatMap(catalogRepo, seatLedger),
		orchestrator: booking.NewOrchestrator(catalogRepo, seatLedger, bookingRepo, verifier, logger),
	}

	return app, nil
}

func newRedisClient(cfg Config) (redis.UniversalClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownError; err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
