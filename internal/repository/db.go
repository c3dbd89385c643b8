package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cradoe/treelance/assets"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/lib/pq"
)

const defaultTimeout = 3 * time.Second

// Database interface defines available repositories
type Database interface {
	Verification() VerificationRepository
	Tier() TierRepository
	Document() DocumentRepository
	Activity() ActivityRepository

	Ping(ctx context.Context) error
	Close() error
}

// DatabaseImpl implements the Database interface
type DatabaseImpl struct {
	db               *sqlx.DB
	verificationRepo VerificationRepository
	tierRepo         TierRepository
	documentRepo     DocumentRepository
	activityRepo     ActivityRepository

	mu sync.Mutex
}

// New initializes a database connection and runs migrations if enabled
func New(dsn string, automigrate bool) (Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", "postgres://"+dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if automigrate {
		iofsDriver, err := iofs.New(assets.EmbeddedFiles, "migrations")
		if err != nil {
			return nil, err
		}

		migrator, err := migrate.NewWithSourceInstance("iofs", iofsDriver, "postgres://"+dsn)
		if err != nil {
			return nil, err
		}

		if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, err
		}
	}

	return NewFromDB(db), nil
}

// NewFromDB wraps an existing connection; repositories are created lazily.
func NewFromDB(db *sqlx.DB) *DatabaseImpl {
	return &DatabaseImpl{db: db}
}

func (d *DatabaseImpl) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DatabaseImpl) Close() error {
	return d.db.Close()
}

func (d *DatabaseImpl) Verification() VerificationRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.verificationRepo == nil {
		d.verificationRepo = NewVerificationRepository(d.db)
	}
	return d.verificationRepo
}

func (d *DatabaseImpl) Tier() TierRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tierRepo == nil {
		d.tierRepo = NewTierRepository(d.db)
	}
	return d.tierRepo
}

func (d *DatabaseImpl) Document() DocumentRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.documentRepo == nil {
		d.documentRepo = NewDocumentRepository(d.db)
	}
	return d.documentRepo
}

func (d *DatabaseImpl) Activity() ActivityRepository {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.activityRepo == nil {
		d.activityRepo = NewActivityRepository(d.db)
	}
	return d.activityRepo
}
