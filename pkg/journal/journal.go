// Package journal keeps a local record of the requests this client submitted.
// It is a client-side log for the CLI history view, not a copy of chain state.
package journal

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Request kinds.
const (
	KindOffLedger = "offledger"
	KindOnLedger  = "onledger"
)

var ErrNotFound = errors.New("journal entry not found")

// Entry describes one submitted request.
type Entry struct {
	Kind          string
	ChainID       string
	Contract      string
	Entrypoint    string
	RequestID     string
	TransactionID string
	Nonce         uint64
	Sender        string
}

// RecordDTO is the stored form of an Entry.
type RecordDTO struct {
	ID            uint      `gorm:"column:id;primaryKey"`
	Ref           string    `gorm:"column:ref;not null;uniqueIndex;size:36"`
	Kind          string    `gorm:"column:kind;not null"`
	ChainID       string    `gorm:"column:chain_id;not null"`
	Contract      string    `gorm:"column:contract;not null"`
	Entrypoint    string    `gorm:"column:entrypoint;not null"`
	RequestID     string    `gorm:"column:request_id;index"`
	TransactionID string    `gorm:"column:transaction_id"`
	Nonce         uint64    `gorm:"column:nonce"`
	Sender        string    `gorm:"column:sender"`
	CreatedAt     time.Time `gorm:"column:created_at;not null"`
}

func (RecordDTO) TableName() string { return "request_journal" }

type Store struct {
	db *gorm.DB
}

//go:embed migrations/postgres/*.sql
var embedMigrations embed.FS

// Open connects to the database described by conf and brings the schema up
// to date. PostgreSQL uses the embedded migrations, sqlite is auto-migrated.
func Open(conf Config) (*Store, error) {
	cnf, err := parseDSN(conf.DSN, conf.Schema)
	if err != nil {
		return nil, err
	}

	gormConf := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	if cnf.Driver != "postgres" {
		db, err := gorm.Open(sqlite.Open(cnf.sqliteDSN()), gormConf)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
		}
		return NewStore(db)
	}

	if err := ensurePostgresSchema(cnf); err != nil {
		return nil, err
	}
	if err := migratePostgres(cnf); err != nil {
		return nil, err
	}
	if cnf.Schema != "" {
		gormConf.NamingStrategy = schema.NamingStrategy{TablePrefix: cnf.Schema + "."}
	}
	db, err := gorm.Open(postgres.Open(cnf.postgresDSN()), gormConf)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	return &Store{db: db}, nil
}

func ensurePostgresSchema(cnf dbConfig) error {
	if cnf.Schema == "" {
		return nil
	}

	conf := cnf
	conf.Schema = ""
	db, err := sqlx.Connect("postgres", conf.postgresDSN())
	if err != nil {
		return fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	defer db.Close()

	var exists bool
	const query = "SELECT EXISTS (SELECT 1 FROM information_schema.schemata WHERE schema_name = $1)"
	if err := db.Get(&exists, query, cnf.Schema); err != nil {
		return fmt.Errorf("failed to check schema %s: %w", cnf.Schema, err)
	}
	if exists {
		return nil
	}
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(cnf.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", cnf.Schema, err)
	}
	return nil
}

func migratePostgres(cnf dbConfig) error {
	db, err := goose.OpenDBWithDriver("postgres", cnf.postgresDSN())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations/postgres"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// NewStore wraps an open database and migrates the schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&RecordDTO{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record stores e.
func (s *Store) Record(ctx context.Context, e Entry) error {
	dto := RecordDTO{
		Ref:           uuid.NewString(),
		Kind:          e.Kind,
		ChainID:       e.ChainID,
		Contract:      e.Contract,
		Entrypoint:    e.Entrypoint,
		RequestID:     e.RequestID,
		TransactionID: e.TransactionID,
		Nonce:         e.Nonce,
		Sender:        e.Sender,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("failed to record request: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]RecordDTO, error) {
	var records []RecordDTO
	if err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve journal: %w", err)
	}
	return records, nil
}

// ByRequestID returns the entry of an off-ledger request.
func (s *Store) ByRequestID(ctx context.Context, requestID string) (*RecordDTO, error) {
	var record RecordDTO
	if err := s.db.WithContext(ctx).Where("request_id = ?", requestID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, requestID)
		}
		return nil, fmt.Errorf("failed to retrieve journal entry: %w", err)
	}
	return &record, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
