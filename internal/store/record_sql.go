package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
)

// sqlRecordStore is the database-backed [RecordStore] implementation.
// Documents keep the exact JSON shape the file backend uses, so the two
// backends are interchangeable behind the interface.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type sqlRecordStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLRecordStore constructs a [RecordStore] backed by the provided
// database connection and logger.
func NewSQLRecordStore(db *DB, log *logger.Logger) RecordStore {
	log.Debug().Msg("creating sql record store")
	return &sqlRecordStore{
		db:     db,
		logger: log,
	}
}

func (s *sqlRecordStore) Load(ctx context.Context, userID string, category Category, dest any) error {
	log := logger.FromContext(ctx)

	query, args, err := s.selectDocQuery(userID, category)
	if err != nil {
		log.Err(err).Str("func", "*sqlRecordStore.Load").Msg("error building select query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var doc string
	row := s.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// nothing persisted yet: dest keeps its empty default
			return nil
		}
		log.Err(err).Str("func", "*sqlRecordStore.Load").Msg("error scanning record document")
		return s.classify(err, ErrScanningRow)
	}

	if err = json.Unmarshal([]byte(doc), dest); err != nil {
		log.Err(err).Str("func", "*sqlRecordStore.Load").Msg("error decoding record document")
		return fmt.Errorf("%w: decode %s/%s: %w", ErrLoadingRecords, userID, category, err)
	}

	return nil
}

func (s *sqlRecordStore) Save(ctx context.Context, userID string, category Category, value any) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s/%s: %w", ErrSavingRecords, userID, category, err)
	}

	query, args, err := s.upsertDocQuery(userID, category, string(payload), time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*sqlRecordStore.Save").Msg("error building upsert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*sqlRecordStore.Save").Msg("error executing upsert")
		return s.classify(err, ErrSavingRecords)
	}

	return nil
}

// classify maps driver-level errors onto package sentinels. An undefined
// records table means the migrations were never applied, which deserves a
// clearer message than a raw driver error.
func (s *sqlRecordStore) classify(err error, fallback error) error {
	if postgresError(err) == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: records table missing, run migrations: %w", ErrExecutingQuery, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}
