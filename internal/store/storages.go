package store

import (
	"context"

	"github.com/MKhiriev/go-school-agenda/internal/config"
	"github.com/MKhiriev/go-school-agenda/internal/logger"
)

// Storages aggregates every persistence backend the service layer
// depends on.
type Storages struct {
	Users   UserRepository
	Records RecordStore
	Files   FileStore
}

// NewStorages wires the storage layer from configuration. The record
// store backend is chosen by cfg.DSN: empty selects the JSON file
// backend, anything else opens the SQL backend (SQLite file path or
// PostgreSQL URL) and applies migrations.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	users, err := NewFileUserRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	files, err := NewFileStore(cfg, log)
	if err != nil {
		return nil, err
	}

	var records RecordStore
	if cfg.DSN != "" {
		db, err := Connect(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err = db.Migrate(); err != nil {
			return nil, err
		}
		records = NewSQLRecordStore(db, log)
	} else {
		records, err = NewFileRecordStore(cfg, log)
		if err != nil {
			return nil, err
		}
	}

	return &Storages{
		Users:   users,
		Records: records,
		Files:   files,
	}, nil
}
