package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Query builders for the records table. The table holds one JSON document
// per (user_id, category) pair; the upsert makes every save a single
// all-or-nothing replace of the prior document.

func (s *sqlRecordStore) selectDocQuery(userID string, category Category) (string, []any, error) {
	return s.db.builder.
		Select("doc").
		From("records").
		Where(sq.Eq{"user_id": userID, "category": string(category)}).
		ToSql()
}

func (s *sqlRecordStore) upsertDocQuery(userID string, category Category, doc string, now time.Time) (string, []any, error) {
	return s.db.builder.
		Insert("records").
		Columns("user_id", "category", "doc", "updated_at").
		Values(userID, string(category), doc, now).
		Suffix(`ON CONFLICT (user_id, category) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`).
		ToSql()
}
