package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-school-agenda/internal/logger"
	"github.com/MKhiriev/go-school-agenda/models"
)

const (
	selectDocSQL = `SELECT doc FROM records WHERE category = $1 AND user_id = $2`
	upsertDocSQL = `INSERT INTO records (user_id,category,doc,updated_at) VALUES ($1,$2,$3,$4) ON CONFLICT (user_id, category) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestSQLStore(t *testing.T, db *sql.DB) RecordStore {
	t.Helper()
	storeDB := &DB{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		dialect: "pgx",
		logger:  logger.Nop(),
	}
	return NewSQLRecordStore(storeDB, logger.Nop())
}

func TestSQLRecordStore_LoadFound(t *testing.T) {
	db, mock := newTestDB(t)
	s := newTestSQLStore(t, db)

	doc := `[{"id":"101","title":"es. 4 pag 23","start":"2024-05-02 00:00","tipo":"compiti","materia_desc":"Matematica","autore_desc":""}]`
	mock.ExpectQuery(regexp.QuoteMeta(selectDocSQL)).
		WithArgs("homework", "mario").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(doc))

	var tasks []models.Task
	err := s.Load(context.Background(), "mario", CategoryHomework, &tasks)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "101", tasks[0].ID)
	assert.Equal(t, "Matematica", tasks[0].SubjectDesc)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRecordStore_LoadAbsentKeepsDefault(t *testing.T) {
	db, mock := newTestDB(t)
	s := newTestSQLStore(t, db)

	mock.ExpectQuery(regexp.QuoteMeta(selectDocSQL)).
		WithArgs("status", "mario").
		WillReturnError(sql.ErrNoRows)

	statuses := models.StatusMap{}
	err := s.Load(context.Background(), "mario", CategoryStatus, &statuses)

	require.NoError(t, err)
	assert.Empty(t, statuses)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRecordStore_LoadCorruptedDocument(t *testing.T) {
	db, mock := newTestDB(t)
	s := newTestSQLStore(t, db)

	mock.ExpectQuery(regexp.QuoteMeta(selectDocSQL)).
		WithArgs("homework", "mario").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow("{broken"))

	var tasks []models.Task
	err := s.Load(context.Background(), "mario", CategoryHomework, &tasks)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLoadingRecords)
}

func TestSQLRecordStore_SaveUpserts(t *testing.T) {
	db, mock := newTestDB(t)
	s := newTestSQLStore(t, db)

	mock.ExpectExec(regexp.QuoteMeta(upsertDocSQL)).
		WithArgs("mario", "grades", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.Save(context.Background(), "mario", CategoryGrades, []models.Grade{{ID: "g1", Subject: "Storia", Value: 7.5}})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRecordStore_SaveExecError(t *testing.T) {
	db, mock := newTestDB(t)
	s := newTestSQLStore(t, db)

	mock.ExpectExec(regexp.QuoteMeta(upsertDocSQL)).
		WillReturnError(errors.New("disk full"))

	err := s.Save(context.Background(), "mario", CategoryGrades, []models.Grade{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSavingRecords)
}
