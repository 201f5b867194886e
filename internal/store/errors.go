package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when registration derives an
	// identifier that is already taken by another account.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a lookup or update targets a user
	// identifier that has never been registered.
	ErrUserNotFound = errors.New("user not found")

	// ErrLoadingRecords is returned when a persisted record document
	// exists but cannot be read or decoded.
	ErrLoadingRecords = errors.New("error loading records")

	// ErrSavingRecords is returned when persisting a record document
	// fails. The previously persisted document is left in place.
	ErrSavingRecords = errors.New("error saving records")

	// ErrWritingFile is returned when an attachment or avatar upload
	// cannot be fully written. No partial file is left behind.
	ErrWritingFile = errors.New("error writing file")

	// ErrFileNotFound is returned when opening a stored file that does
	// not exist in the user's storage area.
	ErrFileNotFound = errors.New("stored file not found")

	// ErrInvalidFileName is returned when a user identifier or stored
	// file name is not a single clean path element. Values carrying dot
	// segments or separators never reach the filesystem.
	ErrInvalidFileName = errors.New("invalid file name")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQL record store when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan record row")
)
