package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrMetadataNotFound is returned when no cursor row exists for a
	// (peer, app) stream.
	ErrMetadataNotFound = errors.New("adu metadata was not found")

	// ErrCursorConflict is returned when a guarded cursor update finds the
	// cursor moved since it was read.
	ErrCursorConflict = errors.New("cursor was advanced concurrently")

	// ErrSequenceGap is returned when a received ADU run does not start right
	// after LastReceived or is not contiguous. Nothing is written.
	ErrSequenceGap = errors.New("adu sequence gap")

	// ErrADUTooLarge is returned when a produced ADU cannot fit any bundle.
	ErrADUTooLarge = errors.New("adu exceeds the bundle window")

	// ErrADUNotFound is returned when a payload file is missing.
	ErrADUNotFound = errors.New("adu payload was not found")

	// ErrBundleNotFound is returned when a sent bundle is not in the ledger.
	ErrBundleNotFound = errors.New("bundle was not found")

	// ErrBundleAlreadyReceived is returned when a bundle id is already in the
	// dedup table.
	ErrBundleAlreadyReceived = errors.New("bundle was already received")

	ErrPeerKeysNotFound = errors.New("peer keys were not found")
	ErrRouteNotFound    = errors.New("route was not found")

	// ErrInvalidPathSegment is returned for peer or app ids that cannot be
	// used as a single path element.
	ErrInvalidPathSegment = errors.New("invalid path segment")

	// ErrDataDirLocked is returned when another process holds the data dir.
	ErrDataDirLocked = errors.New("data dir is locked by another process")

	ErrUnknownDriver = errors.New("unknown database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrNonRetryable marks a database failure that repeats on every retry:
	// constraint and syntax errors, data exceptions and the like.
	ErrNonRetryable = errors.New("non-retryable database error")

	// ErrFileStorage wraps payload and bundle file I/O failures.
	ErrFileStorage = errors.New("file storage error")
)
