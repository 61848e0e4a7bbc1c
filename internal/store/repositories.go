package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
)

// Repositories groups the SQL repositories sharing one connection or one
// transaction.
type Repositories struct {
	Metadata        MetadataRepository
	SentBundles     SentBundleRepository
	ReceivedBundles ReceivedBundleRepository
	PeerKeys        PeerKeyRepository
	Routes          RouteRepository
	TransportPeers  TransportPeerRepository
}

func newRepositories(db *DB, q querier) Repositories {
	base := sqlRepository{q: q, sb: db.builder(), db: db}
	return Repositories{
		Metadata:        &metadataRepository{base},
		SentBundles:     &sentBundleRepository{base},
		ReceivedBundles: &receivedBundleRepository{base},
		PeerKeys:        &peerKeyRepository{base},
		Routes:          &routeRepository{base},
		TransportPeers:  &transportPeerRepository{base},
	}
}

// NewRepositories returns repositories working directly on db.
func NewRepositories(db *DB) Repositories {
	return newRepositories(db, db.DB)
}

// sqlRepository is embedded by every repository.
type sqlRepository struct {
	q  querier
	sb sq.StatementBuilderType
	db *DB
}

func (r sqlRepository) fail(sentinel, err error) error {
	return r.db.fail(sentinel, err)
}

// exec runs a DML statement and returns the number of affected rows.
func (r sqlRepository) exec(ctx context.Context, query string, args []any) (int64, error) {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, r.fail(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.fail(ErrExecutingStatement, err)
	}
	return n, nil
}
