// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bundle-keeper/models"
)

const (
	tableMetadata       = "adu_metadata"
	tableSentBundles    = "sent_bundles"
	tableSentRanges     = "sent_bundle_ranges"
	tableReceived       = "received_bundles"
	tablePeerKeys       = "peer_keys"
	tableRoutes         = "app_routes"
	tableTransportPeers = "transport_peers"
)

var (
	metadataColumns = []string{
		"peer_id", "app_id", "last_added", "last_sent", "last_received", "last_processed", "last_deleted",
	}
	sentBundleColumns = []string{
		"bundle_id", "peer_id", "size", "path", "created_at", "acked_at", "purged", "ack_only",
	}
	sentRangeColumns = []string{
		"bundle_id", "app_id", "first_seq", "last_seq",
	}
	receivedColumns = []string{
		"bundle_id", "peer_id", "size", "received_at", "acked_in",
	}
	peerKeyColumns = []string{
		"peer_id", "role", "identity_key", "signing_key", "signed_pre_key", "signed_pre_key_sig", "updated_at",
	}
	routeColumns = []string{
		"app_id", "address", "updated_at",
	}
)

// adu_metadata

func buildEnsureMetadataQuery(sb sq.StatementBuilderType, peerID, appID string) (string, []any, error) {
	return sb.Insert(tableMetadata).
		Columns("peer_id", "app_id").
		Values(peerID, appID).
		Suffix("ON CONFLICT (peer_id, app_id) DO NOTHING").
		ToSql()
}

func buildGetMetadataQuery(sb sq.StatementBuilderType, peerID, appID string) (string, []any, error) {
	return sb.Select(metadataColumns...).
		From(tableMetadata).
		Where(sq.Eq{"peer_id": peerID, "app_id": appID}).
		ToSql()
}

func buildListMetadataQuery(sb sq.StatementBuilderType, peerID string) (string, []any, error) {
	return sb.Select(metadataColumns...).
		From(tableMetadata).
		Where(sq.Eq{"peer_id": peerID}).
		OrderBy("app_id").
		ToSql()
}

func buildListMetadataPeersQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select("peer_id").
		Distinct().
		From(tableMetadata).
		OrderBy("peer_id").
		ToSql()
}

// buildAdvanceExactQuery moves column from exactly from to to. A concurrent
// writer that moved the cursor first makes the update match no row.
func buildAdvanceExactQuery(sb sq.StatementBuilderType, column, peerID, appID string, from, to int64) (string, []any, error) {
	return sb.Update(tableMetadata).
		Set(column, to).
		Where(sq.Eq{"peer_id": peerID, "app_id": appID, column: from}).
		ToSql()
}

// buildAdvanceCappedQuery raises column to upto when it is ahead of the
// current value and not past the cap column.
func buildAdvanceCappedQuery(sb sq.StatementBuilderType, column, capColumn, peerID, appID string, upto int64) (string, []any, error) {
	return sb.Update(tableMetadata).
		Set(column, upto).
		Where(sq.Eq{"peer_id": peerID, "app_id": appID}).
		Where(sq.Lt{column: upto}).
		Where(sq.GtOrEq{capColumn: upto}).
		ToSql()
}

// sent_bundles

func buildInsertSentBundleQuery(sb sq.StatementBuilderType, id, peerID string, size int64, path string, createdAt time.Time, ackedAt any, ackOnly bool) (string, []any, error) {
	return sb.Insert(tableSentBundles).
		Columns(sentBundleColumns...).
		Values(id, peerID, size, path, createdAt, ackedAt, false, ackOnly).
		ToSql()
}

func buildInsertSentRangesQuery(sb sq.StatementBuilderType, id string, ranges []models.ADURange) (string, []any, error) {
	q := sb.Insert(tableSentRanges).Columns(sentRangeColumns...)
	for _, r := range ranges {
		q = q.Values(id, r.AppID, r.FirstSeq, r.LastSeq)
	}
	return q.ToSql()
}

func buildGetSentBundleQuery(sb sq.StatementBuilderType, id string) (string, []any, error) {
	return sb.Select(sentBundleColumns...).
		From(tableSentBundles).
		Where(sq.Eq{"bundle_id": id}).
		ToSql()
}

func buildListOutstandingQuery(sb sq.StatementBuilderType, peerID string) (string, []any, error) {
	return sb.Select(sentBundleColumns...).
		From(tableSentBundles).
		Where(sq.Eq{"peer_id": peerID, "acked_at": nil, "purged": false, "ack_only": false}).
		OrderBy("created_at", "bundle_id").
		ToSql()
}

func buildListAckOnlyBeforeQuery(sb sq.StatementBuilderType, peerID string, before time.Time) (string, []any, error) {
	return sb.Select(sentBundleColumns...).
		From(tableSentBundles).
		Where(sq.Eq{"peer_id": peerID, "ack_only": true, "purged": false}).
		Where(sq.Lt{"created_at": before}).
		OrderBy("created_at", "bundle_id").
		ToSql()
}

func buildListAckedUnpurgedQuery(sb sq.StatementBuilderType, peerID string) (string, []any, error) {
	return sb.Select(sentBundleColumns...).
		From(tableSentBundles).
		Where(sq.Eq{"peer_id": peerID, "purged": false}).
		Where(sq.NotEq{"acked_at": nil}).
		OrderBy("created_at", "bundle_id").
		ToSql()
}

func buildListSentRangesQuery(sb sq.StatementBuilderType, ids []string) (string, []any, error) {
	return sb.Select(sentRangeColumns...).
		From(tableSentRanges).
		Where(sq.Eq{"bundle_id": ids}).
		OrderBy("bundle_id", "app_id").
		ToSql()
}

func buildMarkSentAckedQuery(sb sq.StatementBuilderType, peerID, id string, at time.Time) (string, []any, error) {
	return sb.Update(tableSentBundles).
		Set("acked_at", at).
		Where(sq.Eq{"bundle_id": id, "peer_id": peerID, "acked_at": nil}).
		ToSql()
}

func buildMarkPurgedQuery(sb sq.StatementBuilderType, ids []string) (string, []any, error) {
	return sb.Update(tableSentBundles).
		Set("purged", true).
		Where(sq.Eq{"bundle_id": ids}).
		ToSql()
}

// received_bundles

func buildReceivedExistsQuery(sb sq.StatementBuilderType, id string) (string, []any, error) {
	return sb.Select("COUNT(*)").
		From(tableReceived).
		Where(sq.Eq{"bundle_id": id}).
		ToSql()
}

func buildInsertReceivedQuery(sb sq.StatementBuilderType, id, peerID string, size int64, at time.Time, ackedIn any) (string, []any, error) {
	return sb.Insert(tableReceived).
		Columns("bundle_id", "peer_id", "size", "received_at", "acked_in").
		Values(id, peerID, size, at, ackedIn).
		Suffix("ON CONFLICT (bundle_id) DO NOTHING").
		ToSql()
}

func buildListUnackedReceivedQuery(sb sq.StatementBuilderType, peerID string) (string, []any, error) {
	return sb.Select(receivedColumns...).
		From(tableReceived).
		Where(sq.Eq{"peer_id": peerID, "acked_in": nil}).
		OrderBy("received_at", "bundle_id").
		ToSql()
}

func buildMarkReceivedAckedQuery(sb sq.StatementBuilderType, ids []string, ackedIn string) (string, []any, error) {
	return sb.Update(tableReceived).
		Set("acked_in", ackedIn).
		Where(sq.Eq{"bundle_id": ids, "acked_in": nil}).
		ToSql()
}

func buildResetReceivedAckQuery(sb sq.StatementBuilderType, id string) (string, []any, error) {
	return sb.Update(tableReceived).
		Set("acked_in", sq.Expr("NULL")).
		Where(sq.And{
			sq.Eq{"bundle_id": id},
			sq.NotEq{"acked_in": nil},
			sq.NotEq{"acked_in": models.AckNotRequired},
		}).
		ToSql()
}

// peer_keys

func buildSavePeerKeysQuery(sb sq.StatementBuilderType, values []any) (string, []any, error) {
	return sb.Insert(tablePeerKeys).
		Columns(peerKeyColumns...).
		Values(values...).
		Suffix(`ON CONFLICT (peer_id) DO UPDATE SET
			role = excluded.role,
			identity_key = excluded.identity_key,
			signing_key = excluded.signing_key,
			signed_pre_key = excluded.signed_pre_key,
			signed_pre_key_sig = excluded.signed_pre_key_sig,
			updated_at = excluded.updated_at`).
		ToSql()
}

func buildGetPeerKeysQuery(sb sq.StatementBuilderType, peerID string) (string, []any, error) {
	return sb.Select(peerKeyColumns...).
		From(tablePeerKeys).
		Where(sq.Eq{"peer_id": peerID}).
		ToSql()
}

func buildListPeerKeysQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select(peerKeyColumns...).
		From(tablePeerKeys).
		OrderBy("peer_id").
		ToSql()
}

// app_routes

func buildSaveRouteQuery(sb sq.StatementBuilderType, appID, address string, at time.Time) (string, []any, error) {
	return sb.Insert(tableRoutes).
		Columns(routeColumns...).
		Values(appID, address, at).
		Suffix("ON CONFLICT (app_id) DO UPDATE SET address = excluded.address, updated_at = excluded.updated_at").
		ToSql()
}

func buildGetRouteQuery(sb sq.StatementBuilderType, appID string) (string, []any, error) {
	return sb.Select(routeColumns...).
		From(tableRoutes).
		Where(sq.Eq{"app_id": appID}).
		ToSql()
}

func buildListRoutesQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select(routeColumns...).
		From(tableRoutes).
		OrderBy("app_id").
		ToSql()
}

func buildDeleteRouteQuery(sb sq.StatementBuilderType, appID string) (string, []any, error) {
	return sb.Delete(tableRoutes).
		Where(sq.Eq{"app_id": appID}).
		ToSql()
}

// transport_peers

func buildTouchTransportPeerQuery(sb sq.StatementBuilderType, transportID, peerID string, at time.Time) (string, []any, error) {
	return sb.Insert(tableTransportPeers).
		Columns("transport_id", "peer_id", "seen_at").
		Values(transportID, peerID, at).
		Suffix("ON CONFLICT (transport_id, peer_id) DO UPDATE SET seen_at = excluded.seen_at").
		ToSql()
}

func buildListTransportPeersQuery(sb sq.StatementBuilderType, transportID string) (string, []any, error) {
	return sb.Select("peer_id").
		From(tableTransportPeers).
		Where(sq.Eq{"transport_id": transportID}).
		OrderBy("peer_id").
		ToSql()
}
