package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/audit"
)

const auditTable = "sys_audit"

// Payloads past this size are stored zstd-compressed.
const compressThreshold = 10 * 1024

type compressionAlgo string

const (
	compressionNone compressionAlgo = "none"
	compressionZstd compressionAlgo = "zstd"
)

// AuditEntry is the persisted shape of an audit event.
type AuditEntry struct {
	ID                id.ID           `db:"id"`
	EntityType        string          `db:"entity_type"`
	EntityID          id.ID           `db:"entity_id"`
	Action            string          `db:"action"`
	UserID            string          `db:"user_id"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   compressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// AuditRecorder implements audit.Recorder on top of a sys_audit table,
// compressing large payloads.
type AuditRecorder struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
}

var _ audit.Recorder = (*AuditRecorder)(nil)

func NewAuditRecorder(txManager *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AuditRecorder{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		encoder:   encoder,
		decoder:   decoder,
	}, nil
}

// Record persists one event inside the caller's transaction.
func (r *AuditRecorder) Record(ctx context.Context, e *audit.Event) error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	entry := AuditEntry{
		ID:              e.ID,
		EntityType:      e.Entity,
		EntityID:        e.EntityID,
		Action:          e.Action,
		UserID:          e.UserID.String(),
		Payload:         payload,
		CompressionAlgo: compressionNone,
		CreatedAt:       e.At,
	}
	if id.IsNil(entry.ID) {
		entry.ID = id.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if len(entry.Payload) > compressThreshold {
		entry.PayloadCompressed = r.encoder.EncodeAll(entry.Payload, nil)
		entry.Payload = nil
		entry.CompressionAlgo = compressionZstd
	}

	q := r.builder.Insert(auditTable).SetMap(StructToMap(&entry))
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}
	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return MapError(fmt.Errorf("insert audit entry: %w", err))
	}
	return nil
}

// History returns the audit trail of one entity, newest first, with
// compressed payloads inflated.
func (r *AuditRecorder) History(ctx context.Context, entityID id.ID, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	q := r.builder.
		Select(ExtractDBColumns[AuditEntry]()...).
		From(auditTable).
		Where(squirrel.Eq{"entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	var entries []AuditEntry
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &entries, sql, args...); err != nil {
		return nil, MapError(fmt.Errorf("query audit: %w", err))
	}

	for i := range entries {
		if entries[i].CompressionAlgo != compressionZstd {
			continue
		}
		raw, err := r.decoder.DecodeAll(entries[i].PayloadCompressed, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress audit payload: %w", err)
		}
		entries[i].Payload = raw
		entries[i].PayloadCompressed = nil
		entries[i].CompressionAlgo = compressionNone
	}
	return entries, nil
}
