package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/common"
	"github.com/dmitrijs2005/monicli/internal/dbx"
)

// timeLayout is how timestamps are stored; parsing is done here rather than
// left to the driver so the format is pinned.
const timeLayout = time.RFC3339Nano

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const recordColumns = `local_id, record_type, remote_id, contact_id, payload,
	sync_status, sync_error, last_sync_attempt, deleted, created_at, updated_at`

func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.Record) error {
	query := `INSERT INTO records (` + recordColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.LocalID, string(rec.Type), remoteID(rec), rec.ContactID, string(rec.Payload),
		string(rec.SyncStatus), rec.SyncError, nullableTime(rec.LastSyncAttempt),
		boolToInt(rec.Deleted), rec.CreatedAt.Format(timeLayout), rec.UpdatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, rec *models.Record) error {
	query := `UPDATE records SET
		remote_id = ?, contact_id = ?, payload = ?, sync_status = ?, sync_error = ?,
		last_sync_attempt = ?, deleted = ?, updated_at = ?
		WHERE local_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		remoteID(rec), rec.ContactID, string(rec.Payload), string(rec.SyncStatus), rec.SyncError,
		nullableTime(rec.LastSyncAttempt), boolToInt(rec.Deleted), rec.UpdatedAt.Format(timeLayout),
		rec.LocalID)
	if err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *SQLiteRepository) GetByLocalID(ctx context.Context, localID string) (*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records WHERE local_id = ?`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, localID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to select record: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context, t models.RecordType) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records
		WHERE record_type = ? AND deleted = 0
		ORDER BY created_at DESC`
	return r.queryRecords(ctx, query, string(t))
}

func (r *SQLiteRepository) GetByContact(ctx context.Context, t models.RecordType, contactID int64) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records
		WHERE record_type = ? AND contact_id = ? AND deleted = 0
		ORDER BY created_at DESC`
	return r.queryRecords(ctx, query, string(t), contactID)
}

func (r *SQLiteRepository) GetDeleted(ctx context.Context, t models.RecordType, contactID int64) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records
		WHERE record_type = ? AND deleted = 1`
	args := []any{string(t)}
	if contactID != 0 {
		query += ` AND contact_id = ?`
		args = append(args, contactID)
	}
	return r.queryRecords(ctx, query, args...)
}

func (r *SQLiteRepository) GetUnsynced(ctx context.Context) ([]*models.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM records
		WHERE sync_status IN (?, ?)
		ORDER BY created_at ASC`
	return r.queryRecords(ctx, query, string(models.SyncStatusPending), string(models.SyncStatusFailed))
}

func (r *SQLiteRepository) HardDelete(ctx context.Context, localID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE local_id = ?`, localID)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM records`)
	if err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) queryRecords(ctx context.Context, query string, args ...any) ([]*models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	var result []*models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.Record, error) {
	var (
		rec         models.Record
		recType     string
		status      string
		payload     string
		remote      sql.NullInt64
		lastAttempt sql.NullString
		deleted     int
		createdAt   string
		updatedAt   string
	)
	err := row.Scan(&rec.LocalID, &recType, &remote, &rec.ContactID, &payload,
		&status, &rec.SyncError, &lastAttempt, &deleted, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	rec.Type = models.RecordType(recType)
	rec.SyncStatus = models.SyncStatus(status)
	rec.Payload = []byte(payload)
	rec.Deleted = deleted != 0
	if remote.Valid {
		v := remote.Int64
		rec.RemoteID = &v
	}
	if lastAttempt.Valid {
		t, err := time.Parse(timeLayout, lastAttempt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_sync_attempt: %w", err)
		}
		rec.LastSyncAttempt = &t
	}
	if rec.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &rec, nil
}

func remoteID(rec *models.Record) any {
	if rec.RemoteID == nil {
		return nil
	}
	return *rec.RemoteID
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(timeLayout)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
