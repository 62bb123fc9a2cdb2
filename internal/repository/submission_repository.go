package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/estudiosur/site-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// insertTimeout bounds a single insert attempt. A timeout surfaces to the
// caller as an ordinary error, not a distinct code path.
const insertTimeout = 10 * time.Second

// SubmissionRepository defines the persistence interface for contact-form
// submissions.
type SubmissionRepository interface {
	Insert(ctx context.Context, rec *model.SubmissionRecord) error
	List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.SubmissionRecord, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PgSubmissionRepository is the PostgreSQL implementation of
// SubmissionRepository.
type PgSubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewPgSubmissionRepository creates a PgSubmissionRepository backed by the
// given pool.
func NewPgSubmissionRepository(pool *pgxpool.Pool) *PgSubmissionRepository {
	return &PgSubmissionRepository{pool: pool}
}

// Ensure PgSubmissionRepository implements SubmissionRepository at compile time.
var _ SubmissionRepository = (*PgSubmissionRepository)(nil)

// Insert adds one contact_submissions row and populates rec.ID and
// rec.CreatedAt from the RETURNING clause. Bounded by a 10s timeout.
// Not idempotent: a retried call creates a duplicate row with a new identity.
func (r *PgSubmissionRepository) Insert(ctx context.Context, rec *model.SubmissionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	return r.pool.QueryRow(ctx,
		`INSERT INTO contact_submissions
		   (name, email, phone, topic, subject, message, preference, ip, user_agent, status)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		rec.Name, rec.Email, rec.Phone, rec.Topic, rec.Subject, rec.Message,
		rec.Preference, rec.IP, rec.UserAgent, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// List returns submissions filtered by status and paginated by limit/offset.
// Status "" or "all" returns all submissions, newest first.
func (r *PgSubmissionRepository) List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.SubmissionRecord, error) {
	var conditions []string
	var args []any

	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		args = append(args, status)
		conditions = append(conditions, "status = $1")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, opts.Offset)

	query := `SELECT id, name, email, COALESCE(phone, ''), COALESCE(topic, ''),
	                 subject, message, preference, ip, user_agent, status, created_at
	          FROM contact_submissions ` + where +
		` ORDER BY created_at DESC
		  LIMIT $` + strconv.Itoa(limitArg) + ` OFFSET $` + strconv.Itoa(offsetArg)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.SubmissionRecord
	for rows.Next() {
		var rec model.SubmissionRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Phone, &rec.Topic,
			&rec.Subject, &rec.Message, &rec.Preference, &rec.IP, &rec.UserAgent,
			&rec.Status, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// UpdateStatus changes the status of a stored submission.
func (r *PgSubmissionRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contact_submissions SET status = $2 WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
