// Package records persists application submissions.
package records

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/models"
)

// Store is the record store contract used by the submission pipeline, the
// admin API and the workers.
type Store interface {
	Create(ctx context.Context, payload *models.SubmissionPayload, updatedBy string) (string, error)
	Update(ctx context.Context, id string, payload *models.SubmissionPayload, updatedBy string) error
	Get(ctx context.Context, id string) (*models.Record, error)
	List(ctx context.Context) ([]models.Record, error)
}

type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "record-store"}),
		now:    time.Now,
	}
}

// Create inserts a new row. Every call produces a new id, so a retried
// create leaves a duplicate behind.
func (s *PostgresStore) Create(ctx context.Context, payload *models.SubmissionPayload, updatedBy string) (string, error) {
	data, err := models.Encode(payload)
	if err != nil {
		return "", apperrors.NewRecordCreateFailedError(err)
	}

	id := uuid.New().String()
	now := s.now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO applications (id, application_data, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)`,
		id, data, updatedBy, now,
	)
	if err != nil {
		return "", apperrors.NewRecordCreateFailedError(err)
	}

	s.logger.Debug("application record created", map[string]interface{}{
		"applicationId": id,
		"updatedBy":     updatedBy,
	})
	return id, nil
}

// Update overwrites the whole payload. Last writer wins.
func (s *PostgresStore) Update(ctx context.Context, id string, payload *models.SubmissionPayload, updatedBy string) error {
	data, err := models.Encode(payload)
	if err != nil {
		return apperrors.NewRecordUpdateFailedError(id, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE applications
		SET application_data = $2, updated_by = $3, updated_at = $4
		WHERE id = $1`,
		id, data, updatedBy, s.now().UTC(),
	)
	if err != nil {
		return apperrors.NewRecordUpdateFailedError(id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewRecordUpdateFailedError(id, err)
	}
	if affected == 0 {
		return apperrors.NewRecordNotFoundError(id)
	}
	return nil
}

// Get returns nil, nil when no record has the id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*models.Record, error) {
	var r models.Record
	err := s.db.QueryRowContext(ctx, `
		SELECT id, application_data, updated_by, created_at, updated_at
		FROM applications
		WHERE id = $1`, id,
	).Scan(&r.ID, &r.ApplicationData, &r.UpdatedBy, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewRecordQueryFailedError("get", err)
	}
	return &r, nil
}

// List returns every record, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]models.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, application_data, updated_by, created_at, updated_at
		FROM applications
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperrors.NewRecordQueryFailedError("list", err)
	}
	defer rows.Close()

	records := []models.Record{}
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.ID, &r.ApplicationData, &r.UpdatedBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, apperrors.NewRecordQueryFailedError("list", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewRecordQueryFailedError("list", err)
	}
	return records, nil
}
