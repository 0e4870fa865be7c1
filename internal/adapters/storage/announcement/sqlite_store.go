package announcement

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "gymhub/internal/domain/announcement"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new announcement store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const columns = "id, audience, status, severity, title, content, created_by, created_at, published_at"

// GetByID retrieves an Announcement by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Announcement, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+columns+" FROM announcement WHERE id = ?", id)
	entity, err := scanAnnouncement(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Announcement{}, fmt.Errorf("announcement not found: %w", err)
	}
	return entity, err
}

// Save persists an Announcement to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Announcement) error {
	var publishedAt interface{}
	if !entity.PublishedAt.IsZero() {
		publishedAt = entity.PublishedAt.Format(timeFormat)
	}
	severity := entity.Severity
	if severity == "" {
		severity = domain.SeverityInfo
	}

	query := `INSERT INTO announcement (` + columns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			audience=excluded.audience,
			status=excluded.status,
			severity=excluded.severity,
			title=excluded.title,
			content=excluded.content,
			published_at=excluded.published_at`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Audience,
		entity.Status,
		severity,
		entity.Title,
		entity.Content,
		entity.CreatedBy,
		entity.CreatedAt.Format(timeFormat),
		publishedAt,
	)
	return err
}

// Delete removes an Announcement from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM announcement WHERE id = ?", id)
	return err
}

// List retrieves Announcements based on the filter, newest first.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Announcement, error) {
	var queryBuilder strings.Builder
	var args []interface{}
	var where []string

	queryBuilder.WriteString("SELECT " + columns + " FROM announcement")

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Audience != "" {
		where = append(where, "(audience = ? OR audience = 'all')")
		args = append(args, filter.Audience)
	}
	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(where, " AND "))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC LIMIT ? OFFSET ?")
	args = append(args, limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Announcement
	for rows.Next() {
		entity, err := scanAnnouncement(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanAnnouncement extracts an Announcement from a row scanner function.
func scanAnnouncement(scan func(dest ...interface{}) error) (domain.Announcement, error) {
	var entity domain.Announcement
	var createdAt string
	var publishedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.Audience,
		&entity.Status,
		&entity.Severity,
		&entity.Title,
		&entity.Content,
		&entity.CreatedBy,
		&createdAt,
		&publishedAt,
	)
	if err != nil {
		return domain.Announcement{}, err
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	if publishedAt.Valid && publishedAt.String != "" {
		entity.PublishedAt, _ = parseTime(publishedAt.String)
	}
	return entity, nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}
