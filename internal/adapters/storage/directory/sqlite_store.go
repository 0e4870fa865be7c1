package directory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domain "gymhub/internal/domain/user"
)

const timeFormat = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new directory store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const userColumns = "id, email, name, role, avatar, approval_status, gym_json, email_verified, password_hash, created_at, failed_logins, locked_until"

// GetByID retrieves a User by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user_directory WHERE id = ?", id)
	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// GetByEmail retrieves a User by email.
// PRE: email is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM user_directory WHERE email = ?", email)
	entity, err := scanUser(row.Scan)
	if err == sql.ErrNoRows {
		return domain.User{}, fmt.Errorf("user not found: %w", err)
	}
	return entity, err
}

// Save persists a User to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.User) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var gymJSON interface{}
	if entity.Gym != nil {
		raw, err := json.Marshal(entity.Gym)
		if err != nil {
			return fmt.Errorf("failed to encode gym details: %w", err)
		}
		gymJSON = string(raw)
	}

	var lockedUntil interface{}
	if !entity.LockedUntil.IsZero() {
		lockedUntil = entity.LockedUntil.Format(timeFormat)
	}

	query := `INSERT INTO user_directory (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email=excluded.email,
			name=excluded.name,
			role=excluded.role,
			avatar=excluded.avatar,
			approval_status=excluded.approval_status,
			gym_json=excluded.gym_json,
			email_verified=excluded.email_verified,
			password_hash=excluded.password_hash,
			failed_logins=excluded.failed_logins,
			locked_until=excluded.locked_until`

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Email,
		entity.Name,
		entity.Role,
		entity.Avatar,
		entity.ApprovalStatus,
		gymJSON,
		boolToInt(entity.EmailVerified),
		entity.PasswordHash,
		entity.CreatedAt.Format(timeFormat),
		entity.FailedLogins,
		lockedUntil,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a User from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM user_directory WHERE id = ?", id)
	return err
}

// List retrieves Users based on the filter.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.User, error) {
	var queryBuilder strings.Builder
	var args []interface{}
	var where []string

	queryBuilder.WriteString("SELECT " + userColumns + " FROM user_directory")

	if filter.Role != "" {
		where = append(where, "role = ?")
		args = append(args, filter.Role)
	}
	if filter.ApprovalStatus != "" {
		where = append(where, "approval_status = ?")
		args = append(args, filter.ApprovalStatus)
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

	var results []domain.User
	for rows.Next() {
		entity, err := scanUser(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of directory entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_directory").Scan(&count)
	return count, err
}

// SaveVerificationToken persists a verification token.
// PRE: token fields are populated
// POST: Token is persisted
func (s *SQLiteStore) SaveVerificationToken(ctx context.Context, token domain.VerificationToken) error {
	query := `INSERT INTO verification_token (id, user_id, token, expires_at, used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET used=excluded.used`
	_, err := s.db.ExecContext(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.ExpiresAt.Format(timeFormat),
		boolToInt(token.Used),
		token.CreatedAt.Format(timeFormat),
	)
	return err
}

// GetVerificationToken retrieves a verification token by its token value.
// PRE: token is non-empty
// POST: Returns the token or an error if not found
func (s *SQLiteStore) GetVerificationToken(ctx context.Context, token string) (domain.VerificationToken, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, token, expires_at, used, created_at FROM verification_token WHERE token = ?", token)

	var entity domain.VerificationToken
	var expiresAt, createdAt string
	var used int
	err := row.Scan(&entity.ID, &entity.UserID, &entity.Token, &expiresAt, &used, &createdAt)
	if err == sql.ErrNoRows {
		return domain.VerificationToken{}, fmt.Errorf("verification token not found: %w", err)
	}
	if err != nil {
		return domain.VerificationToken{}, err
	}
	entity.Used = used != 0
	entity.ExpiresAt, _ = parseTime(expiresAt)
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

// InvalidateTokensForUser marks all of a user's tokens as used.
// PRE: userID is non-empty
// POST: No unused tokens remain for the user
func (s *SQLiteStore) InvalidateTokensForUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE verification_token SET used = 1 WHERE user_id = ?", userID)
	return err
}

// scanUser extracts a User from a row scanner function.
func scanUser(scan func(dest ...interface{}) error) (domain.User, error) {
	var entity domain.User
	var gymJSON, lockedUntil sql.NullString
	var createdAt string
	var verified int
	err := scan(
		&entity.ID,
		&entity.Email,
		&entity.Name,
		&entity.Role,
		&entity.Avatar,
		&entity.ApprovalStatus,
		&gymJSON,
		&verified,
		&entity.PasswordHash,
		&createdAt,
		&entity.FailedLogins,
		&lockedUntil,
	)
	if err != nil {
		return domain.User{}, err
	}
	entity.EmailVerified = verified != 0
	entity.CreatedAt, _ = parseTime(createdAt)
	if lockedUntil.Valid && lockedUntil.String != "" {
		entity.LockedUntil, _ = parseTime(lockedUntil.String)
	}
	if gymJSON.Valid && gymJSON.String != "" {
		var gym domain.GymDetails
		if err := json.Unmarshal([]byte(gymJSON.String), &gym); err == nil {
			entity.Gym = &gym
		}
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
