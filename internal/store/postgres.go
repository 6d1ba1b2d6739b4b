package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/crop-advisor/pkg/types"
)

// DefaultPoolSize is the connection cap used when none is configured.
const DefaultPoolSize = 10

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and verifies the connection.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	cfg.MaxConns = int32(poolSize) //nolint:gosec // bounded by config validation

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateProfile inserts a profile and fills in its ID and timestamps.
func (s *PostgresStore) CreateProfile(ctx context.Context, p *domain.FarmProfile) error {
	farm, err := json.Marshal(p.Farm)
	if err != nil {
		return fmt.Errorf("marshaling farm: %w", err)
	}

	args := pgx.NamedArgs{
		"name": p.Name,
		"farm": farm,
	}
	return s.pool.QueryRow(ctx, queryInsertProfile, args).Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt,
	)
}

// GetProfile retrieves a profile by ID.
func (s *PostgresStore) GetProfile(ctx context.Context, id string) (*domain.FarmProfile, error) {
	p, err := scanProfile(s.pool.QueryRow(ctx, queryGetProfile, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile %s: %w", id, err)
	}
	return p, nil
}

// ListProfiles returns one page of profiles and the total matching count.
func (s *PostgresStore) ListProfiles(
	ctx context.Context,
	q *ProfileQuery,
) ([]domain.FarmProfile, int, error) {
	if q == nil {
		q = &ProfileQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting profiles: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.FarmProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating profiles: %w", err)
	}

	return profiles, total, nil
}

// UpdateProfile replaces a profile's name and farm.
func (s *PostgresStore) UpdateProfile(ctx context.Context, p *domain.FarmProfile) error {
	farm, err := json.Marshal(p.Farm)
	if err != nil {
		return fmt.Errorf("marshaling farm: %w", err)
	}

	args := pgx.NamedArgs{
		"id":   p.ID,
		"name": p.Name,
		"farm": farm,
	}
	err = s.pool.QueryRow(ctx, queryUpdateProfile, args).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("profile %s: %w", p.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("updating profile %s: %w", p.ID, err)
	}
	return nil
}

// DeleteProfile removes a profile and its history.
func (s *PostgresStore) DeleteProfile(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, queryDeleteProfile, id)
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

// InsertHistory appends a served recommendation.
func (s *PostgresStore) InsertHistory(ctx context.Context, h *domain.HistoryEntry) error {
	result, err := json.Marshal(h.Result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	var failureKind *string
	if h.FailureKind != "" {
		failureKind = &h.FailureKind
	}

	args := pgx.NamedArgs{
		"profile_id":   h.ProfileID,
		"fingerprint":  h.Fingerprint,
		"source":       string(h.Source),
		"failure_kind": failureKind,
		"attempts":     h.Attempts,
		"result":       result,
	}
	return s.pool.QueryRow(ctx, queryInsertHistory, args).Scan(&h.ID, &h.CreatedAt)
}

// ListHistory returns a profile's most recent recommendations, newest first.
func (s *PostgresStore) ListHistory(
	ctx context.Context,
	profileID string,
	limit int,
) ([]domain.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, queryListHistory, profileID, clampLimit(limit, defaultHistoryLimit))
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			h      domain.HistoryEntry
			source string
			result []byte
		)
		if err := rows.Scan(
			&h.ID, &h.ProfileID, &h.Fingerprint, &source, &h.FailureKind,
			&h.Attempts, &result, &h.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		h.Source = domain.ResultSource(source)
		if err := json.Unmarshal(result, &h.Result); err != nil {
			return nil, fmt.Errorf("unmarshaling history result: %w", err)
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	return entries, nil
}

// PruneHistory deletes history rows created before olderThan.
func (s *PostgresStore) PruneHistory(ctx context.Context, olderThan time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx, queryPruneHistory, olderThan)
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanProfile(row pgx.Row) (*domain.FarmProfile, error) {
	var (
		p    domain.FarmProfile
		farm []byte
	)
	if err := row.Scan(&p.ID, &p.Name, &farm, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(farm, &p.Farm); err != nil {
		return nil, fmt.Errorf("unmarshaling farm: %w", err)
	}
	return &p, nil
}
