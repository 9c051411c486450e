package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/DoyleJ11/team-builder-backend/internal/errs"
	"github.com/DoyleJ11/team-builder-backend/internal/team"
)

const pgUniqueViolation = "23505"

var _ team.Repository = (*Teams)(nil)

// Teams is the gorm-backed team.Repository.
type Teams struct {
	db *gorm.DB
}

type teamRow struct {
	ID           string         `gorm:"primaryKey"`
	Title        string         `gorm:"not null"`
	Data         datatypes.JSON `gorm:"not null"`
	CreatedAt    time.Time      `gorm:"not null"`
	AccessCount  int64          `gorm:"not null"`
	LastAccessed time.Time      `gorm:"column:last_accessed;not null"`
}

func (teamRow) TableName() string { return "teams" }

func rowFromTeam(t *team.Team) teamRow {
	return teamRow{
		ID:           t.ID,
		Title:        t.Title,
		Data:         datatypes.JSON(t.Data),
		CreatedAt:    t.CreatedAt,
		AccessCount:  t.AccessCount,
		LastAccessed: t.LastAccessedAt,
	}
}

func (r teamRow) toTeam() *team.Team {
	return &team.Team{
		ID:             r.ID,
		Title:          r.Title,
		Data:           []byte(r.Data),
		CreatedAt:      r.CreatedAt,
		AccessCount:    r.AccessCount,
		LastAccessedAt: r.LastAccessed,
	}
}

// Insert creates the row. An existing id is reported as errs.Conflict and the
// stored row is left untouched.
func (s *Teams) Insert(ctx context.Context, t *team.Team) error {
	const op errs.Op = "teamStore.Insert"

	row := rowFromTeam(t)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			return errs.E(op, errs.Conflict, fmt.Errorf("team id %s already exists", t.ID))
		}
		return errs.E(op, errs.Store, err)
	}
	return nil
}

func (s *Teams) Get(ctx context.Context, id string) (*team.Team, error) {
	const op errs.Op = "teamStore.Get"

	var row teamRow
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errs.E(op, errs.NotFound, "team not found")
	case err != nil:
		return nil, errs.E(op, errs.Store, err)
	}
	return row.toTeam(), nil
}

// RecordAccess bumps the counter in a single statement so concurrent loads
// never lose an increment.
func (s *Teams) RecordAccess(ctx context.Context, id string, at time.Time) error {
	const op errs.Op = "teamStore.RecordAccess"

	res := s.db.WithContext(ctx).
		Model(&teamRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"access_count":  gorm.Expr("access_count + 1"),
			"last_accessed": at,
		})
	if res.Error != nil {
		return errs.E(op, errs.Store, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.E(op, errs.NotFound, "team not found")
	}
	return nil
}

func (s *Teams) Stats(ctx context.Context) (*team.Stats, error) {
	const op errs.Op = "teamStore.Stats"

	db := s.db.WithContext(ctx)

	var agg struct {
		TotalTeams    int64
		TotalAccesses int64
	}
	err := db.Model(&teamRow{}).
		Select("COUNT(*) AS total_teams, COALESCE(SUM(access_count), 0) AS total_accesses").
		Scan(&agg).Error
	if err != nil {
		return nil, errs.E(op, errs.Store, err)
	}

	stats := &team.Stats{
		TotalTeams:    agg.TotalTeams,
		TotalAccesses: agg.TotalAccesses,
	}

	// Read the newest row rather than MAX(created_at): sqlite hands aggregates
	// back as text, losing the column's time type.
	var latest teamRow
	err = db.Select("created_at").Order("created_at DESC").Take(&latest).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, errs.E(op, errs.Store, err)
	default:
		created := latest.CreatedAt
		stats.LatestCreationTimestamp = &created
	}

	return stats, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}

	return false
}
