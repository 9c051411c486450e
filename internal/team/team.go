package team

import (
	"context"
	"time"
)

// DefaultTitle is stored when a team is saved without one.
const DefaultTitle = "Untitled Team"

// Team is a saved composition. Data is the client payload, kept verbatim.
type Team struct {
	ID             string
	Title          string
	Data           []byte
	CreatedAt      time.Time
	AccessCount    int64
	LastAccessedAt time.Time
}

type Stats struct {
	TotalTeams              int64      `json:"totalTeams"`
	TotalAccesses           int64      `json:"totalAccesses"`
	LatestCreationTimestamp *time.Time `json:"latestCreationTimestamp"`
}

// Repository persists teams. Insert must report an existing id with an
// errs.Conflict error and leave the stored row untouched.
type Repository interface {
	Insert(ctx context.Context, t *Team) error
	Get(ctx context.Context, id string) (*Team, error)
	RecordAccess(ctx context.Context, id string, at time.Time) error
	Stats(ctx context.Context) (*Stats, error)
}
