package types

import "time"

// StatsSnapshot:
//   totalTeams: number
//   totalAccesses: number
//   latestCreationTimestamp: string | null // RFC 3339, null with no teams
type StatsSnapshot struct {
	TotalTeams              int64      `json:"totalTeams"`
	TotalAccesses           int64      `json:"totalAccesses"`
	LatestCreationTimestamp *time.Time `json:"latestCreationTimestamp"`
}

type StatsResponse struct {
	Success bool          `json:"success"`
	Stats   StatsSnapshot `json:"stats"`
}
