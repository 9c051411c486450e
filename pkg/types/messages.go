package types

import "github.com/goccy/go-json"

// Client -> Server
// SaveTeam (POST /api/teams):
//   h: any   // heroes, required and truthy
//   t: string // title, optional
//
// The whole body is stored verbatim as the team's data.

type SaveTeamRequest struct {
	Heroes any    `json:"h"`
	Title  string `json:"t,omitempty"`
}

// Server -> Client

type SaveTeamResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// TeamResponse answers GET /api/teams/{id}. AccessCount counts this read.
type TeamResponse struct {
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data"`
	Title       string          `json:"title"`
	AccessCount int64           `json:"accessCount"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}
