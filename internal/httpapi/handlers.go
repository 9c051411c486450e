package httpapi

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/DoyleJ11/team-builder-backend/internal/catalog"
	"github.com/DoyleJ11/team-builder-backend/internal/errs"
	"github.com/DoyleJ11/team-builder-backend/internal/logging"
	"github.com/DoyleJ11/team-builder-backend/internal/team"
	"github.com/DoyleJ11/team-builder-backend/pkg/types"
)

// maxTeamBody caps POST /api/teams bodies.
const maxTeamBody = 1 << 20

const shellFile = "index.html"

type HeroLister interface {
	List(mode catalog.SortMode) catalog.Listing
}

type TeamService interface {
	Save(ctx context.Context, data []byte, title string) (string, error)
	Load(ctx context.Context, id string) (*team.Team, error)
	Stats(ctx context.Context) (*team.Stats, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func ListHeroes(heroes HeroLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := catalog.ParseSortMode(r.URL.Query().Get("sort"))
		writeJSON(w, r, http.StatusOK, heroes.List(mode))
	}
}

func SaveTeam(svc TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op errs.Op = "httpapi.SaveTeam"

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTeamBody))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, logger, errs.E(op, errs.InvalidInput, "request body too large"))
				return
			}
			writeError(w, r, logger, errs.E(op, errs.InvalidInput, "could not read request body"))
			return
		}

		var req types.SaveTeamRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, r, logger, errs.E(op, errs.InvalidInput, `request body must be a JSON object with an "h" field`))
			return
		}

		id, err := svc.Save(r.Context(), body, req.Title)
		if err != nil {
			writeError(w, r, logger, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, types.SaveTeamResponse{Success: true, ID: id})
	}
}

func LoadTeam(svc TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := svc.Load(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, logger, err)
			return
		}

		writeJSON(w, r, http.StatusOK, types.TeamResponse{
			Success:     true,
			Data:        json.RawMessage(t.Data),
			Title:       t.Title,
			AccessCount: t.AccessCount,
		})
	}
}

func TeamStats(svc TeamService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, r, logger, err)
			return
		}

		writeJSON(w, r, http.StatusOK, types.StatsResponse{
			Success: true,
			Stats: types.StatsSnapshot{
				TotalTeams:              stats.TotalTeams,
				TotalAccesses:           stats.TotalAccesses,
				LatestCreationTimestamp: stats.LatestCreationTimestamp,
			},
		})
	}
}

// ServeShell answers with the single page application shell. The client
// routes /team/{id}/{title} itself.
func ServeShell(views fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, views, shellFile)
	}
}

// Healthz reports 503 when the database stops answering.
func Healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(types.ErrorResponse{
			Error:     "internal server error",
			RequestID: middleware.GetReqID(r.Context()),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// writeError is the only place errors become responses. Client errors carry
// their message, anything else is logged and masked.
func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := errs.HTTPStatus(err)
	reqID := middleware.GetReqID(r.Context())

	if status >= http.StatusInternalServerError {
		logging.OrNop(logger).Error("request failed",
			zap.String(logging.FieldRequestID, reqID),
			zap.String(logging.FieldMethod, r.Method),
			zap.String(logging.FieldPath, r.URL.Path),
			zap.String("kind", errs.KindOf(err).String()),
			zap.Error(err),
		)
	}

	writeJSON(w, r, status, types.ErrorResponse{
		Success:   false,
		Error:     errs.Message(err),
		RequestID: reqID,
	})
}
