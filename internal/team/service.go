// Package team saves team compositions under short share codes and serves
// them back by code.
package team

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/DoyleJ11/team-builder-backend/internal/errs"
	"github.com/DoyleJ11/team-builder-backend/internal/logging"
	"github.com/DoyleJ11/team-builder-backend/internal/metrics"
)

type Service struct {
	repo        Repository
	logger      *zap.Logger
	metrics     *metrics.Recorder
	newCode     func() (string, error)
	now         func() time.Time
	maxAttempts int
}

func NewService(repo Repository, logger *zap.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		repo:        repo,
		logger:      logging.OrNop(logger).Named("team"),
		metrics:     recorder,
		newCode:     GenerateCode,
		now:         func() time.Time { return time.Now().UTC() },
		maxAttempts: MaxSaveAttempts,
	}
}

// payload is the part of a saved team the service inspects.
type payload struct {
	Heroes any `json:"h"`
}

func (p payload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Heroes, validation.Required.Error("heroes are required")),
	)
}

// Save stores data under a freshly generated code and returns the code. data
// must be a JSON object with a non-empty "h" member.
func (s *Service) Save(ctx context.Context, data []byte, title string) (string, error) {
	const op errs.Op = "teamService.Save"

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		s.metrics.RecordTeamSave(metrics.ResultInvalid)
		return "", errs.E(op, errs.InvalidInput, "team payload must be a JSON object")
	}
	if err := p.Validate(); err != nil {
		s.metrics.RecordTeamSave(metrics.ResultInvalid)
		return "", errs.E(op, errs.InvalidInput, err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	var id string
	err := retryOnConflict(ctx, s.maxAttempts, func(attempt int) error {
		code, err := s.newCode()
		if err != nil {
			return errs.E(op, errs.Internal, err)
		}

		now := s.now()
		err = s.repo.Insert(ctx, &Team{
			ID:             code,
			Title:          title,
			Data:           data,
			CreatedAt:      now,
			LastAccessedAt: now,
		})
		if errs.KindIs(errs.Conflict, err) {
			s.metrics.RecordIDCollision()
			s.logger.Info("team id already taken, generating another",
				zap.String(logging.FieldTeamID, code),
				zap.Int(logging.FieldAttempt, attempt),
			)
		}
		if err != nil {
			return err
		}

		id = code
		return nil
	})

	switch {
	case err == nil:
	case errs.KindIs(errs.Conflict, err):
		s.metrics.RecordTeamSave(metrics.ResultExhausted)
		s.logger.Error("no free team id", zap.Int(logging.FieldAttempt, s.maxAttempts))
		return "", errs.E(op, errs.IDExhausted, err)
	default:
		s.metrics.RecordTeamSave(metrics.ResultError)
		s.logger.Error("saving team", zap.Error(err))
		return "", errs.E(op, err)
	}

	s.metrics.RecordTeamSave(metrics.ResultOK)
	s.logger.Info("team saved", zap.String(logging.FieldTeamID, id))

	return id, nil
}

// Load returns the team and records the access. AccessCount on the result is
// the ordinal of this access, so the first load reports 1.
func (s *Service) Load(ctx context.Context, id string) (*Team, error) {
	const op errs.Op = "teamService.Load"

	if !ValidCode(id) {
		s.metrics.RecordTeamLoad(metrics.ResultNotFound)
		return nil, errs.E(op, errs.NotFound, "team not found")
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		if errs.KindIs(errs.NotFound, err) {
			s.metrics.RecordTeamLoad(metrics.ResultNotFound)
		} else {
			s.metrics.RecordTeamLoad(metrics.ResultError)
		}
		return nil, errs.E(op, err)
	}

	now := s.now()
	if err := s.repo.RecordAccess(ctx, id, now); err != nil {
		s.metrics.RecordTeamLoad(metrics.ResultError)
		return nil, errs.E(op, err)
	}

	t.AccessCount++
	t.LastAccessedAt = now

	s.metrics.RecordTeamLoad(metrics.ResultOK)
	s.logger.Info("team loaded",
		zap.String(logging.FieldTeamID, id),
		zap.Int64("access_count", t.AccessCount),
	)

	return t, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	const op errs.Op = "teamService.Stats"

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, errs.E(op, err)
	}
	return stats, nil
}
