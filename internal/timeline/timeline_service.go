package timeline

import (
	"context"
	"strings"
	"time"

	timelineerrors "go-hris-leave/internal/timeline/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=timeline_service.go -destination=mock/timeline_service_mock.go -package=mock
type Service interface {
	RecordEvent(ctx context.Context, cmd RecordEventCommand) error
	ListByEntity(ctx context.Context, companyID, entityType, entityID string) ([]TimelineEventResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeline.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeline.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) RecordEvent(ctx context.Context, cmd RecordEventCommand) error {
	e, err := buildEvent(cmd)
	if err != nil {
		s.logger.Warn("record timeline event rejected", zap.Error(err))
		return err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("record timeline event failed",
			zap.String("entity_id", cmd.EntityID),
			zap.String("action", cmd.Action),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("timeline event recorded",
		zap.String("entity_type", e.EntityType),
		zap.String("entity_id", cmd.EntityID),
		zap.String("action", e.Action),
	)
	return nil
}

func (s *service) ListByEntity(ctx context.Context, companyID, entityType, entityID string) ([]TimelineEventResponse, error) {
	if _, err := uuid.Parse(entityID); err != nil {
		return nil, timelineerrors.ErrInvalidEntityID
	}
	events, err := s.repo.FindByEntity(ctx, companyID, strings.ToUpper(entityType), entityID)
	if err != nil {
		return nil, err
	}

	resp := make([]TimelineEventResponse, len(events))
	for i, e := range events {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func buildEvent(cmd RecordEventCommand) (*TimelineEvent, error) {
	companyID, err := uuid.Parse(cmd.CompanyID)
	if err != nil {
		return nil, timelineerrors.ErrInvalidCompanyID
	}
	entityID, err := uuid.Parse(cmd.EntityID)
	if err != nil {
		return nil, timelineerrors.ErrInvalidEntityID
	}
	actorID, err := uuid.Parse(cmd.ActorID)
	if err != nil {
		return nil, timelineerrors.ErrInvalidActorID
	}
	if strings.TrimSpace(cmd.Action) == "" {
		return nil, timelineerrors.ErrActionRequired
	}

	entityType := strings.ToUpper(cmd.EntityType)
	if entityType == "" {
		entityType = EntityTypeLeave
	}

	e := &TimelineEvent{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     cmd.Action,
		ActorID:    actorID,
		Message:    cmd.Message,
		CreatedAt:  time.Now().UTC(),
	}
	if target, err := uuid.Parse(cmd.TargetID); err == nil {
		e.TargetID = &target
	}
	if cmd.SourceEventID != "" {
		src := cmd.SourceEventID
		e.SourceEventID = &src
	}
	return e, nil
}

func mapToResponse(e TimelineEvent) TimelineEventResponse {
	resp := TimelineEventResponse{
		ID:         e.ID.String(),
		EntityType: e.EntityType,
		EntityID:   e.EntityID.String(),
		Action:     e.Action,
		ActorID:    e.ActorID.String(),
		Message:    e.Message,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339),
	}
	if e.TargetID != nil {
		v := e.TargetID.String()
		resp.TargetID = &v
	}
	return resp
}
