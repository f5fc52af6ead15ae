package leave

import (
	"context"
	"errors"
	"fmt"

	"go-hris-leave/internal/events"
	"go-hris-leave/internal/notification"
	"go-hris-leave/internal/timeline"

	"go.uber.org/zap"
)

// SideEffects turns a lifecycle event into one timeline entry and at most one
// notification. Both writes are keyed by the event id so redelivery is harmless.
type SideEffects interface {
	Handle(ctx context.Context, event events.LeaveEvent) error
}

type sideEffects struct {
	timeline      timeline.Service
	notifications notification.Service
	logger        *zap.Logger
}

func NewSideEffects(timelineService timeline.Service, notificationService notification.Service, logger ...*zap.Logger) SideEffects {
	l := zap.L().Named("leave.side_effects")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.side_effects")
	}
	return &sideEffects{timeline: timelineService, notifications: notificationService, logger: l}
}

func (s *sideEffects) Handle(ctx context.Context, event events.LeaveEvent) error {
	var errs []error

	if err := s.timeline.RecordEvent(ctx, timeline.RecordEventCommand{
		CompanyID:     event.CompanyID,
		EntityType:    timeline.EntityTypeLeave,
		EntityID:      event.LeaveID,
		Action:        timelineAction(event),
		ActorID:       event.ActorID,
		TargetID:      event.EmployeeID,
		Message:       timelineMessage(event),
		SourceEventID: event.EventID,
	}); err != nil {
		errs = append(errs, fmt.Errorf("record timeline: %w", err))
	}

	if cmd, ok := notificationFor(event); ok {
		if err := s.notifications.Notify(ctx, cmd); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.Warn("leave side effects incomplete",
			zap.String("event_id", event.EventID),
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func timelineAction(event events.LeaveEvent) string {
	if event.EventType == events.LeaveSubmittedEventType {
		return "SUBMITTED"
	}
	if event.AutoRejected {
		return "AUTO_REJECTED"
	}
	return event.Status
}

func timelineMessage(event events.LeaveEvent) string {
	period := fmt.Sprintf("%s to %s (%s days)", event.StartDate, event.EndDate, event.TotalDays)
	switch {
	case event.EventType == events.LeaveSubmittedEventType:
		return "Leave requested for " + period
	case event.Status == StatusApproved:
		return "Leave approved for " + period
	default:
		return fmt.Sprintf("Leave rejected for %s: %s", period, event.RejectionReason)
	}
}

// notificationFor picks the recipient: the manager on submission (if any), the
// employee on decision.
func notificationFor(event events.LeaveEvent) (notification.NotifyCommand, bool) {
	cmd := notification.NotifyCommand{
		Category:      notification.CategoryLeave,
		RefID:         event.LeaveID,
		Body:          timelineMessage(event),
		SourceEventID: event.EventID,
	}

	switch event.EventType {
	case events.LeaveSubmittedEventType:
		if event.ManagerID == "" {
			return notification.NotifyCommand{}, false
		}
		cmd.RecipientID = event.ManagerID
		cmd.Title = "New leave request awaiting approval"
	case events.LeaveDecidedEventType:
		cmd.RecipientID = event.EmployeeID
		if event.Status == StatusApproved {
			cmd.Title = "Your leave request was approved"
		} else {
			cmd.Title = "Your leave request was rejected"
		}
	default:
		return notification.NotifyCommand{}, false
	}
	return cmd, true
}
