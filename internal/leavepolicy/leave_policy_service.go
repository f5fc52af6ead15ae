package leavepolicy

import (
	"context"

	leavepolicyerrors "go-hris-leave/internal/leavepolicy/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leave_policy_service.go -destination=mock/leave_policy_service_mock.go -package=mock
type Service interface {
	// GetByID returns the policy regardless of company; callers enforce isolation.
	GetByID(ctx context.Context, id string) (LeavePolicy, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]LeavePolicy, error)

	Create(ctx context.Context, companyID string, req CreateLeavePolicyRequest) (LeavePolicyResponse, error)
	GetAll(ctx context.Context, companyID string, activeOnly bool) ([]LeavePolicyResponse, error)
	Deactivate(ctx context.Context, companyID, id string) (LeavePolicyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavepolicy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavepolicy.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, id string) (LeavePolicy, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeavePolicy{}, leavepolicyerrors.ErrInvalidPolicyID
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeavePolicy{}, mapRepositoryError(err)
	}
	return *p, nil
}

func (s *service) ListActiveByCompany(ctx context.Context, companyID string) ([]LeavePolicy, error) {
	policies, err := s.repo.FindAllByCompany(ctx, companyID, true)
	if err != nil {
		s.logger.Error("list active leave policies failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return policies, nil
}

func (s *service) Create(ctx context.Context, companyID string, req CreateLeavePolicyRequest) (LeavePolicyResponse, error) {
	s.logger.Debug("create leave policy requested",
		zap.String("company_id", companyID),
		zap.String("name", req.Name),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeavePolicyResponse{}, leavepolicyerrors.ErrInvalidCompanyID
	}

	frequency := AccrualFrequency(req.AccrualFrequency)
	if frequency == "" {
		frequency = AccrualAnnually
	}
	requiresApproval := true
	if req.RequiresApproval != nil {
		requiresApproval = *req.RequiresApproval
	}

	p := &LeavePolicy{
		ID:                  uuid.New(),
		CompanyID:           companyUUID,
		Name:                req.Name,
		DefaultDaysPerYear:  req.DefaultDaysPerYear,
		CarryForwardAllowed: req.CarryForwardAllowed,
		Active:              true,
		AccrualFrequency:    frequency,
		MaxDaysPerMonth:     req.MaxDaysPerMonth,
		MaxConsecutiveDays:  req.MaxConsecutiveDays,
		RequiresApproval:    requiresApproval,
	}
	if err := p.Validate(); err != nil {
		s.logger.Warn("create leave policy validation failed", zap.Error(err))
		return LeavePolicyResponse{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create leave policy persist failed", zap.Error(err))
		return LeavePolicyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave policy success",
		zap.String("policy_id", p.ID.String()),
		zap.String("company_id", companyID),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string, activeOnly bool) ([]LeavePolicyResponse, error) {
	policies, err := s.repo.FindAllByCompany(ctx, companyID, activeOnly)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	resp := make([]LeavePolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

// Deactivate soft-deletes a policy. Balances and requests keep referencing it.
func (s *service) Deactivate(ctx context.Context, companyID, id string) (LeavePolicyResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeavePolicyResponse{}, leavepolicyerrors.ErrInvalidPolicyID
	}

	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeavePolicyResponse{}, mapRepositoryError(err)
	}
	if !p.Active {
		return mapToResponse(*p), nil
	}

	p.Active = false
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("deactivate leave policy failed", zap.String("policy_id", id), zap.Error(err))
		return LeavePolicyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave policy deactivated", zap.String("policy_id", id))
	return mapToResponse(*p), nil
}

func mapToResponse(p LeavePolicy) LeavePolicyResponse {
	return LeavePolicyResponse{
		ID:                  p.ID.String(),
		CompanyID:           p.CompanyID.String(),
		Name:                p.Name,
		DefaultDaysPerYear:  p.DefaultDaysPerYear,
		CarryForwardAllowed: p.CarryForwardAllowed,
		Active:              p.Active,
		AccrualFrequency:    string(p.AccrualFrequency),
		MaxDaysPerMonth:     p.MaxDaysPerMonth,
		MaxConsecutiveDays:  p.MaxConsecutiveDays,
		RequiresApproval:    p.RequiresApproval,
	}
}
