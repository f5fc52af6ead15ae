package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/events"
	leaveerrors "go-hris-leave/internal/leave/errors"
	"go-hris-leave/internal/leavebalance"
	leavebalanceerrors "go-hris-leave/internal/leavebalance/errors"
	"go-hris-leave/internal/leavepolicy"
	leavepolicyerrors "go-hris-leave/internal/leavepolicy/errors"
	"go-hris-leave/internal/shared/apperror"
	"go-hris-leave/internal/shared/dbtx"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	// Submit creates a PENDING request. The balance is checked but not reserved.
	Submit(ctx context.Context, companyID, actorID string, req SubmitLeaveRequest) (LeaveResponse, error)
	// Decide moves a PENDING request to a terminal state. An approval that the
	// balance can no longer cover ends REJECTED with AutoRejected set.
	Decide(ctx context.Context, adminID, adminCompanyID, id string, req DecideLeaveRequest) (LeaveResponse, error)

	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	ListPending(ctx context.Context, companyID string) ([]LeaveResponse, error)
	Search(ctx context.Context, companyID string, filter SearchFilter) (SearchResult, error)
	GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.BalanceResponse, error)
}

// Dependencies are the collaborators the service reads from and writes to.
// Cache, Events and Metrics are optional.
type Dependencies struct {
	Employees employee.Directory
	Policies  leavepolicy.Service
	Ledger    leavebalance.Ledger
	Cache     leavebalance.Cache
	Events    EventSink
	Metrics   *Metrics
}

type Options struct {
	Tx             dbtx.Options
	BusyRetryDelay time.Duration
}

type service struct {
	db     *sql.DB
	repo   Repository
	deps   Dependencies
	opts   Options
	sf     *singleflight.Group
	gens   *cacheGenerations
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if deps.Cache == nil {
		deps.Cache = leavebalance.NewCache(nil, 0)
	}
	return &service{db: db, repo: repo, deps: deps, opts: opts, sf: &singleflight.Group{}, gens: newCacheGenerations(), logger: l}
}

func (s *service) Submit(ctx context.Context, companyID, actorID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	resp, err := s.submit(ctx, companyID, actorID, req)
	if err != nil {
		s.deps.Metrics.observeSubmission(apperror.ToHTTP(err).Code)
		return LeaveResponse{}, err
	}
	s.deps.Metrics.observeSubmission("accepted")
	return resp, nil
}

func (s *service) submit(ctx context.Context, companyID, actorID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("policy_id", req.PolicyID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actorID
	}
	if _, err := uuid.Parse(req.PolicyID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidPolicyID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	empl, err := s.deps.Employees.Resolve(ctx, employeeID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if companyID != "" && empl.CompanyID.String() != companyID {
		s.logger.Warn("submit leave for employee of another company",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
		)
		return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
	}
	policy, err := s.deps.Policies.GetByID(ctx, req.PolicyID)
	if err != nil {
		return LeaveResponse{}, err
	}

	if policy.CompanyID != empl.CompanyID {
		s.logger.Warn("submit leave cross organization policy",
			zap.String("employee_company_id", empl.CompanyID.String()),
			zap.String("policy_company_id", policy.CompanyID.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrCrossOrgPolicy
	}
	if !policy.Active {
		return LeaveResponse{}, leavepolicyerrors.ErrPolicyNotFound
	}

	days := DaysRequested(startDate, endDate)
	if !days.IsPositive() {
		return LeaveResponse{}, leaveerrors.ErrInvalidRange
	}
	if policy.ExceedsConsecutiveLimit(days) {
		s.logger.Warn("submit leave exceeds consecutive limit",
			zap.String("policy_id", req.PolicyID),
			zap.String("days", days.String()),
			zap.Intp("max_consecutive_days", policy.MaxConsecutiveDays),
		)
		return LeaveResponse{}, leaveerrors.ErrPolicyViolation
	}

	tx, err := dbtx.Begin(ctx, s.db, s.opts.Tx)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	key := leavebalance.BalanceKey{EmployeeID: empl.ID, PolicyID: policy.ID, Year: startDate.Year()}
	balance, err := s.deps.Ledger.WithTx(tx).GetOrCreate(ctx, key, policy.DefaultDaysPerYear)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !balance.HasAtLeast(days) {
		s.logger.Info("submit leave refused by balance",
			zap.String("employee_id", employeeID),
			zap.String("remaining", balance.RemainingDays.String()),
			zap.String("requested", days.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	l := &Leave{
		ID:         uuid.New(),
		CompanyID:  empl.CompanyID,
		EmployeeID: empl.ID,
		PolicyID:   policy.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  days,
		Reason:     req.Reason,
		Status:     StatusPending,
		CreatedBy:  actorUUID,
	}
	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if err := s.record(ctx, tx, newLeaveEvent(events.LeaveSubmittedEventType, *l, actorID, empl.ManagerID)); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}
	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", employeeID),
		zap.String("days", days.String()),
	)

	return mapToResponse(LeaveView{Leave: *l, EmployeeName: empl.FullName}), nil
}

func (s *service) Decide(ctx context.Context, adminID, adminCompanyID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("admin_id", adminID),
		zap.String("decision", req.Decision),
	)

	adminUUID, err := uuid.Parse(adminID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	target, err := targetStatus(req.Decision)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.decideOnce(ctx, adminUUID, adminCompanyID, id, target, req.RejectionReason)
	if errors.Is(err, apperror.ErrBusy) {
		s.deps.Metrics.observeBusyRetry()
		s.logger.Warn("decide leave busy, retrying once",
			zap.String("leave_id", id),
			zap.Duration("delay", s.opts.BusyRetryDelay),
		)
		if waitErr := wait(ctx, s.opts.BusyRetryDelay); waitErr != nil {
			return LeaveResponse{}, err
		}
		l, err = s.decideOnce(ctx, adminUUID, adminCompanyID, id, target, req.RejectionReason)
	}
	if err != nil {
		return LeaveResponse{}, err
	}

	s.deps.Metrics.observeDecision(l)
	s.logger.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.Bool("auto_rejected", l.AutoRejected),
	)

	if l.Status == StatusApproved {
		s.gens.bump(leavebalance.GetBalanceCacheKey(l.EmployeeID.String(), l.BalanceYear()))
		s.deps.Cache.Invalidate(ctx, l.EmployeeID.String(), l.BalanceYear())
	}
	return mapToResponse(LeaveView{Leave: l}), nil
}

// decideOnce runs one decision attempt in its own transaction. The request row
// lock orders concurrent decisions on the same request.
func (s *service) decideOnce(ctx context.Context, adminID uuid.UUID, adminCompanyID, id, target, reason string) (Leave, error) {
	tx, err := dbtx.Begin(ctx, s.db, s.opts.Tx)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return Leave{}, mapRepositoryError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		return Leave{}, mapRepositoryError(err)
	}
	if !CanTransition(l.Status, target) {
		s.logger.Warn("decide leave invalid state",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", target),
		)
		return Leave{}, leaveerrors.ErrInvalidState
	}
	if l.CompanyID.String() != adminCompanyID {
		s.logger.Warn("decide leave access denied",
			zap.String("leave_id", id),
			zap.String("admin_company_id", adminCompanyID),
		)
		return Leave{}, leaveerrors.ErrAccessDenied
	}

	switch target {
	case StatusRejected:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return Leave{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.Status = StatusRejected
		l.RejectionReason = &reason
	case StatusApproved:
		err := s.debit(ctx, tx, l)
		switch {
		case errors.Is(err, leavebalanceerrors.ErrInsufficientBalance):
			s.logger.Info("approval converted to rejection",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			autoReason := AutoRejectReason
			l.Status = StatusRejected
			l.RejectionReason = &autoReason
			l.AutoRejected = true
		case err != nil:
			return Leave{}, err
		default:
			l.Status = StatusApproved
			l.RejectionReason = nil
		}
	}

	now := time.Now().UTC()
	l.ApprovedBy = &adminID
	l.DecidedAt = &now

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return Leave{}, mapRepositoryError(err)
	}
	if err := s.record(ctx, tx, newLeaveEvent(events.LeaveDecidedEventType, *l, adminID.String(), nil)); err != nil {
		return Leave{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return Leave{}, mapRepositoryError(err)
	}
	return *l, nil
}

// debit charges the request to the balance row it was submitted against.
func (s *service) debit(ctx context.Context, tx *sql.Tx, l *Leave) error {
	policy, err := s.deps.Policies.GetByID(ctx, l.PolicyID.String())
	if err != nil {
		return err
	}

	ledger := s.deps.Ledger.WithTx(tx)
	key := leavebalance.BalanceKey{EmployeeID: l.EmployeeID, PolicyID: l.PolicyID, Year: l.BalanceYear()}
	balance, err := ledger.GetOrCreate(ctx, key, policy.DefaultDaysPerYear)
	if err != nil {
		return err
	}
	_, err = ledger.TryDebit(ctx, balance.ID, DaysRequested(l.StartDate, l.EndDate))
	return err
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	v, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*v), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) ListPending(ctx context.Context, companyID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, leaveerrors.ErrInvalidCompanyID
	}
	rows, err := s.repo.FindPendingByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) Search(ctx context.Context, companyID string, filter SearchFilter) (SearchResult, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return SearchResult{}, leaveerrors.ErrInvalidCompanyID
	}
	q, page, size, err := buildSearchQuery(filter)
	if err != nil {
		return SearchResult{}, err
	}

	rows, total, err := s.repo.Search(ctx, companyID, q)
	if err != nil {
		s.logger.Error("search leaves failed", zap.String("company_id", companyID), zap.Error(err))
		return SearchResult{}, mapRepositoryError(err)
	}
	return SearchResult{Items: mapToListResponse(rows), Total: total, Page: page, Size: size}, nil
}

func (s *service) GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.BalanceResponse, error) {
	if year < 1 || year > 9999 {
		return nil, leaveerrors.ErrInvalidYear
	}
	empl, err := s.deps.Employees.Resolve(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if companyID != "" && empl.CompanyID.String() != companyID {
		return nil, leaveerrors.ErrEmployeeNotInCompany
	}

	if cached, ok := s.deps.Cache.Get(ctx, employeeID, year); ok {
		return cached, nil
	}

	cacheKey := leavebalance.GetBalanceCacheKey(employeeID, year)
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		gen := s.gens.current(cacheKey)
		resp, err := s.loadBalances(ctx, empl, year)
		if err != nil {
			return nil, err
		}
		// An approval that landed while loading may not be in resp.
		if s.gens.current(cacheKey) == gen {
			s.deps.Cache.Set(ctx, employeeID, year, resp)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]leavebalance.BalanceResponse), nil
}

// loadBalances materialises a balance row for every active policy of the
// employee's company and keeps rows the employee already holds under
// policies deactivated since.
func (s *service) loadBalances(ctx context.Context, empl employee.Employee, year int) ([]leavebalance.BalanceResponse, error) {
	policies, err := s.deps.Policies.ListActiveByCompany(ctx, empl.CompanyID.String())
	if err != nil {
		return nil, err
	}

	tx, err := dbtx.Begin(ctx, s.db, s.opts.Tx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	defer tx.Rollback()

	ledger := s.deps.Ledger.WithTx(tx)
	existing, err := ledger.ListByEmployeeYear(ctx, empl.ID, year)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(policies)+len(existing))
	resp := make([]leavebalance.BalanceResponse, 0, len(policies)+len(existing))
	for _, p := range policies {
		key := leavebalance.BalanceKey{EmployeeID: empl.ID, PolicyID: p.ID, Year: year}
		b, err := ledger.GetOrCreate(ctx, key, p.DefaultDaysPerYear)
		if err != nil {
			return nil, fmt.Errorf("balance for policy %s: %w", p.ID, err)
		}
		seen[p.ID] = true
		resp = append(resp, leavebalance.ToResponse(b, p.Name))
	}
	for _, b := range existing {
		if seen[b.PolicyID] {
			continue
		}
		p, err := s.deps.Policies.GetByID(ctx, b.PolicyID.String())
		if err != nil {
			return nil, fmt.Errorf("policy of balance %s: %w", b.ID, err)
		}
		seen[b.PolicyID] = true
		resp = append(resp, leavebalance.ToResponse(b, p.Name))
	}

	if err := tx.Commit(); err != nil {
		return nil, mapRepositoryError(err)
	}

	sort.SliceStable(resp, func(i, j int) bool { return resp[i].PolicyName < resp[j].PolicyName })
	return resp, nil
}

// record writes the event in tx, so the relay sees it exactly when the leave
// change commits.
func (s *service) record(ctx context.Context, tx *sql.Tx, event events.LeaveEvent) error {
	if s.deps.Events == nil {
		return nil
	}
	if err := s.deps.Events.WithTx(tx).Publish(ctx, event); err != nil {
		s.logger.Error("record leave event failed",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	return nil
}

func buildSearchQuery(f SearchFilter) (SearchQuery, int, int, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	q := SearchQuery{
		EmployeeName: strings.TrimSpace(f.EmployeeName),
		Status:       strings.ToUpper(strings.TrimSpace(f.Status)),
		PolicyID:     f.PolicyID,
		Limit:        size,
		Offset:       (page - 1) * size,
	}
	if q.Status != "" && !IsValidStatus(q.Status) {
		return SearchQuery{}, 0, 0, leaveerrors.ErrInvalidStatusFilter
	}
	if q.PolicyID != "" {
		if _, err := uuid.Parse(q.PolicyID); err != nil {
			return SearchQuery{}, 0, 0, leaveerrors.ErrInvalidPolicyID
		}
	}
	if f.From != "" {
		from, err := parseDate(f.From)
		if err != nil {
			return SearchQuery{}, 0, 0, err
		}
		q.From = &from
	}
	if f.To != "" {
		to, err := parseDate(f.To)
		if err != nil {
			return SearchQuery{}, 0, 0, err
		}
		q.To = &to
	}
	return q, page, size, nil
}

// cacheGenerations counts approvals per balances cache key so a load that
// overlapped one does not write its snapshot back.
type cacheGenerations struct {
	mu  sync.Mutex
	gen map[string]uint64
}

func newCacheGenerations() *cacheGenerations {
	return &cacheGenerations{gen: make(map[string]uint64)}
}

func (g *cacheGenerations) current(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen[key]
}

func (g *cacheGenerations) bump(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen[key]++
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func mapToResponse(v LeaveView) LeaveResponse {
	l := v.Leave
	resp := LeaveResponse{
		ID:              l.ID.String(),
		CompanyID:       l.CompanyID.String(),
		EmployeeID:      l.EmployeeID.String(),
		EmployeeName:    v.EmployeeName,
		PolicyID:        l.PolicyID.String(),
		StartDate:       l.StartDate.Format(dateLayout),
		EndDate:         l.EndDate.Format(dateLayout),
		TotalDays:       l.TotalDays,
		Reason:          l.Reason,
		Status:          l.Status,
		CreatedBy:       l.CreatedBy.String(),
		RejectionReason: l.RejectionReason,
		AutoRejected:    l.AutoRejected,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.ApprovedBy != nil {
		id := l.ApprovedBy.String()
		resp.ApprovedBy = &id
	}
	if l.DecidedAt != nil {
		at := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &at
	}
	return resp
}

func mapToListResponse(rows []LeaveView) []LeaveResponse {
	resp := make([]LeaveResponse, len(rows))
	for i, v := range rows {
		resp[i] = mapToResponse(v)
	}
	return resp
}
