package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"

	"go-hris-leave/internal/employee"
	employeeerrors "go-hris-leave/internal/employee/errors"
	"go-hris-leave/internal/events"
	"go-hris-leave/internal/leave"
	leaveerrors "go-hris-leave/internal/leave/errors"
	"go-hris-leave/internal/leavebalance"
	"go-hris-leave/internal/leavepolicy"
	leavepolicyerrors "go-hris-leave/internal/leavepolicy/errors"
	"go-hris-leave/internal/notification"
	"go-hris-leave/internal/timeline"

	"github.com/google/uuid"
)

// fakeLeaveRepository keeps rows in memory. Reads hand out copies so that
// only Update changes stored state, like a real table.
type fakeLeaveRepository struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]leave.Leave
	names map[uuid.UUID]string

	findForUpdateFn func(ctx context.Context, id string) (*leave.Leave, error)
	searchFn        func(ctx context.Context, companyID string, q leave.SearchQuery) ([]leave.LeaveView, int64, error)
	updates         int
}

func newFakeLeaveRepository() *fakeLeaveRepository {
	return &fakeLeaveRepository{
		rows:  make(map[uuid.UUID]leave.Leave),
		names: make(map[uuid.UUID]string),
	}
}

func (f *fakeLeaveRepository) WithTx(*sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(_ context.Context, l *leave.Leave) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[l.ID] = *l
	return nil
}

func (f *fakeLeaveRepository) FindByIDForUpdate(ctx context.Context, id string) (*leave.Leave, error) {
	if f.findForUpdateFn != nil {
		return f.findForUpdateFn(ctx, id)
	}
	return f.find(id)
}

func (f *fakeLeaveRepository) find(id string) (*leave.Leave, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[uuid.MustParse(id)]
	if !ok {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	return &l, nil
}

func (f *fakeLeaveRepository) FindByIDAndCompany(_ context.Context, companyID, id string) (*leave.LeaveView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[uuid.MustParse(id)]
	if !ok || l.CompanyID.String() != companyID {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	return &leave.LeaveView{Leave: l, EmployeeName: f.names[l.EmployeeID]}, nil
}

func (f *fakeLeaveRepository) Update(_ context.Context, l *leave.Leave) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[l.ID] = *l
	f.updates++
	return nil
}

func (f *fakeLeaveRepository) FindByEmployee(_ context.Context, employeeID string) ([]leave.LeaveView, error) {
	return f.filter(func(l leave.Leave) bool { return l.EmployeeID.String() == employeeID }), nil
}

func (f *fakeLeaveRepository) FindPendingByCompany(_ context.Context, companyID string) ([]leave.LeaveView, error) {
	return f.filter(func(l leave.Leave) bool {
		return l.CompanyID.String() == companyID && l.Status == leave.StatusPending
	}), nil
}

func (f *fakeLeaveRepository) Search(ctx context.Context, companyID string, q leave.SearchQuery) ([]leave.LeaveView, int64, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, companyID, q)
	}
	rows := f.filter(func(l leave.Leave) bool { return l.CompanyID.String() == companyID })
	return rows, int64(len(rows)), nil
}

func (f *fakeLeaveRepository) filter(keep func(leave.Leave) bool) []leave.LeaveView {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []leave.LeaveView
	for _, l := range f.rows {
		if keep(l) {
			out = append(out, leave.LeaveView{Leave: l, EmployeeName: f.names[l.EmployeeID]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out
}

func (f *fakeLeaveRepository) status(id string) string {
	l, err := f.find(id)
	if err != nil {
		return ""
	}
	return l.Status
}

type fakeDirectory map[string]employee.Employee

func (d fakeDirectory) Resolve(_ context.Context, id string) (employee.Employee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return employee.Employee{}, employeeerrors.ErrInvalidEmployeeID
	}
	e, ok := d[id]
	if !ok {
		return employee.Employee{}, employeeerrors.ErrEmployeeNotFound
	}
	return e, nil
}

type fakePolicies struct {
	byID   map[string]leavepolicy.LeavePolicy
	onList func()
}

func newFakePolicies(policies ...leavepolicy.LeavePolicy) *fakePolicies {
	f := &fakePolicies{byID: make(map[string]leavepolicy.LeavePolicy)}
	for _, p := range policies {
		f.byID[p.ID.String()] = p
	}
	return f
}

func (f *fakePolicies) GetByID(_ context.Context, id string) (leavepolicy.LeavePolicy, error) {
	p, ok := f.byID[id]
	if !ok {
		return leavepolicy.LeavePolicy{}, leavepolicyerrors.ErrPolicyNotFound
	}
	return p, nil
}

func (f *fakePolicies) ListActiveByCompany(_ context.Context, companyID string) ([]leavepolicy.LeavePolicy, error) {
	if f.onList != nil {
		hook := f.onList
		f.onList = nil
		hook()
	}
	var out []leavepolicy.LeavePolicy
	for _, p := range f.byID {
		if p.Active && p.CompanyID.String() == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePolicies) Create(context.Context, string, leavepolicy.CreateLeavePolicyRequest) (leavepolicy.LeavePolicyResponse, error) {
	return leavepolicy.LeavePolicyResponse{}, errors.New("not used")
}

func (f *fakePolicies) GetAll(context.Context, string, bool) ([]leavepolicy.LeavePolicyResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakePolicies) Deactivate(context.Context, string, string) (leavepolicy.LeavePolicyResponse, error) {
	return leavepolicy.LeavePolicyResponse{}, errors.New("not used")
}

type recordingSink struct {
	mu     sync.Mutex
	events []events.LeaveEvent
	err    error
	txs    []*sql.Tx
}

func (s *recordingSink) WithTx(tx *sql.Tx) leave.EventSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
	return s
}

func (s *recordingSink) Publish(_ context.Context, event events.LeaveEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return s.err
}

func (s *recordingSink) ofType(eventType string) []events.LeaveEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []events.LeaveEvent
	for _, e := range s.events {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

type fakeCache struct {
	mu          sync.Mutex
	rows        map[string][]leavebalance.BalanceResponse
	sets        int
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{rows: make(map[string][]leavebalance.BalanceResponse)}
}

func (c *fakeCache) Get(_ context.Context, employeeID string, year int) ([]leavebalance.BalanceResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.rows[leavebalance.GetBalanceCacheKey(employeeID, year)]
	return rows, ok
}

func (c *fakeCache) Set(_ context.Context, employeeID string, year int, balances []leavebalance.BalanceResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.rows[leavebalance.GetBalanceCacheKey(employeeID, year)] = balances
}

func (c *fakeCache) Invalidate(_ context.Context, employeeID string, year int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	delete(c.rows, leavebalance.GetBalanceCacheKey(employeeID, year))
}

type fakeTimeline struct {
	recorded []timeline.RecordEventCommand
	err      error
}

func (f *fakeTimeline) RecordEvent(_ context.Context, cmd timeline.RecordEventCommand) error {
	f.recorded = append(f.recorded, cmd)
	return f.err
}

func (f *fakeTimeline) ListByEntity(context.Context, string, string, string) ([]timeline.TimelineEventResponse, error) {
	return nil, nil
}

type fakeNotifier struct {
	sent []notification.NotifyCommand
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, cmd notification.NotifyCommand) error {
	f.sent = append(f.sent, cmd)
	return f.err
}

func (f *fakeNotifier) ListMine(context.Context, string, bool) ([]notification.NotificationResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkRead(context.Context, string, string) error {
	return nil
}
