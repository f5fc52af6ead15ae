package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hris-leave/internal/leave"
	leaveerrors "go-hris-leave/internal/leave/errors"
	"go-hris-leave/internal/leavebalance"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeLeaveService struct {
	submitFn      func(ctx context.Context, companyID, actorID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error)
	decideFn      func(ctx context.Context, adminID, adminCompanyID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
	getByIDFn     func(ctx context.Context, companyID, id string) (leave.LeaveResponse, error)
	listMineFn    func(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error)
	listPendingFn func(ctx context.Context, companyID string) ([]leave.LeaveResponse, error)
	searchFn      func(ctx context.Context, companyID string, filter leave.SearchFilter) (leave.SearchResult, error)
	balancesFn    func(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.BalanceResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, companyID, actorID string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, companyID, actorID, req)
}
func (f *fakeLeaveService) Decide(ctx context.Context, adminID, adminCompanyID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, adminID, adminCompanyID, id, req)
}
func (f *fakeLeaveService) GetByID(ctx context.Context, companyID, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeLeaveService) ListMine(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	return f.listMineFn(ctx, employeeID)
}
func (f *fakeLeaveService) ListPending(ctx context.Context, companyID string) ([]leave.LeaveResponse, error) {
	return f.listPendingFn(ctx, companyID)
}
func (f *fakeLeaveService) Search(ctx context.Context, companyID string, filter leave.SearchFilter) (leave.SearchResult, error) {
	return f.searchFn(ctx, companyID, filter)
}
func (f *fakeLeaveService) GetBalances(ctx context.Context, companyID, employeeID string, year int) ([]leavebalance.BalanceResponse, error) {
	return f.balancesFn(ctx, companyID, employeeID, year)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestLeaveHandler_Submit(t *testing.T) {
	companyID := uuid.NewString()
	actorID := uuid.NewString()
	policyID := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, cid, aid string, req leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, policyID, req.PolicyID)
				assert.Empty(t, req.EmployeeID)
				return leave.LeaveResponse{ID: uuid.NewString(), Status: leave.StatusPending, EmployeeID: aid}, nil
			},
		}

		c, w := newTestContext(http.MethodPost, "/leaves",
			`{"policy_id":"`+policyID+`","start_date":"2026-03-02","end_date":"2026-03-04","reason":"family"}`)
		c.Set("company_id", companyID)
		c.Set("employee_id", actorID)

		leave.NewHandler(svc).Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("validation error", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/leaves", `{"start_date":"2026-03-02"}`)
		c.Set("employee_id", actorID)

		leave.NewHandler(&fakeLeaveService{}).Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("policy violation", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(context.Context, string, string, leave.SubmitLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrPolicyViolation
			},
		}
		c, w := newTestContext(http.MethodPost, "/leaves",
			`{"policy_id":"`+policyID+`","start_date":"2026-03-02","end_date":"2026-03-09"}`)

		leave.NewHandler(svc).Submit(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		require.NotNil(t, env.Error)
		assert.Equal(t, leaveerrors.ErrPolicyViolation.Code, env.Error.Code)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	companyID := uuid.NewString()
	adminID := uuid.NewString()
	leaveID := uuid.NewString()

	t.Run("approve", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, cid, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, adminID, aid)
				assert.Equal(t, companyID, cid)
				assert.Equal(t, leaveID, id)
				assert.Equal(t, leave.DecisionApprove, req.Decision)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/decision", `{"decision":"APPROVE"}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}
		c.Set("company_id", companyID)
		c.Set("employee_id", adminID)

		leave.NewHandler(svc).Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown decision is rejected by binding", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/decision", `{"decision":"MAYBE"}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		leave.NewHandler(&fakeLeaveService{}).Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid state", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(context.Context, string, string, string, leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidState
			},
		}
		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/decision", `{"decision":"REJECT","rejection_reason":"no"}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		leave.NewHandler(svc).Decide(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("access denied", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(context.Context, string, string, string, leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrAccessDenied
			},
		}
		c, w := newTestContext(http.MethodPost, "/leaves/"+leaveID+"/decision", `{"decision":"APPROVE"}`)
		c.Params = gin.Params{{Key: "id", Value: leaveID}}

		leave.NewHandler(svc).Decide(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_Search(t *testing.T) {
	companyID := uuid.NewString()
	svc := &fakeLeaveService{
		searchFn: func(ctx context.Context, cid string, f leave.SearchFilter) (leave.SearchResult, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, "ana", f.EmployeeName)
			assert.Equal(t, "APPROVED", f.Status)
			assert.Equal(t, 2, f.Page)
			assert.Equal(t, 5, f.PageSize)
			return leave.SearchResult{
				Items: []leave.LeaveResponse{{ID: "a"}, {ID: "b"}},
				Total: 7,
				Page:  2,
				Size:  5,
			}, nil
		},
	}
	c, w := newTestContext(http.MethodGet, "/leaves?employee_name=ana&status=APPROVED&page=2&page_size=5", "")
	c.Set("company_id", companyID)

	leave.NewHandler(svc).Search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(7), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 5, env.Meta.PageSize)
	var items []leave.LeaveResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 2)
}

func TestLeaveHandler_Balances(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()

	t.Run("explicit year", func(t *testing.T) {
		svc := &fakeLeaveService{
			balancesFn: func(ctx context.Context, cid, eid string, year int) ([]leavebalance.BalanceResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, 2025, year)
				return []leavebalance.BalanceResponse{{PolicyName: "Annual"}}, nil
			},
		}
		c, w := newTestContext(http.MethodGet, "/employees/"+employeeID+"/leave-balances?year=2025", "")
		c.Params = gin.Params{{Key: "id", Value: employeeID}}
		c.Set("company_id", companyID)

		leave.NewHandler(svc).EmployeeBalances(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("own balances default to the current year", func(t *testing.T) {
		svc := &fakeLeaveService{
			balancesFn: func(ctx context.Context, cid, eid string, year int) ([]leavebalance.BalanceResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Positive(t, year)
				return nil, nil
			},
		}
		c, w := newTestContext(http.MethodGet, "/leaves/me/balances", "")
		c.Set("company_id", companyID)
		c.Set("employee_id", employeeID)

		leave.NewHandler(svc).MyBalances(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad year", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/leaves/me/balances?year=soon", "")
		c.Set("employee_id", employeeID)

		leave.NewHandler(&fakeLeaveService{}).MyBalances(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_Lists(t *testing.T) {
	companyID := uuid.NewString()
	employeeID := uuid.NewString()
	svc := &fakeLeaveService{
		listMineFn: func(ctx context.Context, eid string) ([]leave.LeaveResponse, error) {
			assert.Equal(t, employeeID, eid)
			return []leave.LeaveResponse{{ID: "a"}}, nil
		},
		listPendingFn: func(ctx context.Context, cid string) ([]leave.LeaveResponse, error) {
			assert.Equal(t, companyID, cid)
			return []leave.LeaveResponse{{ID: "b", Status: leave.StatusPending}}, nil
		},
		getByIDFn: func(ctx context.Context, cid, id string) (leave.LeaveResponse, error) {
			return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		},
	}
	h := leave.NewHandler(svc)

	c, w := newTestContext(http.MethodGet, "/leaves/me", "")
	c.Set("employee_id", employeeID)
	h.ListMine(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodGet, "/leaves/pending", "")
	c.Set("company_id", companyID)
	h.ListPending(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(http.MethodGet, "/leaves/x", "")
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	c.Set("company_id", companyID)
	h.GetByID(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
