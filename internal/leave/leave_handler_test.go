package leave_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attendly/internal/leave"
	leaveerrors "go-attendly/internal/leave/errors"
	"go-attendly/internal/leave/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newLeaveRouter(svc leave.Service, employeeID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := leave.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("employee_id", employeeID)
		c.Set("role", role)
		c.Next()
	})
	r.POST("/leaves", h.Create)
	r.GET("/leaves", h.GetAll)
	r.POST("/leaves/:id/approve", h.Approve)
	return r
}

func TestHandler_Create_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	employeeID := "emp-1"
	svc.EXPECT().
		Create(gomock.Any(), employeeID, leave.CreateLeaveRequest{
			LeaveType: "VACATION",
			StartDate: "2025-07-07",
			EndDate:   "2025-07-11",
			Reason:    "family trip",
		}).
		Return(leave.LeaveResponse{ID: "leave-1", Status: leave.StatusPending}, nil)

	r := newLeaveRouter(svc, employeeID, "EMPLOYEE")

	body := `{"leave_type":"VACATION","start_date":"2025-07-07","end_date":"2025-07-11","reason":"family trip"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Ok   bool                `json:"ok"`
		Data leave.LeaveResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Ok)
	assert.Equal(t, "leave-1", envelope.Data.ID)
}

func TestHandler_Create_OverlapConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap)

	r := newLeaveRouter(svc, "emp-1", "EMPLOYEE")

	body := `{"leave_type":"SICK","start_date":"2025-07-07","end_date":"2025-07-08","reason":"flu"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestHandler_Create_MissingFieldsRejectedBeforeService(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	// Tidak ada EXPECT: request invalid berhenti di binding

	r := newLeaveRouter(svc, "emp-1", "EMPLOYEE")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(`{"leave_type":"SICK"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetAll_AdminScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().
		GetAll(gomock.Any(), "admin-1", true).
		Return([]leave.LeaveResponse{{ID: "leave-1"}, {ID: "leave-2"}}, nil)

	r := newLeaveRouter(svc, "admin-1", "ADMIN")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leaves?page=1&page_size=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []leave.LeaveResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 1)
	assert.Equal(t, int64(2), envelope.Meta.Total)
}

func TestHandler_Approve_EmptyBodyAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	svc.EXPECT().
		Approve(gomock.Any(), "admin-1", "leave-1", gomock.Nil()).
		Return(leave.LeaveResponse{ID: "leave-1", Status: leave.StatusApproved}, nil)

	r := newLeaveRouter(svc, "admin-1", "ADMIN")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves/leave-1/approve", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), leave.StatusApproved)
}
