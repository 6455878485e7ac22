package calendar

import (
	"net/http"
	"strconv"
	"strings"

	"go-attendly/internal/shared/apperror"
	"go-attendly/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func isAdmin(c *gin.Context) bool {
	return strings.ToUpper(strings.TrimSpace(c.GetString("role"))) == "ADMIN"
}

// GET /calendar/day?date=2025-01-26&employee_id=...
func (h *Handler) GetDay(c *gin.Context) {
	resp, err := h.service.GetDayStatus(
		c.Request.Context(),
		getActorID(c),
		isAdmin(c),
		c.Query("employee_id"),
		c.Query("date"),
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// GET /calendar/month?year=2025&month=1&employee_id=...
func (h *Handler) GetMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "year must be a number", nil)
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "month must be a number", nil)
		return
	}

	resp, err := h.service.GetMonth(
		c.Request.Context(),
		getActorID(c),
		isAdmin(c),
		c.Query("employee_id"),
		year, month,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
