package employee

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Shivshady23/employee-payroll-system/internal/accesspolicy"
	"github.com/Shivshady23/employee-payroll-system/internal/middleware"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/apperror"
	"github.com/Shivshady23/employee-payroll-system/internal/shared/response"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

// NewHandlerWithRedis additionally caches creation responses for idempotent
// replay.
func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	principal := accesspolicy.FromGin(c)

	resp, err := h.service.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResponse(c, resp)

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	principal := accesspolicy.FromGin(c)

	employees, total, err := h.service.List(c.Request.Context(), principal, ListEmployeesQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, page, limit)
	response.Success(c, http.StatusOK, employees, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	principal := accesspolicy.FromGin(c)

	options, err := h.service.GetOptions(c.Request.Context(), principal)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, options, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	principal := accesspolicy.FromGin(c)

	if err := h.service.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// cacheIdempotentResponse stores the status and envelope of a successful
// creation under the key set by the idempotency middleware, so a retried
// request replays the same employee and credentials instead of creating a
// second record.
func (h *Handler) cacheIdempotentResponse(c *gin.Context, resp CreateEmployeeResponse) {
	if h.rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" {
		return
	}

	body, err := json.Marshal(response.ApiEnvelope{Ok: true, Data: resp})
	if err != nil {
		return
	}
	payload, err := json.Marshal(middleware.CachedResponse{
		Status: http.StatusCreated,
		Body:   body,
	})
	if err != nil {
		return
	}
	if err := h.rdb.Set(c.Request.Context(), cacheKey, payload, 24*time.Hour).Err(); err != nil {
		h.logger.Error("failed to cache idempotent response",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		h.rdb.Del(c.Request.Context(), lockKey)
	}
}
