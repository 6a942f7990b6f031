package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	t.Cleanup(func() { rdb.Close() })

	handlerRan := false
	r := gin.New()
	r.POST("/employees", Idempotency(rdb), func(c *gin.Context) {
		handlerRan = true
		c.JSON(http.StatusCreated, gin.H{"created": true})
	})
	return r, mock, &handlerRan
}

func TestIdempotency(t *testing.T) {
	t.Run("passes through without a key", func(t *testing.T) {
		r, mock, handlerRan := idempotencyRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("{}"))
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, *handlerRan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replays the cached status and body verbatim", func(t *testing.T) {
		r, mock, handlerRan := idempotencyRouter(t)

		cached, err := json.Marshal(CachedResponse{
			Status: http.StatusCreated,
			Body:   json.RawMessage(`{"ok":true,"data":{"employee_code":"1000"}}`),
		})
		require.NoError(t, err)

		cacheKey := "idemp:/employees::retry-1"
		mock.ExpectGet(cacheKey).SetVal(string(cached))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "retry-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.False(t, *handlerRan, "cached replay must not reach the handler")
		assert.JSONEq(t, `{"ok":true,"data":{"employee_code":"1000"}}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a duplicate still in flight", func(t *testing.T) {
		r, mock, handlerRan := idempotencyRouter(t)

		cacheKey := "idemp:/employees::retry-2"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "retry-2")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, *handlerRan)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first attempt acquires the lock and proceeds", func(t *testing.T) {
		r, mock, handlerRan := idempotencyRouter(t)

		cacheKey := "idemp:/employees::retry-3"
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "retry-3")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, *handlerRan)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
