package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency menahan POST ganda dengan header Idempotency-Key.
// Response sukses pertama di-cache; request identik berikutnya
// mendapat replay, bukan eksekusi ulang.
func Idempotency(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id_validated")
		if userID == "" {
			userID = c.GetString("employee_id")
		}

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		// 1. Cek cache response sebelumnya
		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached struct {
				Status int             `json:"status"`
				Body   json.RawMessage `json:"body"`
			}
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Data(cached.Status, "application/json", cached.Body)
				c.Abort()
				return
			}
		}

		// 2. Atomic lock (SetNX). Expiry pendek agar lock hilang sendiri kalau proses crash.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "Request with this idempotency key is still being processed",
			})
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capture

		c.Next()

		// 3. Simpan response sukses untuk replay, lalu lepas lock
		status := capture.Status()
		if status >= 200 && status < 300 {
			entry, err := json.Marshal(map[string]any{
				"status": status,
				"body":   json.RawMessage(capture.body.Bytes()),
			})
			if err == nil {
				rdb.Set(c.Request.Context(), cacheKey, entry, ttl)
			}
		}
		rdb.Del(c.Request.Context(), lockKey)
	}
}
