package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	redacted = "[REDACTED]"
	// MaxLoggedBody is how much of a request body the logger buffers.
	MaxLoggedBody = 64 << 10
	truncatedBody = "<truncated body>"
)

// redactBody masks every JSON field whose name mentions a password or
// invite code. Bodies that are not JSON objects are dropped.
func redactBody(body []byte) string {
	if len(bytes.TrimSpace(body)) == 0 {
		return ""
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return "<non-json body>"
	}
	for key := range fields {
		lower := strings.ToLower(key)
		if strings.Contains(lower, "password") || strings.Contains(lower, "invite") {
			fields[key] = redacted
		}
	}

	out, _ := json.Marshal(fields)
	return string(out)
}

func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var body string
		if c.ContentType() == "multipart/form-data" {
			body = "<multipart>"
		} else if c.Request.Body != nil {
			raw, _ := io.ReadAll(io.LimitReader(c.Request.Body, MaxLoggedBody+1))
			c.Request.Body = struct {
				io.Reader
				io.Closer
			}{io.MultiReader(bytes.NewReader(raw), c.Request.Body), c.Request.Body}
			if len(raw) > MaxLoggedBody {
				body = truncatedBody
			} else {
				body = redactBody(raw)
			}
		}

		c.Next()

		logrus.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"body":        body,
		}).Info("request")
	}
}
