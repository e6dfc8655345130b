package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
)

// Fields that may legitimately start or end with whitespace.
var trimExceptions = map[string]bool{"password": true}

// TrimStrings trims the string fields of JSON request bodies before they are
// bound, so " ReactJS " and "ReactJS" name the same sub.
func TrimStrings() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.HasPrefix(c.ContentType(), "application/json") && c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err == nil && len(body) > 0 {
				var payload map[string]interface{}
				if json.Unmarshal(body, &payload) == nil {
					for key, value := range payload {
						if s, ok := value.(string); ok && !trimExceptions[key] {
							payload[key] = strings.TrimSpace(s)
						}
					}
					if trimmed, err := json.Marshal(payload); err == nil {
						body = trimmed
					}
				}
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
				c.Request.ContentLength = int64(len(body))
			}
		}
		c.Next()
	}
}
