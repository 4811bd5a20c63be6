package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID keys the correlation ID in the Gin context.
const ContextKeyRequestID = "request_id"

// headerRequestID is the wire header the ID is read from and echoed on.
const headerRequestID = "X-Request-ID"

// RequestIDMiddleware tags every request with a correlation ID. An inbound
// X-Request-ID is reused so traces line up across a proxy; otherwise a
// fresh UUID is issued. The ID is echoed on the response header and lands
// in every envelope's metadata block.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}
