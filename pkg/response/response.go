package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the JSON shape of every non-2xx response. Detail carries a
// human-readable message; Fields is present only for payload validation
// failures.
type ErrorBody struct {
	Detail    string            `json:"detail"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error writes an error body with the given status and aborts the request.
func Error(c *gin.Context, status int, detail string, fields map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		Detail:    detail,
		Fields:    fields,
		RequestID: c.GetString("request_id"),
	})
}
