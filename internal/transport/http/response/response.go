package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const StatusAllGood = "all good"

const (
	StatusRetrieveFailed = "failed to retrieve messages from the database"
	StatusSaveFailed     = "failed to save the message to the database"
	StatusInvalidPayload = "invalid request payload"
)

// ErrorBody is the client-safe description of a failure.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type FailureEnvelope struct {
	Error  ErrorBody `json:"error"`
	Status string    `json:"status"`
}

// OK writes payload with "status": "all good" added.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"status": StatusAllGood}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes a failure envelope. Every store failure is reported as 400.
func Fail(c *gin.Context, kind, message, status string) {
	c.JSON(http.StatusBadRequest, FailureEnvelope{
		Error: ErrorBody{
			Kind:    kind,
			Message: message,
		},
		Status: status,
	})
}
