package api

import "github.com/gin-gonic/gin"

// Application status codes carried inside the response envelope, independent of
// the HTTP status. Zero means success; non-zero values identify the failure
// class to API clients.
const (
	CodeSuccess        = 0
	CodeFailure        = 102
	CodeBadCredentials = 103
	CodeUploadFailure  = 105
	CodeBadToken       = 108
)

// Response is the envelope every endpoint returns.
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(200, Response{Status: CodeSuccess, Message: message, Data: data})
}

func Created(c *gin.Context, message string) {
	c.JSON(201, Response{Status: CodeSuccess, Message: message, Data: nil})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, Response{Status: code, Message: message, Data: nil})
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
