package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Yuvraj13742/dodo-payments/internal/apperr"
	"github.com/Yuvraj13742/dodo-payments/internal/logger"
)

// Response is the envelope every endpoint answers with. The HTTP layer
// maps error codes to status codes; clients branch on Code.
type Response struct {
	Status  string      `json:"status" example:"success"`
	Code    string      `json:"code,omitempty" example:"NOT_FOUND"`
	Message string      `json:"message,omitempty" example:"account not found"`
	Data    interface{} `json:"data,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Fail writes the structured error envelope. Internal causes are logged
// here and never echoed to the client.
func Fail(c *gin.Context, err error) {
	ae := apperr.From(err)
	if ae.Err != nil {
		logger.Error("request failed",
			"code", string(ae.Code),
			"message", ae.Message,
			"error", ae.Err,
			"path", c.FullPath(),
		)
	}
	c.JSON(apperr.HTTPStatus(ae.Code), Response{
		Status:  "error",
		Code:    string(ae.Code),
		Message: ae.Message,
	})
}
