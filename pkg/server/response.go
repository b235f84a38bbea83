package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope codes. Zero is success.
const (
	CodeOK              = 0
	CodeNoFile          = 1001
	CodeLoadFailed      = 1002
	CodeTooLarge        = 1003
	CodeEmptyTable      = 1004
	CodeMissingCriteria = 1005
	CodeBadRequest      = 1006
	CodeNoTable         = 1007
	CodeNoResult        = 1008
	CodeNotFound        = 4004
	CodeSearchFailed    = 2001
	CodeExportFailed    = 3001
)

// Response is the envelope of every JSON response.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	successMessage(c, "success", data)
}

func successMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: message,
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeNotFound,
		Message: message,
	})
}
