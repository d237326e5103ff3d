package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorEnvelope is the failure shape existing clients parse; field names are
// part of the wire contract.
type ErrorEnvelope struct {
	Status int    `json:"Status"`
	Errors string `json:"Errors"`
}

func RespondError(c *gin.Context, status int, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Status: status,
		Errors: msg,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
