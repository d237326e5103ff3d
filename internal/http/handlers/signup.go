package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utavu/auth-backend/internal/http/response"
	"github.com/utavu/auth-backend/internal/platform/apierr"
	"github.com/utavu/auth-backend/internal/services"
)

type SignUpHandler struct {
	signUpService services.SignUpService
}

func NewSignUpHandler(signUpService services.SignUpService) *SignUpHandler {
	return &SignUpHandler{signUpService: signUpService}
}

// SignUpResponse field names are part of the wire contract.
type SignUpResponse struct {
	Email string `json:"Email"`
	Token string `json:"Token"`
}

func (sh *SignUpHandler) SignUp(c *gin.Context) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.IDToken == "" {
		response.RespondError(c, http.StatusBadRequest, errors.New("idToken is required"))
		return
	}

	result, err := sh.signUpService.SignUp(c.Request.Context(), req.IDToken)
	if err != nil {
		response.RespondError(c, apierr.StatusOf(err, http.StatusBadRequest), err)
		return
	}

	response.RespondOK(c, SignUpResponse{
		Email: result.Email,
		Token: result.Token,
	})
}
