package handler

import (
	"net/http"

	"github.com/uwoguessr/uwoguessr-server/internal/api/apierr"
	"github.com/uwoguessr/uwoguessr-server/internal/api/response"
	"github.com/uwoguessr/uwoguessr-server/internal/services/devicetoken"
)

// TokenHandler handles device token issuance
type TokenHandler struct {
	tokenService *devicetoken.Service
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(tokenService *devicetoken.Service) *TokenHandler {
	return &TokenHandler{
		tokenService: tokenService,
	}
}

// Issue handles POST /issue-device-token
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	token, err := h.tokenService.Issue()
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TokenResponse{Token: token})
}
