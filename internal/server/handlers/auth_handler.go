package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

// AccountService is the account workflow used by AuthHandler.
type AccountService interface {
	Register(ctx context.Context, in models.RegisterInput) (models.Session, error)
	Login(ctx context.Context, in models.LoginInput) (models.Session, error)
	Me(ctx context.Context, id models.Identity) (models.Account, error)
}

// AuthHandler serves registration, login and the current account.
type AuthHandler struct {
	svc    AccountService
	logger *zap.Logger
}

// NewAuthHandler constructs the HTTP handler adapter.
func NewAuthHandler(svc AccountService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{svc: svc, logger: logger}
}

// Register creates a farmer account.
func (h *AuthHandler) Register(c *gin.Context) {
	var in models.RegisterInput
	if !bindJSON(c, h.logger, &in) {
		return
	}

	session, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	var in models.LoginInput
	if !bindJSON(c, h.logger, &in) {
		return
	}

	session, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	account, err := h.svc.Me(c.Request.Context(), caller(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
