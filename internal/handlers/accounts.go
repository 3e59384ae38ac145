package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/pantry-pickup/internal/database"
	"github.com/safar/pantry-pickup/internal/models"
	"github.com/safar/pantry-pickup/internal/service"
	"github.com/safar/pantry-pickup/internal/validation"
)

// CreateAccount handles POST /accounts.
func (h *Handler) CreateAccount(c *gin.Context) {
	var req validation.CreateAccountRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	account, err := h.cfg.Accounts.CreateAccount(c.Request.Context(), service.CreateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"account": account,
	})
}

// CreateSession handles POST /sessions: verifies credentials and issues a bearer token.
func (h *Handler) CreateSession(c *gin.Context) {
	var req validation.CreateSessionRequest
	if err := validation.BindAndValidate(c, &req, h.validator); err != nil {
		return
	}

	account, err := h.cfg.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, expiresAt, err := h.cfg.Tokens.Issue(*account)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"user":      account,
		"token":     token,
		"expiresAt": expiresAt,
	})
}

func (h *Handler) CurrentSession(c *gin.Context) {
	claims := claimsFrom(c)

	account, err := h.cfg.Accounts.GetAccount(c.Request.Context(), claims.UserID)
	if errors.Is(err, database.ErrUserNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired session"})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session is valid",
		"user":    account,
	})
}
