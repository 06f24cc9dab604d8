package service

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protectedpay/ledger/internal/auth"
)

type credentialsRequest struct {
	Address  string `json:"address"`
	Password string `json:"password"`
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address required"})
		return
	}

	account, err := s.authn.Register(c.Request.Context(), req.Address, req.Password)
	if err != nil {
		slog.Warn("Registration failed", "address", req.Address, "error", err)
		writeError(c, err)
		return
	}

	token, err := s.jwt.Generate(account.Address)
	if err != nil {
		slog.Error("Failed to generate token", "address", account.Address, "error", err)
		writeError(c, err)
		return
	}

	slog.Info("Account registered", "address", account.Address)
	c.JSON(http.StatusCreated, gin.H{"address": account.Address, "token": token})
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	if req.Address == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address and password required"})
		return
	}

	account, err := s.authn.Authenticate(c.Request.Context(), req.Address, req.Password)
	if err != nil {
		slog.Warn("Login failed", "address", req.Address, "error", err)
		writeError(c, auth.ErrInvalidCredentials)
		return
	}

	token, err := s.jwt.Generate(account.Address)
	if err != nil {
		slog.Error("Failed to generate token", "address", account.Address, "error", err)
		writeError(c, err)
		return
	}

	slog.Info("Login ok", "address", account.Address)
	c.JSON(http.StatusOK, gin.H{"address": account.Address, "token": token})
}
