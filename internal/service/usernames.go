package service

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protectedpay/ledger/internal/middleware"
)

type registerUsernameRequest struct {
	Username string `json:"username"`
}

func (s *Server) registerUsername(c *gin.Context) {
	caller := middleware.CallerAddress(c)

	var req registerUsernameRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	if err := s.names.Register(c.Request.Context(), caller, req.Username); err != nil {
		slog.Warn("registerUsername rejected", "caller", caller, "username", req.Username, "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"address": caller, "username": req.Username})
}

func (s *Server) resolveUsername(c *gin.Context) {
	name := c.Param("name")

	addr, err := s.names.Resolve(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": addr, "username": name})
}

func (s *Server) reverseResolveUsername(c *gin.Context) {
	addr := c.Param("address")

	name, err := s.names.ReverseResolve(c.Request.Context(), addr)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"address": addr, "username": name})
}

func (s *Server) listTransfers(c *gin.Context) {
	caller := middleware.CallerAddress(c)

	receipts, err := s.store.ListReceiptsByAddress(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]receiptResponse, len(receipts))
	for i, r := range receipts {
		out[i] = toReceiptResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"transfers": out})
}
