package service

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/middleware"
)

type createPotRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"target_amount"`
	Remarks      string `json:"remarks"`
}

func (s *Server) createPot(c *gin.Context) {
	caller := middleware.CallerAddress(c)

	var req createPotRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	target, err := amount.Parse(req.TargetAmount)
	if err != nil {
		writeError(c, err)
		return
	}

	pot, err := s.pots.Create(c.Request.Context(), caller, req.Name, target, req.Remarks)
	if err != nil {
		slog.Warn("createPot rejected", "caller", caller, "error", err)
		writeError(c, err)
		return
	}

	s.metrics.PotsCreated.Inc()
	c.JSON(http.StatusCreated, toPotResponse(pot))
}

func (s *Server) getPot(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pot, err := s.pots.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPotResponse(pot))
}

func (s *Server) listPots(c *gin.Context) {
	caller := middleware.CallerAddress(c)

	pots, err := s.pots.ListByOwner(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]potResponse, len(pots))
	for i, pot := range pots {
		out[i] = toPotResponse(pot)
	}
	c.JSON(http.StatusOK, gin.H{"pots": out})
}

func (s *Server) contributeToPot(c *gin.Context) {
	caller := middleware.CallerAddress(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req contributeRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	amt, err := amount.Parse(req.Amount)
	if err != nil {
		writeError(c, err)
		return
	}

	pot, err := s.pots.Contribute(c.Request.Context(), id, caller, amt)
	if err != nil {
		slog.Warn("contributeToPot rejected", "pot_id", id, "caller", caller, "error", err)
		writeError(c, err)
		return
	}

	s.metrics.Contributions.Inc()
	c.JSON(http.StatusOK, toPotResponse(pot))
}

func (s *Server) breakPot(c *gin.Context) {
	caller := middleware.CallerAddress(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	pot, err := s.pots.Break(c.Request.Context(), id, caller)
	if err != nil {
		slog.Warn("breakPot rejected", "pot_id", id, "caller", caller, "error", err)
		writeError(c, err)
		return
	}

	s.metrics.PotsBroken.Inc()
	c.JSON(http.StatusOK, toPotResponse(pot))
}
