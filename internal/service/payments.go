package service

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/middleware"
)

type createPaymentRequest struct {
	Recipient       string `json:"recipient"`
	TotalAmount     string `json:"total_amount"`
	NumParticipants int64  `json:"num_participants"`
	Remarks         string `json:"remarks"`
}

type contributeRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) createPayment(c *gin.Context) {
	caller := middleware.CallerAddress(c)

	var req createPaymentRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}

	// The recipient may be a registered username instead of an address.
	// Resolution happens once, here at creation time; the stored record
	// always carries the address.
	recipient := req.Recipient
	if addr, err := s.names.Resolve(c.Request.Context(), recipient); err == nil {
		recipient = addr
	}

	total, err := amount.Parse(req.TotalAmount)
	if err != nil {
		writeError(c, err)
		return
	}

	p, err := s.payments.Create(c.Request.Context(), caller, recipient, total, req.NumParticipants, req.Remarks)
	if err != nil {
		slog.Warn("createPayment rejected", "caller", caller, "error", err)
		writeError(c, err)
		return
	}

	s.metrics.PaymentsCreated.Inc()
	c.JSON(http.StatusCreated, toPaymentResponse(p))
}

func (s *Server) getPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := s.payments.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPaymentResponse(p))
}

func (s *Server) listPayments(c *gin.Context) {
	caller := middleware.CallerAddress(c)

	payments, err := s.payments.ListByAddress(c.Request.Context(), caller)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]paymentResponse, len(payments))
	for i, p := range payments {
		out[i] = toPaymentResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

func (s *Server) contributeToPayment(c *gin.Context) {
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

	p, err := s.payments.Contribute(c.Request.Context(), id, caller, amt)
	if err != nil {
		slog.Warn("contributeToPayment rejected", "payment_id", id, "caller", caller, "error", err)
		writeError(c, err)
		return
	}

	s.metrics.Contributions.Inc()
	c.JSON(http.StatusOK, toPaymentResponse(p))
}

func (s *Server) refundPayment(c *gin.Context) {
	caller := middleware.CallerAddress(c)
	id, ok := parseID(c)
	if !ok {
		return
	}

	p, err := s.payments.Refund(c.Request.Context(), id, caller)
	if err != nil {
		slog.Warn("refundPayment rejected", "payment_id", id, "caller", caller, "error", err)
		writeError(c, err)
		return
	}

	s.metrics.Refunds.Inc()
	c.JSON(http.StatusOK, toPaymentResponse(p))
}

// parseID reads the numeric :id route parameter, writing a 400 on failure.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
