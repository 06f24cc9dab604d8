package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protectedpay/ledger/internal/amount"
	"github.com/protectedpay/ledger/internal/auth"
	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/models"
)

// paymentResponse is the external payment shape. Amounts are base-unit
// strings; status carries the contract's numeric code plus a label. The
// contributor ledger stays internal.
type paymentResponse struct {
	ID              int64  `json:"id"`
	Creator         string `json:"creator"`
	Recipient       string `json:"recipient"`
	TotalAmount     string `json:"total_amount"`
	AmountPerPerson string `json:"amount_per_person"`
	NumParticipants int64  `json:"num_participants"`
	AmountCollected string `json:"amount_collected"`
	Status          int    `json:"status"`
	StatusLabel     string `json:"status_label"`
	Timestamp       int64  `json:"timestamp"`
	Remarks         string `json:"remarks"`
}

func toPaymentResponse(p *models.GroupPayment) paymentResponse {
	return paymentResponse{
		ID:              p.ID,
		Creator:         p.Creator,
		Recipient:       p.Recipient,
		TotalAmount:     p.TotalAmount.String(),
		AmountPerPerson: p.AmountPerPerson.String(),
		NumParticipants: p.NumParticipants,
		AmountCollected: p.AmountCollected.String(),
		Status:          int(p.Status),
		StatusLabel:     p.Status.String(),
		Timestamp:       p.CreatedAt,
		Remarks:         p.Remarks,
	}
}

// potResponse is the external pot shape.
type potResponse struct {
	ID            int64  `json:"id"`
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Status        int    `json:"status"`
	StatusLabel   string `json:"status_label"`
	Timestamp     int64  `json:"timestamp"`
	Remarks       string `json:"remarks"`
}

func toPotResponse(p *models.SavingsPot) potResponse {
	return potResponse{
		ID:            p.ID,
		Owner:         p.Owner,
		Name:          p.Name,
		TargetAmount:  p.TargetAmount.String(),
		CurrentAmount: p.CurrentAmount.String(),
		Status:        int(p.Status),
		StatusLabel:   p.Status.String(),
		Timestamp:     p.CreatedAt,
		Remarks:       p.Remarks,
	}
}

type receiptResponse struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Timestamp int64  `json:"timestamp"`
}

func toReceiptResponse(r *models.TransferReceipt) receiptResponse {
	return receiptResponse{
		ID:        r.ID,
		From:      r.From,
		To:        r.To,
		Amount:    r.Amount.String(),
		Timestamp: r.CreatedAt,
	}
}

// writeError maps an engine error to its HTTP status. A RefundIncompleteError
// additionally reports which contributors are still unpaid.
func writeError(c *gin.Context, err error) {
	var incomplete *ledger.RefundIncompleteError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  incomplete.Error(),
			"unpaid": incomplete.Unpaid,
		})
		return
	}

	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidParticipants),
		errors.Is(err, amount.ErrInvalid),
		errors.Is(err, amount.ErrOverflow),
		errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ledger.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrAlreadyFinalized),
		errors.Is(err, ledger.ErrAlreadyBroken),
		errors.Is(err, ledger.ErrOverfunded),
		errors.Is(err, ledger.ErrDuplicateUsername),
		errors.Is(err, ledger.ErrAlreadyRegistered),
		errors.Is(err, auth.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrPayoutFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
