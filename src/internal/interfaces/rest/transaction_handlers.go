package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/spend"
)

// amount 以字串傳遞，避免浮點誤差
type processTransactionRequest struct {
	CustomerID  string     `json:"customerId"`
	Amount      string     `json:"amount"`
	Source      string     `json:"source"`
	ReferenceID string     `json:"referenceId"`
	Status      string     `json:"status"`
	OccurredAt  *time.Time `json:"occurredAt"`
}

func (s *Server) ProcessTransaction(c *gin.Context) {
	var req processTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", err.Error()))
		return
	}

	cmd := spend.ProcessTransactionCommand{
		CustomerID:  strings.TrimSpace(req.CustomerID),
		Amount:      strings.TrimSpace(req.Amount),
		Source:      strings.TrimSpace(req.Source),
		ReferenceID: strings.TrimSpace(req.ReferenceID),
		Status:      strings.TrimSpace(req.Status),
	}
	if req.OccurredAt != nil {
		cmd.OccurredAt = *req.OccurredAt
	}

	result, err := s.processTransaction.Execute(c.Request.Context(), cmd)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toTransactionResponse(result)})
}

func (s *Server) RefundTransaction(c *gin.Context) {
	s.changeTransactionStatus(c, s.refundTransaction.Execute)
}

// CompleteTransaction pending → completed，開始計入累積消費
func (s *Server) CompleteTransaction(c *gin.Context) {
	s.changeTransactionStatus(c, s.completeTransaction.Execute)
}

// CancelTransaction pending → cancelled
func (s *Server) CancelTransaction(c *gin.Context) {
	s.changeTransactionStatus(c, s.cancelTransaction.Execute)
}

func (s *Server) changeTransactionStatus(c *gin.Context, execute func(context.Context, string) (*spend.TransactionResult, error)) {
	result, err := execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTransactionResponse(result)})
}
