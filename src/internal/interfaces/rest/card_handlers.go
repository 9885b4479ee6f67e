package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	cardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/card"
)

type issueCardRequest struct {
	CustomerID string `json:"customerId"`
	TierID     string `json:"tierId"`
	NFCID      string `json:"nfcId"`
	CardNumber string `json:"cardNumber"`
}

type replaceCardRequest struct {
	OldCardNumber string `json:"oldCardNumber"`
	NewCardNumber string `json:"newCardNumber"`
	NewNFCID      string `json:"newNfcId"`
}

func (s *Server) IssueCard(c *gin.Context) {
	var req issueCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", err.Error()))
		return
	}

	result, err := s.issueCard.Execute(c.Request.Context(), cardapp.IssueCardCommand{
		CustomerID: strings.TrimSpace(req.CustomerID),
		TierID:     strings.TrimSpace(req.TierID),
		NFCID:      strings.TrimSpace(req.NFCID),
		CardNumber: strings.TrimSpace(req.CardNumber),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toCardResponse(result)})
}

func (s *Server) ActivateCard(c *gin.Context) {
	result, err := s.cardStatus.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCardResponse(result)})
}

func (s *Server) DeactivateCard(c *gin.Context) {
	result, err := s.cardStatus.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCardResponse(result)})
}

func (s *Server) ReplaceCard(c *gin.Context) {
	var req replaceCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", err.Error()))
		return
	}

	result, err := s.replaceCard.Execute(c.Request.Context(), cardapp.ReplaceCardCommand{
		OldCardNumber: strings.TrimSpace(req.OldCardNumber),
		NewCardNumber: strings.TrimSpace(req.NewCardNumber),
		NewNFCID:      strings.TrimSpace(req.NewNFCID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": replaceCardResponse{
		OldCard: toCardResponse(result.OldCard),
		NewCard: toCardResponse(result.NewCard),
	}})
}

// GetCardByNumber POS 掃描卡號查詢
func (s *Server) GetCardByNumber(c *gin.Context) {
	result, err := s.getCard.ByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCardResponse(result)})
}

// GetCardByNFC NFC 感應查詢
func (s *Server) GetCardByNFC(c *gin.Context) {
	result, err := s.getCard.ByNFC(c.Request.Context(), c.Param("nfcId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCardResponse(result)})
}

func (s *Server) ListCustomerCards(c *gin.Context) {
	results, err := s.getCard.ListByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCardResponses(results)})
}
