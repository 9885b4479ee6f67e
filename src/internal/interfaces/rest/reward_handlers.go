package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	rewardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/reward"
)

type createRewardRequest struct {
	Name         string `json:"name"`
	MinTierID    string `json:"minTierId"`
	Type         string `json:"type"`
	Percent      string `json:"percent"`
	Amount       string `json:"amount"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	Factor       string `json:"factor"`
	ValidityDays int    `json:"validityDays"`
}

type issueRewardRequest struct {
	RewardID string `json:"rewardId"`
}

func (s *Server) ListTiers(c *gin.Context) {
	results, err := s.listTiers.Execute(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTierResponses(results)})
}

func (s *Server) CreateReward(c *gin.Context) {
	var req createRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", err.Error()))
		return
	}

	result, err := s.createReward.Execute(c.Request.Context(), rewardapp.CreateRewardCommand{
		Name:         strings.TrimSpace(req.Name),
		MinTierID:    strings.TrimSpace(req.MinTierID),
		Type:         strings.TrimSpace(req.Type),
		Percent:      strings.TrimSpace(req.Percent),
		Amount:       strings.TrimSpace(req.Amount),
		SKU:          strings.TrimSpace(req.SKU),
		Quantity:     req.Quantity,
		Factor:       strings.TrimSpace(req.Factor),
		ValidityDays: req.ValidityDays,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toRewardResponse(result)})
}

func (s *Server) ListActiveRewards(c *gin.Context) {
	results, err := s.listRewards.Active(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]rewardResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toRewardResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// IssueReward 發放獎勵給顧客；等級不足時為 400
func (s *Server) IssueReward(c *gin.Context) {
	var req issueRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", err.Error()))
		return
	}
	if strings.TrimSpace(req.RewardID) == "" {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", "rewardId is required"))
		return
	}

	result, err := s.issueReward.Execute(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.RewardID))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toCustomerRewardResponse(result)})
}

func (s *Server) ListCustomerRewards(c *gin.Context) {
	results, err := s.listRewards.ForCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]customerRewardResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toCustomerRewardResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

func (s *Server) RedeemReward(c *gin.Context) {
	result, err := s.redeemReward.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCustomerRewardResponse(result)})
}
