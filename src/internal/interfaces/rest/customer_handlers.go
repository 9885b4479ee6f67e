package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerapp "github.com/jackyeh168/loyalty_crm/src/internal/application/customer"
)

type registerCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type tierOverrideRequest struct {
	TierID string `json:"tierId"`
}

func (s *Server) RegisterCustomer(c *gin.Context) {
	var req registerCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", err.Error()))
		return
	}

	result, err := s.registerCustomer.Execute(c.Request.Context(), customerapp.RegisterCustomerCommand{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": toCustomerResponse(result)})
}

func (s *Server) GetCustomer(c *gin.Context) {
	result, err := s.getCustomer.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCustomerResponse(result)})
}

// DeactivateCustomer 停用顧客；交易與卡片紀錄保留
func (s *Server) DeactivateCustomer(c *gin.Context) {
	result, err := s.deactivateCustomer.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cards := result.DeactivatedCards
	if cards == nil {
		cards = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"data": deactivateCustomerResponse{
		ID:               result.CustomerID,
		DeactivatedCards: cards,
	}})
}

func (s *Server) GetTierProgress(c *gin.Context) {
	result, err := s.tierProgress.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toTierProgressResponse(result)})
}

func (s *Server) OverrideTier(c *gin.Context) {
	var req tierOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", err.Error()))
		return
	}
	if strings.TrimSpace(req.TierID) == "" {
		AbortWithError(c, ErrInvalidRequest.WithContext("reason", "tierId is required"))
		return
	}

	result, err := s.tierOverride.Override(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.TierID))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCustomerResponse(result)})
}

func (s *Server) ClearTierOverride(c *gin.Context) {
	result, err := s.tierOverride.Clear(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toCustomerResponse(result)})
}

// RecalculateSpend 重新向所有交易來源聚合累積消費
func (s *Server) RecalculateSpend(c *gin.Context) {
	result, err := s.recalculator.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": toRecalculateResponse(result)})
}
