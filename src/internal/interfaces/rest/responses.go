package rest

import (
	"time"

	cardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/card"
	customerapp "github.com/jackyeh168/loyalty_crm/src/internal/application/customer"
	rewardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/spend"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/tiers"
)

// ===========================
// JSON 回應格式（金額一律為兩位小數字串）
// ===========================

type customerResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	TotalSpend     string    `json:"totalSpend"`
	TierID         string    `json:"tierId,omitempty"`
	TierName       string    `json:"tierName,omitempty"`
	TierOverridden bool      `json:"tierOverridden"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toCustomerResponse(r *customerapp.CustomerResult) customerResponse {
	return customerResponse{
		ID:             r.CustomerID,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		TotalSpend:     r.TotalSpend,
		TierID:         r.TierID,
		TierName:       r.TierName,
		TierOverridden: r.TierOverridden,
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
	}
}

type deactivateCustomerResponse struct {
	ID               string   `json:"id"`
	DeactivatedCards []string `json:"deactivatedCards"`
}

type tierSummaryResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	SpendThreshold string `json:"spendThreshold"`
	InviteOnly     bool   `json:"inviteOnly"`
}

func toTierSummaryResponse(t spend.TierSummary) tierSummaryResponse {
	return tierSummaryResponse{
		ID:             t.ID,
		Name:           t.Name,
		Code:           t.Code,
		SpendThreshold: t.SpendThreshold,
		InviteOnly:     t.InviteOnly,
	}
}

type tierProgressResponse struct {
	CustomerID        string               `json:"customerId"`
	CurrentTier       tierSummaryResponse  `json:"currentTier"`
	NextTier          *tierSummaryResponse `json:"nextTier"`
	TotalSpend        string               `json:"totalSpend"`
	SpendToNextTier   string               `json:"spendToNextTier"`
	PercentToNextTier string               `json:"percentToNextTier"`
	MaxTierReached    bool                 `json:"maxTierReached"`
	TierOverridden    bool                 `json:"tierOverridden"`
}

func toTierProgressResponse(r *spend.TierProgressResult) tierProgressResponse {
	resp := tierProgressResponse{
		CustomerID:        r.CustomerID,
		CurrentTier:       toTierSummaryResponse(r.CurrentTier),
		TotalSpend:        r.TotalSpend,
		SpendToNextTier:   r.SpendToNextTier,
		PercentToNextTier: r.PercentToNextTier,
		MaxTierReached:    r.MaxTierReached,
		TierOverridden:    r.TierOverridden,
	}
	if r.NextTier != nil {
		next := toTierSummaryResponse(*r.NextTier)
		resp.NextTier = &next
	}
	return resp
}

type recalculateResponse struct {
	CustomerID  string `json:"customerId"`
	TotalSpend  string `json:"totalSpend"`
	TierID      string `json:"tierId"`
	TierName    string `json:"tierName"`
	TierChanged bool   `json:"tierChanged"`
}

func toRecalculateResponse(r *spend.RecalculateResult) recalculateResponse {
	return recalculateResponse{
		CustomerID:  r.CustomerID,
		TotalSpend:  r.TotalSpend,
		TierID:      r.TierID,
		TierName:    r.TierName,
		TierChanged: r.TierChanged,
	}
}

type transactionResponse struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customerId"`
	Status      string `json:"status"`
	TotalSpend  string `json:"totalSpend"`
	TierID      string `json:"tierId"`
	TierName    string `json:"tierName"`
	TierChanged bool   `json:"tierChanged"`
}

func toTransactionResponse(r *spend.TransactionResult) transactionResponse {
	return transactionResponse{
		ID:          r.TransactionID,
		CustomerID:  r.CustomerID,
		Status:      r.Status,
		TotalSpend:  r.TotalSpend,
		TierID:      r.TierID,
		TierName:    r.TierName,
		TierChanged: r.TierChanged,
	}
}

type cardResponse struct {
	ID             string     `json:"id"`
	CardNumber     string     `json:"cardNumber"`
	NFCID          string     `json:"nfcId,omitempty"`
	CustomerID     string     `json:"customerId"`
	TierID         string     `json:"tierId,omitempty"`
	Status         string     `json:"status"`
	ActivationDate time.Time  `json:"activationDate"`
	DeactivatedAt  *time.Time `json:"deactivatedAt,omitempty"`
	ReplacedBy     string     `json:"replacedBy,omitempty"`
}

func toCardResponse(r *cardapp.CardResult) cardResponse {
	return cardResponse{
		ID:             r.CardID,
		CardNumber:     r.CardNumber,
		NFCID:          r.NFCID,
		CustomerID:     r.CustomerID,
		TierID:         r.TierID,
		Status:         r.Status,
		ActivationDate: r.ActivationDate,
		DeactivatedAt:  r.DeactivatedAt,
		ReplacedBy:     r.ReplacedBy,
	}
}

func toCardResponses(results []*cardapp.CardResult) []cardResponse {
	out := make([]cardResponse, 0, len(results))
	for _, r := range results {
		out = append(out, toCardResponse(r))
	}
	return out
}

type replaceCardResponse struct {
	OldCard cardResponse `json:"oldCard"`
	NewCard cardResponse `json:"newCard"`
}

type tierResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	SpendThreshold string `json:"spendThreshold"`
	SortOrder      int    `json:"sortOrder"`
	InviteOnly     bool   `json:"inviteOnly"`
	Active         bool   `json:"active"`
}

func toTierResponses(results []tiers.TierResult) []tierResponse {
	out := make([]tierResponse, 0, len(results))
	for _, t := range results {
		out = append(out, tierResponse{
			ID:             t.TierID,
			Name:           t.Name,
			Code:           t.Code,
			SpendThreshold: t.SpendThreshold,
			SortOrder:      t.SortOrder,
			InviteOnly:     t.InviteOnly,
			Active:         t.Active,
		})
	}
	return out
}

type rewardResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MinTierID    string `json:"minTierId"`
	Type         string `json:"type"`
	Description  string `json:"description"`
	Percent      string `json:"percent,omitempty"`
	Amount       string `json:"amount,omitempty"`
	SKU          string `json:"sku,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
	Factor       string `json:"factor,omitempty"`
	ValidityDays int    `json:"validityDays"`
	Active       bool   `json:"active"`
}

func toRewardResponse(r *rewardapp.RewardResult) rewardResponse {
	return rewardResponse{
		ID:           r.RewardID,
		Name:         r.Name,
		MinTierID:    r.MinTierID,
		Type:         r.Type,
		Description:  r.Description,
		Percent:      r.Percent,
		Amount:       r.Amount,
		SKU:          r.SKU,
		Quantity:     r.Quantity,
		Factor:       r.Factor,
		ValidityDays: r.ValidityDays,
		Active:       r.Active,
	}
}

type customerRewardResponse struct {
	ID         string     `json:"id"`
	RewardID   string     `json:"rewardId"`
	RewardName string     `json:"rewardName,omitempty"`
	CustomerID string     `json:"customerId"`
	IssuedDate time.Time  `json:"issuedDate"`
	ExpiryDate *time.Time `json:"expiryDate"`
	Redeemed   bool       `json:"redeemed"`
	RedeemedAt *time.Time `json:"redeemedAt,omitempty"`
	Expired    bool       `json:"expired"`
}

func toCustomerRewardResponse(r *rewardapp.CustomerRewardResult) customerRewardResponse {
	return customerRewardResponse{
		ID:         r.CustomerRewardID,
		RewardID:   r.RewardID,
		RewardName: r.RewardName,
		CustomerID: r.CustomerID,
		IssuedDate: r.IssuedDate,
		ExpiryDate: r.ExpiryDate,
		Redeemed:   r.Redeemed,
		RedeemedAt: r.RedeemedAt,
		Expired:    r.Expired,
	}
}
