// Package rest gin HTTP API：/api/v1 路由、錯誤對應與請求日誌
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	cardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/card"
	customerapp "github.com/jackyeh168/loyalty_crm/src/internal/application/customer"
	rewardapp "github.com/jackyeh168/loyalty_crm/src/internal/application/reward"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/spend"
	"github.com/jackyeh168/loyalty_crm/src/internal/application/tiers"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/logging"
	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewEngine 建立 gin engine 並掛上共用 middleware、/health 與 /metrics
func NewEngine(log *zap.Logger, m *metrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.GinMiddleware(log))
	r.Use(m.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}

// ServerParams 由 fx 注入的 use cases
type ServerParams struct {
	fx.In

	Engine *gin.Engine

	RegisterCustomer   *customerapp.RegisterCustomerUseCase
	GetCustomer        *customerapp.GetCustomerUseCase
	DeactivateCustomer *customerapp.DeactivateCustomerUseCase
	TierOverride       *customerapp.TierOverrideUseCase

	ProcessTransaction  *spend.ProcessTransactionUseCase
	RefundTransaction   *spend.RefundTransactionUseCase
	CompleteTransaction *spend.CompleteTransactionUseCase
	CancelTransaction   *spend.CancelTransactionUseCase
	Recalculator        *spend.Recalculator
	TierProgress        *spend.GetTierProgressUseCase

	IssueCard   *cardapp.IssueCardUseCase
	CardStatus  *cardapp.CardStatusUseCase
	ReplaceCard *cardapp.ReplaceCardUseCase
	GetCard     *cardapp.GetCardUseCase

	ListTiers *tiers.ListTiersUseCase

	CreateReward *rewardapp.CreateRewardUseCase
	IssueReward  *rewardapp.IssueRewardUseCase
	RedeemReward *rewardapp.RedeemRewardUseCase
	ListRewards  *rewardapp.ListRewardsUseCase
}

// Server 持有 engine 與所有 handler 需要的 use cases
type Server struct {
	engine *gin.Engine

	registerCustomer   *customerapp.RegisterCustomerUseCase
	getCustomer        *customerapp.GetCustomerUseCase
	deactivateCustomer *customerapp.DeactivateCustomerUseCase
	tierOverride       *customerapp.TierOverrideUseCase

	processTransaction  *spend.ProcessTransactionUseCase
	refundTransaction   *spend.RefundTransactionUseCase
	completeTransaction *spend.CompleteTransactionUseCase
	cancelTransaction   *spend.CancelTransactionUseCase
	recalculator        *spend.Recalculator
	tierProgress        *spend.GetTierProgressUseCase

	issueCard   *cardapp.IssueCardUseCase
	cardStatus  *cardapp.CardStatusUseCase
	replaceCard *cardapp.ReplaceCardUseCase
	getCard     *cardapp.GetCardUseCase

	listTiers *tiers.ListTiersUseCase

	createReward *rewardapp.CreateRewardUseCase
	issueReward  *rewardapp.IssueRewardUseCase
	redeemReward *rewardapp.RedeemRewardUseCase
	listRewards  *rewardapp.ListRewardsUseCase
}

// NewServer 建立 Server 並註冊 /api/v1 路由
func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:              p.Engine,
		registerCustomer:    p.RegisterCustomer,
		getCustomer:         p.GetCustomer,
		deactivateCustomer:  p.DeactivateCustomer,
		tierOverride:        p.TierOverride,
		processTransaction:  p.ProcessTransaction,
		refundTransaction:   p.RefundTransaction,
		completeTransaction: p.CompleteTransaction,
		cancelTransaction:   p.CancelTransaction,
		recalculator:        p.Recalculator,
		tierProgress:        p.TierProgress,
		issueCard:           p.IssueCard,
		cardStatus:          p.CardStatus,
		replaceCard:         p.ReplaceCard,
		getCard:             p.GetCard,
		listTiers:           p.ListTiers,
		createReward:        p.CreateReward,
		issueReward:         p.IssueReward,
		redeemReward:        p.RedeemReward,
		listRewards:         p.ListRewards,
	}

	s.registerAPIRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	customers := api.Group("/customers")
	customers.POST("", s.RegisterCustomer)
	customers.GET("/:id", s.GetCustomer)
	customers.DELETE("/:id", s.DeactivateCustomer)
	customers.GET("/:id/tier", s.GetTierProgress)
	customers.PUT("/:id/tier-override", s.OverrideTier)
	customers.DELETE("/:id/tier-override", s.ClearTierOverride)
	customers.POST("/:id/recalculate", s.RecalculateSpend)
	customers.GET("/:id/cards", s.ListCustomerCards)
	customers.POST("/:id/rewards", s.IssueReward)
	customers.GET("/:id/rewards", s.ListCustomerRewards)

	transactions := api.Group("/transactions")
	transactions.POST("", s.ProcessTransaction)
	transactions.POST("/:id/refund", s.RefundTransaction)
	transactions.POST("/:id/complete", s.CompleteTransaction)
	transactions.POST("/:id/cancel", s.CancelTransaction)

	cards := api.Group("/cards")
	cards.POST("", s.IssueCard)
	cards.POST("/replace", s.ReplaceCard)
	cards.POST("/:id/activate", s.ActivateCard)
	cards.POST("/:id/deactivate", s.DeactivateCard)
	cards.GET("/:number", s.GetCardByNumber)
	cards.GET("/nfc/:nfcId", s.GetCardByNFC)

	api.GET("/tiers", s.ListTiers)

	rewards := api.Group("/rewards")
	rewards.POST("", s.CreateReward)
	rewards.GET("", s.ListActiveRewards)

	api.POST("/customer-rewards/:id/redeem", s.RedeemReward)
}
