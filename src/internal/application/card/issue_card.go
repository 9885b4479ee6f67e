package card

import (
	"context"
	"strings"

	"github.com/jackyeh168/loyalty_crm/src/internal/application/events"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"go.uber.org/zap"
)

// ===========================
// IssueCard Use Case
// ===========================

// IssueCardCommand 發卡指令（Input DTO）
type IssueCardCommand struct {
	CustomerID string
	TierID     string // 空值時使用顧客目前的等級
	NFCID      string // 可為空
	CardNumber string // 預先印製的卡號；空值時自動產生
}

// IssueCardUseCase 為顧客發行新卡
//
// 業務規則：
// 1. 顧客必須為啟用狀態
// 2. 卡號自動產生時最多嘗試 card.MaxCardNumberAttempts 次
// 3. 顧客原有的啟用卡片在同一事務中停用，發卡後只有一張啟用卡
type IssueCardUseCase struct {
	customers customer.Repository
	cards     card.Repository
	catalog   tier.CatalogProvider
	generator card.NumberGenerator
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	log       *zap.Logger
}

func NewIssueCardUseCase(
	customers customer.Repository,
	cards card.Repository,
	catalog tier.CatalogProvider,
	generator card.NumberGenerator,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log *zap.Logger,
) *IssueCardUseCase {
	return &IssueCardUseCase{
		customers: customers,
		cards:     cards,
		catalog:   catalog,
		generator: generator,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

func (uc *IssueCardUseCase) Execute(ctx context.Context, cmd IssueCardCommand) (*CardResult, error) {
	// Step 1: 驗證輸入
	customerID, err := customer.CustomerIDFromString(cmd.CustomerID)
	if err != nil {
		return nil, err
	}
	nfcID, err := card.OptionalNFCID(cmd.NFCID)
	if err != nil {
		return nil, err
	}

	// Step 2: 顧客與等級
	c, err := uc.customers.FindByID(nil, customerID)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, customer.ErrCustomerInactive.WithContext("customer_id", cmd.CustomerID)
	}
	tierID, err := uc.resolveTier(ctx, c, cmd.TierID)
	if err != nil {
		return nil, err
	}

	// Step 3: 唯一性檢查與卡號配置（事務外，避免佔用寫入連線）
	if err := ensureNFCAvailable(uc.cards, nfcID); err != nil {
		return nil, err
	}
	number, err := obtainNumber(ctx, uc.cards, uc.generator, cmd.CardNumber)
	if err != nil {
		return nil, err
	}

	// Step 4: 停用舊卡並保存新卡
	var (
		issued   *card.MembershipCard
		previous []*card.MembershipCard
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		previous, err = card.DeactivateActiveCards(tx, uc.cards, customerID)
		if err != nil {
			return err
		}
		issued, err = card.IssueCard(customerID, number, nfcID, tierID)
		if err != nil {
			return err
		}
		return uc.cards.Save(tx, issued)
	})
	if err != nil {
		return nil, err
	}

	dispatchCards(ctx, uc.log, uc.publisher, append(previous, issued))
	return newCardResult(issued), nil
}

func (uc *IssueCardUseCase) resolveTier(ctx context.Context, c *customer.Customer, requested string) (tier.TierID, error) {
	if strings.TrimSpace(requested) == "" {
		return c.TierID(), nil
	}
	id, err := tier.TierIDFromString(requested)
	if err != nil {
		return tier.TierID{}, err
	}
	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return tier.TierID{}, err
	}
	if _, ok := catalog.FindByID(id); !ok {
		return tier.TierID{}, tier.ErrTierNotFound.WithContext("tier_id", requested)
	}
	return id, nil
}

// obtainNumber 使用指定卡號（必須未被使用）或自動產生
func obtainNumber(ctx context.Context, cards card.Repository, gen card.NumberGenerator, requested string) (card.CardNumber, error) {
	if strings.TrimSpace(requested) == "" {
		return card.AllocateNumber(ctx, gen, func(ctx context.Context, n card.CardNumber) (bool, error) {
			return cards.ExistsByCardNumber(nil, n)
		})
	}

	number, err := card.NewCardNumber(requested)
	if err != nil {
		return card.CardNumber{}, err
	}
	taken, err := cards.ExistsByCardNumber(nil, number)
	if err != nil {
		return card.CardNumber{}, err
	}
	if taken {
		return card.CardNumber{}, card.ErrCardNumberTaken.WithContext("card_number", number.String())
	}
	return number, nil
}

func ensureNFCAvailable(cards card.Repository, nfcID card.NFCID) error {
	if nfcID.IsZero() {
		return nil
	}
	taken, err := cards.ExistsByNFCID(nil, nfcID)
	if err != nil {
		return err
	}
	if taken {
		return card.ErrNFCIDTaken.WithContext("nfc_id", nfcID.String())
	}
	return nil
}

func dispatchCards(ctx context.Context, log *zap.Logger, publisher shared.EventPublisher, cards []*card.MembershipCard) {
	recorders := make([]events.Recorder, 0, len(cards))
	for _, c := range cards {
		recorders = append(recorders, c)
	}
	events.Dispatch(ctx, log, publisher, recorders...)
}
