package card

import (
	"context"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/card"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"go.uber.org/zap"
)

// ===========================
// ReplaceCard Use Case
// ===========================

// ReplaceCardCommand 換卡指令（Input DTO）
type ReplaceCardCommand struct {
	OldCardNumber string
	NewCardNumber string // 空值時自動產生
	NewNFCID      string // 可為空
}

// ReplaceCardResult 換卡結果（Output DTO）
type ReplaceCardResult struct {
	OldCard *CardResult
	NewCard *CardResult
}

// ReplaceCardUseCase 以新卡取代舊卡（遺失、毀損、升級卡面）
//
// 業務規則：
// 1. 新卡號已存在時返回 ErrCardNumberTaken，舊卡不受影響
// 2. 舊卡標記為 replaced（終止狀態），新卡沿用顧客與等級並為啟用狀態
// 3. 兩張卡的寫入在同一事務中完成
type ReplaceCardUseCase struct {
	cards     card.Repository
	generator card.NumberGenerator
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	log       *zap.Logger
}

func NewReplaceCardUseCase(
	cards card.Repository,
	generator card.NumberGenerator,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log *zap.Logger,
) *ReplaceCardUseCase {
	return &ReplaceCardUseCase{
		cards:     cards,
		generator: generator,
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

func (uc *ReplaceCardUseCase) Execute(ctx context.Context, cmd ReplaceCardCommand) (*ReplaceCardResult, error) {
	// Step 1: 驗證輸入
	oldNumber, err := card.NewCardNumber(cmd.OldCardNumber)
	if err != nil {
		return nil, err
	}
	nfcID, err := card.OptionalNFCID(cmd.NewNFCID)
	if err != nil {
		return nil, err
	}

	// Step 2: 新卡號與 NFC 必須未被使用
	newNumber, err := obtainNumber(ctx, uc.cards, uc.generator, cmd.NewCardNumber)
	if err != nil {
		return nil, err
	}
	if err := ensureNFCAvailable(uc.cards, nfcID); err != nil {
		return nil, err
	}

	// Step 3: 在事務中換卡
	var (
		oldCard, newCard *card.MembershipCard
		others           []*card.MembershipCard
	)
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		found, err := uc.cards.FindByCardNumber(tx, oldNumber)
		if err != nil {
			return err
		}

		issued, err := card.IssueCard(found.CustomerID(), newNumber, nfcID, found.TierID())
		if err != nil {
			return err
		}
		if err := found.MarkReplaced(issued.ID()); err != nil {
			return err
		}
		if err := uc.cards.Update(tx, found); err != nil {
			return err
		}

		// 舊卡若本來就是停用狀態，顧客可能另有啟用卡
		others, err = card.DeactivateActiveCards(tx, uc.cards, found.CustomerID())
		if err != nil {
			return err
		}
		if err := uc.cards.Save(tx, issued); err != nil {
			return err
		}
		oldCard, newCard = found, issued
		return nil
	})
	if err != nil {
		return nil, err
	}

	dispatchCards(ctx, uc.log, uc.publisher, append(append(others, oldCard), newCard))
	return &ReplaceCardResult{
		OldCard: newCardResult(oldCard),
		NewCard: newCardResult(newCard),
	}, nil
}
