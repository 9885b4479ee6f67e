package customer

import (
	"context"
	"strings"

	"github.com/jackyeh168/loyalty_crm/src/internal/application/events"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/customer"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/tier"
	"go.uber.org/zap"
)

// ===========================
// RegisterCustomer Use Case
// ===========================

// RegisterCustomerCommand 註冊顧客指令（Input DTO）
type RegisterCustomerCommand struct {
	Name  string
	Email string
	Phone string // 可為空
}

// RegisterCustomerUseCase 註冊顧客
//
// 業務規則：
// 1. Email 不能重複（ErrCustomerExists）
// 2. 新顧客累積消費為 0，直接分配門檻為 0 的最低等級
type RegisterCustomerUseCase struct {
	customers customer.Repository
	catalog   tier.CatalogProvider
	resolver  *tier.Resolver
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	log       *zap.Logger
}

func NewRegisterCustomerUseCase(
	customers customer.Repository,
	catalog tier.CatalogProvider,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	log *zap.Logger,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{
		customers: customers,
		catalog:   catalog,
		resolver:  tier.NewResolver(),
		txManager: txManager,
		publisher: publisher,
		log:       log,
	}
}

func (uc *RegisterCustomerUseCase) Execute(ctx context.Context, cmd RegisterCustomerCommand) (*CustomerResult, error) {
	// Step 1: 驗證輸入並轉換為 Value Object
	email, err := customer.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	var phone customer.PhoneNumber
	if strings.TrimSpace(cmd.Phone) != "" {
		if phone, err = customer.NewPhoneNumber(cmd.Phone); err != nil {
			return nil, err
		}
	}

	// Step 2: 最低等級
	catalog, err := tier.LoadCatalog(ctx, uc.catalog)
	if err != nil {
		return nil, err
	}
	floor, err := uc.resolver.ResolveTier(shared.ZeroMoney(), catalog)
	if err != nil {
		return nil, err
	}

	// Step 3: 建立聚合
	c, err := customer.NewCustomer(cmd.Name, email, phone)
	if err != nil {
		return nil, err
	}
	c.ApplySpend(shared.ZeroMoney(), floor)

	// Step 4: 在事務中檢查重複並保存
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		exists, err := uc.customers.ExistsByEmail(tx, email)
		if err != nil {
			return err
		}
		if exists {
			return customer.ErrCustomerExists.WithContext("email", email.String())
		}
		return uc.customers.Create(tx, c)
	})
	if err != nil {
		return nil, err
	}

	events.Dispatch(ctx, uc.log, uc.publisher, c)
	return newCustomerResult(c, catalog), nil
}
