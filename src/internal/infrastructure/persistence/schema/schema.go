// Package schema 集中所有 GORM 模型的遷移
package schema

import (
	cardpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/card"
	customerpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/customer"
	ledgerpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/ledger"
	rewardpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/reward"
	tierpersistence "github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/tier"
	"gorm.io/gorm"
)

// Models 需要遷移的資料表，依相依順序排列
func Models() []interface{} {
	return []interface{}{
		&tierpersistence.TierGORM{},
		&customerpersistence.CustomerGORM{},
		&ledgerpersistence.TransactionGORM{},
		&cardpersistence.MembershipCardGORM{},
		&rewardpersistence.RewardGORM{},
		&rewardpersistence.CustomerRewardGORM{},
	}
}

// Migrate 建立或更新所有資料表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
