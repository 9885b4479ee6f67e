package tier

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
)

// ===========================
// Tier 聚合根
// ===========================

// Tier 會員等級
//
// 業務規則：
// - spendThreshold 為累積消費門檻（>= 0）
// - 自動等級（非邀請制）依 sortOrder 排序時門檻嚴格遞增，最低等級門檻為 0
//   （由 Catalog 檢查，單一 Tier 無法得知其他等級）
// - inviteOnly 等級（例如 Champion）不參與自動升級，只能手動指定
type Tier struct {
	id             TierID
	name           string
	code           string
	spendThreshold shared.Money
	sortOrder      int
	active         bool
	inviteOnly     bool

	createdAt time.Time
	updatedAt time.Time
}

// NewTier 創建新的等級（預設啟用）
//
// code 由名稱產生（"Gold Member" → "gold-member"），供設定檔與前端引用
func NewTier(name string, threshold shared.Money, sortOrder int, inviteOnly bool) (*Tier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidTierName
	}
	if sortOrder < 0 {
		return nil, ErrInvalidSortOrder.WithContext("sort_order", sortOrder)
	}

	now := time.Now()
	return &Tier{
		id:             NewTierID(),
		name:           name,
		code:           slug.Make(name),
		spendThreshold: threshold,
		sortOrder:      sortOrder,
		active:         true,
		inviteOnly:     inviteOnly,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructTier 從持久化存儲或設定檔重建（不產生新 ID）
func ReconstructTier(
	id TierID,
	name string,
	code string,
	threshold shared.Money,
	sortOrder int,
	active bool,
	inviteOnly bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Tier, error) {
	if id.IsEmpty() {
		return nil, ErrInvalidTierID.WithContext("reason", "tier id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidTierName.WithContext("tier_id", id.String())
	}
	if code == "" {
		code = slug.Make(name)
	}

	return &Tier{
		id:             id,
		name:           name,
		code:           code,
		spendThreshold: threshold,
		sortOrder:      sortOrder,
		active:         active,
		inviteOnly:     inviteOnly,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *Tier) ID() TierID                   { return t.id }
func (t *Tier) Name() string                 { return t.name }
func (t *Tier) Code() string                 { return t.code }
func (t *Tier) SpendThreshold() shared.Money { return t.spendThreshold }
func (t *Tier) SortOrder() int               { return t.sortOrder }
func (t *Tier) IsActive() bool               { return t.active }
func (t *Tier) IsInviteOnly() bool           { return t.inviteOnly }
func (t *Tier) CreatedAt() time.Time         { return t.createdAt }
func (t *Tier) UpdatedAt() time.Time         { return t.updatedAt }

// Deactivate 停用等級（不刪除，仍被顧客與卡片引用）
func (t *Tier) Deactivate() {
	if !t.active {
		return
	}
	t.active = false
	t.updatedAt = time.Now()
}

// IsAtLeast 判斷此等級是否不低於 other
//
// 邀請制等級視為最高等級，高於所有自動等級
func (t *Tier) IsAtLeast(other *Tier) bool {
	if other == nil {
		return true
	}
	if t.id.Equals(other.id) || t.inviteOnly {
		return true
	}
	if other.inviteOnly {
		return false
	}
	return t.spendThreshold.GreaterThanOrEqual(other.spendThreshold)
}
