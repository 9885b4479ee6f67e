package tier

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// 錯誤代碼
const (
	ErrCodeInvalidTierID    shared.ErrorCode = "TIER_ID_INVALID"
	ErrCodeInvalidTierName  shared.ErrorCode = "TIER_NAME_INVALID"
	ErrCodeInvalidSortOrder shared.ErrorCode = "TIER_SORT_ORDER_INVALID"
	ErrCodeTierNotFound     shared.ErrorCode = "TIER_NOT_FOUND"
	ErrCodeTierExists       shared.ErrorCode = "TIER_ALREADY_EXISTS"
	ErrCodeNoTierAvailable  shared.ErrorCode = "TIER_NONE_AVAILABLE"
	ErrCodeEmptyCatalog     shared.ErrorCode = "TIER_CATALOG_EMPTY"
	ErrCodeInvalidCatalog   shared.ErrorCode = "TIER_CATALOG_INVALID"
	ErrCodeRepositoryError  shared.ErrorCode = "TIER_REPOSITORY_ERROR"
)

var (
	ErrInvalidTierID    = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidTierID, "無效的等級 ID")
	ErrInvalidTierName  = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidTierName, "等級名稱不能為空")
	ErrInvalidSortOrder = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidSortOrder, "排序值不能為負數")
	ErrTierNotFound     = shared.NewDomainError(shared.KindNotFound, ErrCodeTierNotFound, "等級不存在")
	ErrTierExists       = shared.NewDomainError(shared.KindConflict, ErrCodeTierExists, "等級已存在")
	ErrRepositoryError  = shared.NewDomainError(shared.KindInternal, ErrCodeRepositoryError, "等級倉儲操作失敗")

	// 設定錯誤：等級目錄本身有問題，不是請求的問題
	ErrNoTierAvailable = shared.NewDomainError(shared.KindConfiguration, ErrCodeNoTierAvailable, "沒有符合消費金額的等級")
	ErrEmptyCatalog    = shared.NewDomainError(shared.KindConfiguration, ErrCodeEmptyCatalog, "等級目錄沒有任何啟用中的等級")
	ErrInvalidCatalog  = shared.NewDomainError(shared.KindConfiguration, ErrCodeInvalidCatalog, "等級目錄設定不合法")
)
