package card

import "github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"

// ===========================
// Card Domain 錯誤定義
// ===========================

const (
	ErrCodeInvalidCardID       shared.ErrorCode = "CARD_ID_INVALID"
	ErrCodeInvalidCardNumber   shared.ErrorCode = "CARD_NUMBER_INVALID"
	ErrCodeInvalidNFCID        shared.ErrorCode = "NFC_ID_INVALID"
	ErrCodeCardNotFound        shared.ErrorCode = "CARD_NOT_FOUND"
	ErrCodeCardNumberTaken     shared.ErrorCode = "CARD_NUMBER_TAKEN"
	ErrCodeNFCIDTaken          shared.ErrorCode = "NFC_ID_TAKEN"
	ErrCodeInvalidCardStatus   shared.ErrorCode = "CARD_STATUS_INVALID"
	ErrCodeCardAlreadyActive   shared.ErrorCode = "CARD_ALREADY_ACTIVE"
	ErrCodeCardAlreadyInactive shared.ErrorCode = "CARD_ALREADY_INACTIVE"
	ErrCodeCardReplaced        shared.ErrorCode = "CARD_REPLACED"
	ErrCodeCardNumberExhausted shared.ErrorCode = "CARD_NUMBER_EXHAUSTED"
	ErrCodeCardRepositoryError shared.ErrorCode = "CARD_REPOSITORY_ERROR"
)

var (
	ErrInvalidCardID     = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCardID, "無效的會員卡 ID")
	ErrInvalidCardNumber = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCardNumber, "無效的卡號格式")
	ErrInvalidNFCID      = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidNFCID, "無效的 NFC 識別碼")
	ErrCardNotFound      = shared.NewDomainError(shared.KindNotFound, ErrCodeCardNotFound, "會員卡不存在")
	ErrCardNumberTaken   = shared.NewDomainError(shared.KindConflict, ErrCodeCardNumberTaken, "卡號已被使用")
	ErrNFCIDTaken        = shared.NewDomainError(shared.KindConflict, ErrCodeNFCIDTaken, "NFC 識別碼已被使用")
	ErrInvalidCardStatus = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCardStatus, "無效的會員卡狀態")

	// 狀態轉換錯誤：拒絕無效轉換，不默默當成成功
	ErrCardAlreadyActive   = shared.NewDomainError(shared.KindValidation, ErrCodeCardAlreadyActive, "會員卡已是啟用狀態")
	ErrCardAlreadyInactive = shared.NewDomainError(shared.KindValidation, ErrCodeCardAlreadyInactive, "會員卡已是停用狀態")
	ErrCardReplaced        = shared.NewDomainError(shared.KindValidation, ErrCodeCardReplaced, "會員卡已被換發，無法再變更")

	// ErrCardNumberExhausted 連續產生的卡號都已被使用
	ErrCardNumberExhausted = shared.NewDomainError(shared.KindInternal, ErrCodeCardNumberExhausted, "無法產生未使用的卡號")

	ErrRepositoryError = shared.NewDomainError(shared.KindInternal, ErrCodeCardRepositoryError, "會員卡倉儲操作失敗")
)
