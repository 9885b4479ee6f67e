package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackyeh168/loyalty_crm/src/internal/domain/shared"
	"gorm.io/gorm"
)

// IsDuplicateKeyErr 判斷是否為唯一約束衝突
//
// 支援：
// - gorm.ErrDuplicatedKey（開啟 TranslateError 時）
// - SQLite: "UNIQUE constraint failed"
// - PostgreSQL: "duplicate key value violates unique constraint"（23505）
// - MySQL: "Error 1062" / "Duplicate entry"
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	for _, marker := range []string{
		"UNIQUE constraint failed",
		"duplicate key value violates unique constraint",
		"Error 1062",
		"Duplicate entry",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsNotFound gorm 找不到資料
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// WrapError 把資料庫錯誤包成倉儲錯誤（internal），同時保留原始錯誤供 errors.Is 判斷
func WrapError(repoErr *shared.DomainError, op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, repoErr, err)
}
