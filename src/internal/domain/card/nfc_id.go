package card

import (
	"regexp"
	"strings"
)

// ===========================
// NFCID Value Object
// ===========================

// NFCID NFC 標籤 UID 值對象
//
// 業務規則：
// 1. ISO 14443 UID 長度為 4、7 或 10 bytes（8、14、20 個十六進位字元）
// 2. 讀卡機常輸出 "04:A2:2B:..." 格式，冒號與空白會被移除
// 3. 統一轉為大寫
//
// 零值表示卡片未綁定 NFC。
type NFCID struct {
	value string
}

var hexPattern = regexp.MustCompile(`^[0-9A-F]+$`)

var nfcSeparators = strings.NewReplacer(":", "", " ", "", "-", "")

// NewNFCID 創建 NFC UID 值對象（Checked Constructor）
func NewNFCID(value string) (NFCID, error) {
	normalized := strings.ToUpper(nfcSeparators.Replace(strings.TrimSpace(value)))
	if normalized == "" {
		return NFCID{}, ErrInvalidNFCID.WithContext(
			"nfc_id", value,
			"reason", "cannot be empty",
		)
	}

	if !hexPattern.MatchString(normalized) {
		return NFCID{}, ErrInvalidNFCID.WithContext(
			"nfc_id", value,
			"reason", "must be hexadecimal",
		)
	}

	switch len(normalized) {
	case 8, 14, 20:
	default:
		return NFCID{}, ErrInvalidNFCID.WithContext(
			"nfc_id", value,
			"reason", "must be a 4, 7 or 10 byte UID",
		)
	}

	return NFCID{value: normalized}, nil
}

// OptionalNFCID 空字串回傳零值，其餘同 NewNFCID
func OptionalNFCID(value string) (NFCID, error) {
	if strings.TrimSpace(value) == "" {
		return NFCID{}, nil
	}
	return NewNFCID(value)
}

func (n NFCID) String() string          { return n.value }
func (n NFCID) Equals(other NFCID) bool { return n.value == other.value }
func (n NFCID) IsZero() bool            { return n.value == "" }
