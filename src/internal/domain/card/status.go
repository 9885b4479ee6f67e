package card

// Status 會員卡狀態
//
//	active ⇄ inactive
//	active | inactive → replaced（終止狀態，只能經由換卡進入）
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusReplaced Status = "replaced"
)

func (s Status) String() string {
	return string(s)
}

// IsValid 是否為已知狀態
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusReplaced:
		return true
	}
	return false
}
