package models

// ModerationStatus — статус модерации пользовательского контента.
// Замкнутое множество значений: pending, approved, rejected.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusRejected ModerationStatus = "rejected"
)

// Valid сообщает, входит ли значение в множество статусов.
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal сообщает, является ли статус финальным решением модератора.
func (s ModerationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo проверяет допустимость перехода: решение принимается
// только из pending, повтор того же финального решения идемпотентен.
func (s ModerationStatus) CanTransitionTo(next ModerationStatus) bool {
	if !next.Terminal() {
		return false
	}
	return s == StatusPending || s == next
}
