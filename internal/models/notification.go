package models

import "time"

// Типы уведомлений, порождаемых решениями модерации.
const (
	NotificationPlaylistApproved = "playlist_approved"
	NotificationPlaylistRejected = "playlist_rejected"
	NotificationReviewApproved   = "review_approved"
	NotificationReviewRejected   = "review_rejected"
)

// Notification представляет уведомление пользователя. Создается только
// как побочный эффект решения модератора, в одной транзакции с ним.
type Notification struct {
	ID         int       `json:"id"`
	UserUID    string    `json:"user_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	PlaylistID *int      `json:"playlist_id,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ModerationEvent — сообщение для очереди уведомлений: по нему
// notification-sender отправляет письмо автору о решении модератора.
type ModerationEvent struct {
	EventID     string `json:"event_id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	EntityType  string `json:"entity_type"` // playlist или review
	EntityTitle string `json:"entity_title"`
	Approved    bool   `json:"approved"`
	Comment     string `json:"comment,omitempty"`
}
