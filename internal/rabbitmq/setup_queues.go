package rabbitmq

// NotificationsExchange — exchange для всех событий уведомлений.
const NotificationsExchange = "notifications"

// Ключ маршрутизации и очередь событий модерации.
const (
	ModerationRoutingKey = "moderation"
	ModerationQueue      = "notifications.moderation"
)

// QueueConfig описывает очередь и ключ маршрутизации для привязки.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые должны существовать
// до старта публикации и потребления.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: ModerationQueue, RoutingKey: ModerationRoutingKey},
	}
}
