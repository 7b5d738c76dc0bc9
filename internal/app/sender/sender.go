// Package sender собирает воркер отправки почтовых уведомлений:
// подключение к RabbitMQ, SMTP транспорт и потребитель очереди модерации.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/kinoteka/movie-catalog/internal/config"
	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/lib/smtp"
	"github.com/kinoteka/movie-catalog/internal/rabbitmq"
	senderservice "github.com/kinoteka/movie-catalog/internal/services/sender"
)

// App инкапсулирует потребителя очереди и его зависимости.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New инициализирует воркер: соединение с очередью и SMTP транспорт.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitURL, cfg.ConnectRetries, cfg.ConnectRetryWait)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.NewSenderService(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди модерации и ждет отмены контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.ModerationQueue, a.senderService.SendModerationResult)
	if err != nil {
		a.logger.Error("failed to start moderation queue consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
