// Package services содержит логику отправки почтовых уведомлений
// о решениях модерации, потребляемых из очереди.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kinoteka/movie-catalog/internal/lib/sl"
	"github.com/kinoteka/movie-catalog/internal/lib/smtp"
	"github.com/kinoteka/movie-catalog/internal/models"
)

// Transport описывает SMTP транспорт, используемый сервисом.
type Transport interface {
	Connect() (smtp.Client, error)
	GetSMTPUser() string
}

// SenderService отправляет письма авторам о решениях модерации.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendModerationResult обрабатывает событие модерации из очереди
// и отправляет автору письмо о решении.
func (s *SenderService) SendModerationResult(body []byte) error {
	var event models.ModerationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal moderation event", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{event.Email}
	subject, bodyText := composeModerationEmail(event)

	return s.sendEmail(to, subject, bodyText)
}

// composeModerationEmail собирает тему и текст письма по событию модерации.
func composeModerationEmail(event models.ModerationEvent) (subject, bodyText string) {
	entity := "подборка"
	if event.EntityType == "review" {
		entity = "рецензия"
	}

	if event.Approved {
		subject = fmt.Sprintf("Ваша %s опубликована на Кинотеке", entity)
		bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nВаша %s «%s» прошла модерацию и теперь опубликована.\n\nСпасибо, что делитесь с сообществом!",
			event.Username, entity, event.EntityTitle)
		return subject, bodyText
	}

	subject = fmt.Sprintf("Ваша %s не прошла модерацию", entity)
	bodyText = fmt.Sprintf("Здравствуйте, %s!\n\nК сожалению, ваша %s «%s» не прошла модерацию.",
		event.Username, entity, event.EntityTitle)
	if event.Comment != "" {
		bodyText += fmt.Sprintf("\n\nКомментарий модератора: %s", event.Comment)
	}
	bodyText += "\n\nВы можете исправить замечания и отправить материал на повторную проверку."
	return subject, bodyText
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
