package smtp

import "io"

// Client описывает минимальный интерфейс SMTP клиента,
// используемый сервисом отправки писем.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
