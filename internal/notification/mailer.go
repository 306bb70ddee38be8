// 注文確認・パスワード再設定などのメール送信
package notification

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/djordjeivanovic11/ladimood-back/internal/config"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
)

type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// メール送信の約束
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPで送る
type SMTPMailer struct {
	cfg  config.MailConfig
	from string
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, from: cfg.Username}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := out.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("set reply-to: %w", err)
		}
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)

	client, err := mail.NewClient(m.cfg.Host, m.clientOptions()...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// 465は暗黙TLS、それ以外はSTARTTLS
func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	}
	if m.cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.cfg.Timeout))
	}
	if m.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return opts
}

// 開発用。送らずにログに出す
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	ctx = m.log.WithFields(ctx, map[string]any{"to": msg.To, "subject": msg.Subject})
	m.log.Info(ctx, "email not sent: smtp credentials missing")
	return nil
}

// 設定に応じて選ぶ
func NewMailer(cfg config.MailConfig, log *logger.Logger) Mailer {
	if cfg.Enabled() {
		return NewSMTPMailer(cfg)
	}
	return NewLogMailer(log)
}
