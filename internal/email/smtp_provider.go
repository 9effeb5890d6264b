package email

import (
	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type SMTPProvider struct {
	cfg SMTPConfig
}

func NewSMTPProvider(cfg SMTPConfig) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.FromEmail, p.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(p.cfg.Host, p.cfg.Port, p.cfg.Username, p.cfg.Password)
	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendWelcome(to, username string) error {
	subject, body := welcomeBody(username)
	return p.Send(to, subject, body)
}

func (p *SMTPProvider) SendBidAccepted(to, projectTitle string) error {
	subject, body := bidAcceptedBody(projectTitle)
	return p.Send(to, subject, body)
}

func (p *SMTPProvider) SendProjectCompleted(to, projectTitle string, amount float64) error {
	subject, body := projectCompletedBody(projectTitle, amount)
	return p.Send(to, subject, body)
}
