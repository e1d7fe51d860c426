package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"

	"gopkg.in/gomail.v2"

	"todolist/internal/i18n"
	"todolist/internal/models"
)

// Sender delivers messages; *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailService interface {
	SendActivationCodeMail(ctx context.Context, userID int64, name, email, code string) error
}

type mailService struct {
	sender        Sender
	from          string
	apiEntryPoint string
	catalog       *i18n.Catalog
	activateTmpl  *template.Template
}

// NewMailService parses the activation template once.
func NewMailService(sender Sender, from, apiEntryPoint string, catalog *i18n.Catalog, activateHTML []byte) (MailService, error) {
	tmpl, err := template.New("activate_account").Parse(string(activateHTML))
	if err != nil {
		return nil, fmt.Errorf("parse activation template: %w", err)
	}
	return &mailService{
		sender:        sender,
		from:          from,
		apiEntryPoint: apiEntryPoint,
		catalog:       catalog,
		activateTmpl:  tmpl,
	}, nil
}

// NewDialer builds the SMTP transport. An empty user disables auth.
func NewDialer(host string, port int, user, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, user, password)
}

type activationView struct {
	Title          string
	Welcome        string
	Intro          string
	ActivationCode string
	ButtonLabel    string
	Ignore         string
	ActivationURL  string
	CopyrightYear  string
	CopyrightName  string
}

func (s *mailService) activationURL(userID int64, code string) string {
	q := url.Values{}
	q.Set("userId", fmt.Sprintf("%d", userID))
	q.Set("otpCode", code)
	q.Set("otpUseCase", string(models.OtpAccountActivation))
	return s.apiEntryPoint + "/otp/verify?" + q.Encode()
}

func (s *mailService) SendActivationCodeMail(ctx context.Context, userID int64, name, email, code string) error {
	tr := s.catalog.FromContext(ctx)
	link := s.activationURL(userID, code)

	appName := tr.T("all.app.name")
	title := tr.T("mail.activate_account.title")
	thanks := tr.T("mail.activate_account.thanks_for_registering")
	codeIs := tr.T("mail.activate_account.your_activation_code_is")
	ignore := tr.T("mail.activate_account.please_ignore")

	var body bytes.Buffer
	err := s.activateTmpl.Execute(&body, activationView{
		Title:          title,
		Welcome:        tr.T("mail.activate_account.welcome_to", i18n.Args{"app_name": appName}),
		Intro:          fmt.Sprintf("%s %s:", thanks, codeIs),
		ActivationCode: code,
		ButtonLabel:    title,
		Ignore:         ignore,
		ActivationURL:  link,
		CopyrightYear:  tr.T("all.copyright.year"),
		CopyrightName:  tr.T("all.copyright.name"),
	})
	if err != nil {
		return fmt.Errorf("render activation mail: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetAddressHeader("To", email, name)
	m.SetHeader("Subject", fmt.Sprintf("%s - %s", appName, title))
	m.SetBody("text/plain", fmt.Sprintf("%s\n%s %q.\nFollow the link to activate your account %s\n%s",
		thanks, codeIs, code, link, ignore))
	m.AddAlternative("text/html", body.String())

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send activation email: %w", err)
	}
	return nil
}
