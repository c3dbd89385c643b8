package smtp

import (
	"bytes"
	"time"

	"github.com/cradoe/treelance/assets"
	"github.com/cradoe/treelance/internal/funcs"

	"github.com/wneessen/go-mail"

	htmlTemplate "html/template"
	textTemplate "text/template"
)

const defaultTimeout = 10 * time.Second

const sendAttempts = 3

type MailClient interface {
	DialAndSend(...*mail.Msg) error
}

type MailerInterface interface {
	Send(recipient string, data any, patterns ...string) error
}

type Mailer struct {
	client     MailClient
	from       string
	retryDelay time.Duration
}

func NewMailer(host string, port int, username, password, from string) (*Mailer, error) {
	client, err := mail.NewClient(
		host,
		mail.WithTimeout(defaultTimeout),
		mail.WithPort(port),
		mail.WithUsername(username),
		mail.WithPassword(password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, err
	}

	return &Mailer{
		client:     client,
		from:       from,
		retryDelay: 2 * time.Second,
	}, nil
}

// NewMailerWithClient is used by tests to swap in a fake transport.
func NewMailerWithClient(client MailClient, from string) *Mailer {
	return &Mailer{
		client: client,
		from:   from,
	}
}

// Send renders the "subject", "plainBody" and optional "htmlBody" blocks of
// the named templates under assets/emails and delivers the result, retrying
// transient failures.
func (m *Mailer) Send(recipient string, data any, patterns ...string) error {
	paths := make([]string, len(patterns))
	for i := range patterns {
		paths[i] = "emails/" + patterns[i]
	}

	msg := mail.NewMsg()

	if err := msg.To(recipient); err != nil {
		return err
	}

	if err := msg.From(m.from); err != nil {
		return err
	}

	ts, err := textTemplate.New("").Funcs(funcs.TemplateFuncs).ParseFS(assets.EmbeddedFiles, paths...)
	if err != nil {
		return err
	}

	subject := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(subject, "subject", data); err != nil {
		return err
	}

	msg.Subject(subject.String())

	plainBody := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(plainBody, "plainBody", data); err != nil {
		return err
	}

	msg.SetBodyString(mail.TypeTextPlain, plainBody.String())

	if ts.Lookup("htmlBody") != nil {
		ts, err := htmlTemplate.New("").Funcs(funcs.TemplateFuncs).ParseFS(assets.EmbeddedFiles, paths...)
		if err != nil {
			return err
		}

		htmlBody := new(bytes.Buffer)
		if err := ts.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
			return err
		}

		msg.AddAlternativeString(mail.TypeTextHTML, htmlBody.String())
	}

	for i := 1; i <= sendAttempts; i++ {
		err = m.client.DialAndSend(msg)
		if err == nil {
			return nil
		}

		if i != sendAttempts {
			time.Sleep(m.retryDelay)
		}
	}

	return err
}
