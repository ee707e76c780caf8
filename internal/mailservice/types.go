package mailservice

import (
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/bloglist/internal/common"
)

type MailService struct {
	mb        common.MessageConsumer
	m         Mailer
	logger    MailLogger
	recipient string
	retry     retryPolicy
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// retryPolicy drives the exponential backoff with jitter used for failed sends.
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct {
	mu     sync.Mutex
	parsed map[string]*template.Template
}

// Notification is a rendered mail ready to be sent.
type Notification struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	Render(name string, data any) (*Notification, error)
}
