package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/sushihentaime/bloglist/internal/common"
)

const signupTemplate = "signup_email.html"

// NewMailService returns a service that mails recipient whenever a user signs up.
func NewMailService(mb common.MessageConsumer, host, username, password, sender, recipient string, port int, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:    logger,
		recipient: recipient,
		retry:     retryPolicy{maxRetries: 5, baseDelay: 500 * time.Millisecond},
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SendSignupNotifications starts consuming user.created events in the background.
func (s *MailService) SendSignupNotifications() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping signup notifications")
				return
			}
		}
	}()

	return nil
}

func (s *MailService) handle(msg amqp.Delivery) {
	// the message is acked whatever happens, a broken event is not worth redelivering
	defer func() {
		if err := msg.Ack(false); err != nil {
			s.logger.Error("could not ack message", slog.String("error", err.Error()))
		}
	}()

	var event common.UserCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		return
	}

	for attempt := 0; attempt < s.retry.maxRetries; attempt++ {
		err := s.m.send(s.recipient, event, signupTemplate)
		if err == nil {
			s.logger.Info("signup email sent", slog.String("username", event.Username))
			return
		}

		delay := time.Duration(rand.Int63n(int64(s.retry.baseDelay) << uint(attempt)))
		s.logger.Info("delaying signup email", slog.String("username", event.Username), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	s.logger.Error("could not send signup email", slog.String("username", event.Username))
}

// Close stops the consumer and waits for the in-flight message.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
