package mailservice

import (
	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/bloglist/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) Render(name string, data any) (*Notification, error) {
	args := m.Called(name, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Notification), args.Error(1)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	args := m.Called(recipient, data, templateFile)
	return args.Error(0)
}

type MockAcknowledger struct {
	mock.Mock
}

func (a *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	return a.Called(tag, multiple).Error(0)
}

func (a *MockAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	return a.Called(tag, multiple, requeue).Error(0)
}

func (a *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Called(tag, requeue).Error(0)
}

// MockMessageConsumer delivers bodies once and then closes the channel.
type MockMessageConsumer struct {
	mock.Mock
	ack    amqp.Acknowledger
	bodies []string
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	args := m.Called(key, exchange, queue)
	if err := args.Error(0); err != nil {
		return nil, err
	}

	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)

		for i, body := range m.bodies {
			msgsChan <- amqp.Delivery{Acknowledger: m.ack, DeliveryTag: uint64(i + 1), Body: []byte(body)}
		}
	}()

	return msgsChan, nil
}
