package services

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// CredentialMessage carries an approved member's credentials and the
// pre-rendered delivery bodies for out-of-band channels.
type CredentialMessage struct {
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	MemberID     string `json:"member_id"`
	WhatsAppBody string `json:"whatsapp_body"`
	EmailSubject string `json:"email_subject"`
	EmailBody    string `json:"email_body"`
}

// NotificationSender delivers credentials to an approved member. Actual
// WhatsApp/email delivery happens outside this process.
type NotificationSender interface {
	SendCredentials(ctx context.Context, msg CredentialMessage) error
}

// LogSender writes the delivery payload to the log so an operator can relay
// it manually. The default when no queue is configured.
type LogSender struct {
	Log *zap.SugaredLogger
}

func (s *LogSender) SendCredentials(_ context.Context, msg CredentialMessage) error {
	s.Log.Infow("credential delivery (manual relay)",
		"email", msg.Email,
		"phone", msg.Phone,
		"memberId", msg.MemberID,
	)
	return nil
}

// AMQPSender publishes credential messages to a durable queue consumed by an
// external WhatsApp/email delivery worker.
type AMQPSender struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewAMQPSender dials the broker and declares the delivery queue.
func NewAMQPSender(url, queue string) (*AMQPSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}
	return &AMQPSender{conn: conn, channel: ch, queue: queue}, nil
}

func (s *AMQPSender) SendCredentials(ctx context.Context, msg CredentialMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal credential message: %w", err)
	}
	err = s.channel.PublishWithContext(ctx, "", s.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish credential message: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (s *AMQPSender) Close() error {
	if err := s.channel.Close(); err != nil {
		s.conn.Close()
		return err
	}
	return s.conn.Close()
}
