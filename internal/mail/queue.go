package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pius706975/poolseek-be/internal/mq"
)

// QueueNotifier publishes email jobs to the mail queue instead of sending
// inline, so a slow or unreachable SMTP server never holds up a request.
// The worker process consumes the queue and performs the actual delivery.
type QueueNotifier struct {
	queue   *mq.MQ
	channel string
}

func NewQueueNotifier(queue *mq.MQ, channel string) *QueueNotifier {
	return &QueueNotifier{queue: queue, channel: channel}
}

// SendOTPEmail enqueues the verification email carrying code.
func (n *QueueNotifier) SendOTPEmail(ctx context.Context, recipient, code string) error {
	return n.publish(ctx, OTPMessage(recipient, code))
}

func (n *QueueNotifier) publish(ctx context.Context, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}
	if _, err := n.queue.Publish(ctx, n.channel, data, map[string]string{"kind": "email"}); err != nil {
		return fmt.Errorf("publish mail job: %w", err)
	}
	return nil
}

// Consume subscribes to the mail queue and delivers each job with sender.
// It blocks until ctx is cancelled or the subscription fails.
func Consume(ctx context.Context, queue *mq.MQ, channel string, sender *SMTPSender) error {
	return queue.Subscribe(ctx, channel, func(ctx context.Context, m mq.Message) error {
		var msg Message
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			return fmt.Errorf("decode mail job %s: %w", m.ID, err)
		}
		return sender.Send(ctx, msg)
	})
}
