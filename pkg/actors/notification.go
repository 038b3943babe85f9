package actors

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/aseertime/pkg/orders"
	"go.uber.org/zap"
)

const recentNotifications = 50

// NotificationActor logs order status changes and keeps the most recent ones.
// Delivery to customers happens elsewhere.
type NotificationActor struct {
	logger *zap.Logger
	recent []OrderStatusChanged
}

func (a *NotificationActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *OrderStatusChanged:
		a.logger.Info("Order status changed",
			zap.String("order_id", msg.OrderID),
			zap.String("customer", msg.CustomerName),
			zap.String("from", string(msg.From)),
			zap.String("to", string(msg.To)))

		a.recent = append(a.recent, *msg)
		if over := len(a.recent) - recentNotifications; over > 0 {
			a.recent = append(a.recent[:0:0], a.recent[over:]...)
		}

	case *GetNotifications:
		items := make([]OrderStatusChanged, len(a.recent))
		copy(items, a.recent)
		ctx.Respond(&Notifications{Items: items})

	case *actor.Started:
		a.logger.Info("Notification actor started")
	}
}

// Notifier feeds order board changes to the notification actor.
type Notifier struct {
	root    *actor.RootContext
	pid     *actor.PID
	timeout time.Duration
}

func SpawnNotifier(system *actor.ActorSystem, timeout time.Duration, logger *zap.Logger) (*Notifier, error) {
	props := actor.PropsFromProducer(func() actor.Actor {
		return &NotificationActor{logger: logger.Named("notification-actor")}
	})
	pid, err := system.Root.SpawnNamed(props, "notification-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn notification actor: %w", err)
	}
	return &Notifier{root: system.Root, pid: pid, timeout: timeout}, nil
}

func (n *Notifier) StatusChanged(_ context.Context, c orders.StatusChange) {
	n.root.Send(n.pid, &OrderStatusChanged{
		OrderID:      c.OrderID,
		CustomerName: c.CustomerName,
		From:         c.From,
		To:           c.To,
		At:           c.At,
	})
}

// Recent returns the latest notifications, oldest first.
func (n *Notifier) Recent() ([]OrderStatusChanged, error) {
	res, err := n.root.RequestFuture(n.pid, &GetNotifications{}, n.timeout).Result()
	if err != nil {
		return nil, fmt.Errorf("notification request failed: %w", err)
	}
	list, ok := res.(*Notifications)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedReply, res)
	}
	return list.Items, nil
}
