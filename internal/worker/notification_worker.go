package worker

import (
	"context"

	"bookit/internal/notifier"
	"bookit/internal/queue"
)

type NotificationWorker interface {
	// 訂閱預訂事件隊列
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	notifier notifier.Notifier
	queue    queue.BookingQueue
}

func NewNotificationWorker(notifier notifier.Notifier, queue queue.BookingQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		notifier: notifier,
		queue:    queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeBookings(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			err := w.notifier.SendBookingConfirmation(ctx, msg.Data)

			if err != nil {
				// 通知暫時失敗，留待重試
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
