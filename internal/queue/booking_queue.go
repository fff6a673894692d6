package queue

import (
	"context"

	"bookit/internal/model"
)

type Delivery struct {
	Data *model.Booking
	Ack  func()
	Nack func(requeue bool)
}

// BookingQueue 承載「預訂已成立」事件：Reservation Engine 提交交易後發布，
// 通知 worker 訂閱。發布失敗不影響已提交的預訂。
type BookingQueue interface {
	// 發送預訂事件到隊列
	PublishBooking(ctx context.Context, booking *model.Booking) error
	// 訂閱預訂事件隊列
	SubscribeBookings(ctx context.Context) (<-chan Delivery, error)
}

type BookingQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.Booking
}

func NewBookingQueue(bufferSize int) BookingQueue {
	return &BookingQueueImpl{
		ch: make(chan *model.Booking, bufferSize),
	}
}

func (q *BookingQueueImpl) PublishBooking(ctx context.Context, booking *model.Booking) error {
	select {
	case q.ch <- booking:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *BookingQueueImpl) SubscribeBookings(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case booking, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: booking,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- booking // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
