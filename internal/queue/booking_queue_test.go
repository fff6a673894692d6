package queue_test

import (
	"context"
	"testing"
	"time"

	"bookit/internal/model"
	"bookit/internal/queue"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveDelivery(t *testing.T, deliveries <-chan queue.Delivery) queue.Delivery {
	t.Helper()
	select {
	case d := <-deliveries:
		return d
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
		return queue.Delivery{}
	}
}

func TestBookingQueue_PublishSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewBookingQueue(10)

	booking := &model.Booking{ID: 1, BookingID: uuid.New(), UserEmail: "alice@example.com"}
	require.NoError(t, q.PublishBooking(ctx, booking))

	deliveries, err := q.SubscribeBookings(ctx)
	require.NoError(t, err)

	d := receiveDelivery(t, deliveries)
	assert.Equal(t, booking.BookingID, d.Data.BookingID)
	d.Ack()
}

func TestBookingQueue_NackRequeues(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := queue.NewBookingQueue(10)

	booking := &model.Booking{ID: 1, BookingID: uuid.New()}
	require.NoError(t, q.PublishBooking(ctx, booking))

	deliveries, err := q.SubscribeBookings(ctx)
	require.NoError(t, err)

	first := receiveDelivery(t, deliveries)
	first.Nack(true)

	second := receiveDelivery(t, deliveries)
	assert.Equal(t, booking.BookingID, second.Data.BookingID)
	second.Ack()
}

func TestBookingQueue_PublishRespectsContext(t *testing.T) {
	q := queue.NewBookingQueue(1)

	ctx := context.Background()
	require.NoError(t, q.PublishBooking(ctx, &model.Booking{ID: 1}))

	// buffer is full; a cancelled context must not block forever
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	err := q.PublishBooking(cancelled, &model.Booking{ID: 2})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBookingQueue_SubscribeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	q := queue.NewBookingQueue(10)
	deliveries, err := q.SubscribeBookings(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-deliveries:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("subscription did not stop after cancel")
	}
}
