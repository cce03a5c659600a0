package queue

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainMerged(t *testing.T, merged <-chan amqp.Delivery) map[string]int {
	t.Helper()
	got := map[string]int{}
	deadline := time.After(2 * time.Second)
	for {
		select {
		case d, ok := <-merged:
			if !ok {
				return got
			}
			got[d.RoutingKey]++
		case <-deadline:
			t.Fatal("merged channel never closed after sources closed")
		}
	}
}

func TestMergeDeliveriesTagsBySourceQueue(t *testing.T) {
	bookings := make(chan amqp.Delivery, 2)
	tickets := make(chan amqp.Delivery, 1)
	bookings <- amqp.Delivery{Body: []byte(`{"booking_id":1}`)}
	bookings <- amqp.Delivery{Body: []byte(`{"booking_id":2}`)}
	tickets <- amqp.Delivery{Body: []byte(`{"ticket_id":9}`)}
	close(bookings)
	close(tickets)

	merged := mergeDeliveries(map[string]<-chan amqp.Delivery{
		KeyBookingApproved: bookings,
		KeyTicketAssigned:  tickets,
	})

	got := drainMerged(t, merged)
	assert.Equal(t, map[string]int{KeyBookingApproved: 2, KeyTicketAssigned: 1}, got)
}

func TestMergeDeliveriesClosesWhenSourcesClose(t *testing.T) {
	// a broker disconnect closes every subscription channel; the merged
	// channel must close too or the consume loop can never reconnect
	bookings := make(chan amqp.Delivery)
	rejected := make(chan amqp.Delivery)
	tickets := make(chan amqp.Delivery)
	merged := mergeDeliveries(map[string]<-chan amqp.Delivery{
		KeyBookingApproved: bookings,
		KeyBookingRejected: rejected,
		KeyTicketAssigned:  tickets,
	})

	close(bookings)
	close(rejected)
	close(tickets)

	got := drainMerged(t, merged)
	assert.Empty(t, got)
}

func TestFormatAuditLine(t *testing.T) {
	booking, err := json.Marshal(BookingEvent{
		BookingID: 12, UserName: "Dana", FacilityName: "Physics Lecture Hall",
		Date: "2026-03-02", StartTime: "09:00", EndTime: "11:00",
		Reason: "double booked", OccurredAt: "2026-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	line, err := formatAuditLine(KeyBookingRejected, booking)
	require.NoError(t, err)
	assert.Contains(t, line, "booking_id=12")
	assert.Contains(t, line, `reason="double booked"`)
	assert.Contains(t, line, "slot=09:00-11:00")

	ticket, err := json.Marshal(TicketEvent{
		TicketID: 5, Title: "Projector flickers", Priority: "HIGH", AssignedName: "Sam",
		OccurredAt: "2026-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	line, err = formatAuditLine(KeyTicketAssigned, ticket)
	require.NoError(t, err)
	assert.Contains(t, line, "ticket_id=5")
	assert.Contains(t, line, `technician="Sam"`)

	_, err = formatAuditLine("booking.created", booking)
	assert.Error(t, err)
}
