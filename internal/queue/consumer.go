package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// auditQueues lists the queues the consumer drains into the audit log.
var auditQueues = []string{KeyBookingApproved, KeyBookingRejected, KeyTicketAssigned}

// StartAuditConsumer connects to RabbitMQ, declares the booking and
// ticket event queues (durable), and appends each message to
// logs/audit.log in a single-line, human-friendly format.  The function
// runs a reconnect loop with exponential backoff and never returns under
// normal operation; failed messages are rejected without requeue so the
// server keeps operating.
func StartAuditConsumer() error {
	url := BrokerURL()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("audit-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("audit-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("audit-consumer: set QoS failed: %v", err)
	}

	sources := make(map[string]<-chan amqp.Delivery, len(auditQueues))
	for _, name := range auditQueues {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
		msgs, err := ch.Consume(name, "", false, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("queue consume %s: %w", name, err)
		}
		sources[name] = msgs
	}

	for d := range mergeDeliveries(sources) {
		if err := handleMessage(d.RoutingKey, d.Body); err != nil {
			log.Printf("audit-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// mergeDeliveries fans several queue subscriptions into one channel,
// stamping each delivery with its queue name.  The merged channel closes
// once every source channel has closed, which is what lets consumeLoop
// return after a broker disconnect and the caller reconnect.
func mergeDeliveries(sources map[string]<-chan amqp.Delivery) <-chan amqp.Delivery {
	out := make(chan amqp.Delivery)
	var wg sync.WaitGroup
	for name, in := range sources {
		wg.Add(1)
		go func(key string, in <-chan amqp.Delivery) {
			defer wg.Done()
			for d := range in {
				d.RoutingKey = key
				out <- d
			}
		}(name, in)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

func handleMessage(key string, body []byte) error {
	line, err := formatAuditLine(key, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(filepath.Join("logs", "audit.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatAuditLine(key string, body []byte) (string, error) {
	switch key {
	case KeyBookingApproved, KeyBookingRejected:
		var ev BookingEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		line := fmt.Sprintf("[%s] %s | booking_id=%d | user=%q | facility=%q | date=%s | slot=%s-%s",
			ev.OccurredAt, key, ev.BookingID, ev.UserName, ev.FacilityName, ev.Date, ev.StartTime, ev.EndTime)
		if ev.Reason != "" {
			line += fmt.Sprintf(" | reason=%q", ev.Reason)
		}
		return line + "\n", nil
	case KeyTicketAssigned:
		var ev TicketEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("[%s] %s | ticket_id=%d | title=%q | priority=%s | technician=%q\n",
			ev.OccurredAt, key, ev.TicketID, ev.Title, ev.Priority, ev.AssignedName), nil
	}
	return "", fmt.Errorf("unknown routing key %q", key)
}
