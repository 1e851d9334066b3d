package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartNotifyConsumer connects to RabbitMQ, declares the durable
// reservation.notify queue and consumes it, delivering one mail per
// event through the given Mailer. It runs a reconnect loop with
// exponential backoff and keeps running for the life of the process;
// processing errors are logged and the offending message rejected
// without requeue so a poison event cannot wedge the worker.
func StartNotifyConsumer(mailer Mailer) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL())
		if err != nil {
			log.Printf("notify-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, mailer); err != nil {
			log.Printf("notify-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, mailer Mailer) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Printf("notify-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(notifyQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(notifyQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, mailer); err != nil {
			log.Printf("notify-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte, mailer Mailer) error {
	var ev NotificationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	subject, text := RenderMail(ev)
	if err := mailer.Send(ev.Email, subject, text); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// RenderMail builds the subject and body for a notification event.
// Unknown kinds render as a generic update so old messages from a
// newer producer still get delivered.
func RenderMail(ev NotificationEvent) (subject, body string) {
	switch ev.Kind {
	case KindReservationConfirmed:
		subject = "[SpaceBook] Your reservation is confirmed"
	case KindReservationCancelled:
		subject = "[SpaceBook] Your reservation has been cancelled"
	default:
		subject = "[SpaceBook] Reservation update"
	}
	body = fmt.Sprintf(
		"Hello from SpaceBook.\n\n"+
			"Space:  %s\n"+
			"Time:   %s - %s\n"+
			"People: %d\n"+
			"Total:  %d\n\n"+
			"Thank you for using SpaceBook.",
		ev.SpaceName,
		ev.StartTime.Format("2006-01-02 15:04"), ev.EndTime.Format("2006-01-02 15:04"),
		ev.PeopleCount, ev.TotalPrice)
	return subject, body
}
