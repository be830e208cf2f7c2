package messaging

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

func DeclareBindAndConsume(ch *amqp.Channel, prefix string, topic ChangeTopic) (<-chan amqp.Delivery, error) {
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, err
	}
	err = ch.QueueBind(q.Name, name, name, false, nil)
	if err != nil {
		return nil, err
	}
	return ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
}

// ListenToTopic runs handler for every delivery on the topic. The handler owns
// all failure handling (retry is expressed as re-publish, never redelivery),
// so every delivery is acked once the handler returns and the consume loop
// never stops on a bad message.
func ListenToTopic(ch *amqp.Channel, prefix string, topic ChangeTopic, handler func(body []byte)) error {
	fc, err := DeclareBindAndConsume(ch, prefix, topic)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			handler(d.Body)
			if err := d.Ack(false); err != nil {
				log.Printf("Error acking message: %v", err)
			}
		}
	}(fc)
	return nil
}
