package produce

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

type Produce struct {
	FileEvent *FileEventProduce
}

func InitProduce(channel *amqp.Channel, queue string) *Produce {
	fileEvent, err := NewFileEventProduce(channel, queue)
	if err != nil {
		panic("Failed to initialize file event producer: " + err.Error())
	}

	return &Produce{
		FileEvent: fileEvent,
	}
}
