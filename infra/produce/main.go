package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	ResourceEvents *ResourceEventService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	resourceEvents := InitResourceEventService(channel)
	if resourceEvents == nil {
		panic("Failed to initialize Resource Event service")
	}

	produceInstance = &Produce{
		ResourceEvents: resourceEvents,
	}

	return produceInstance
}

func GetProduce() *Produce {
	if produceInstance == nil {
		panic("Produce not initialized. Call InitProduce() first.")
	}
	return produceInstance
}
