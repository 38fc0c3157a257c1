package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	ImportService *ImportProduceService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	importService := InitImportProduceService(channel)
	if importService == nil {
		panic("Failed to initialize Import produce service")
	}

	produceInstance = &Produce{
		ImportService: importService,
	}

	return produceInstance
}
