package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	BucketlistService *BucketlistService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	bucketlistService := InitBucketlistService(channel)
	if bucketlistService == nil {
		panic("Failed to initialize Bucketlist produce service")
	}

	produceInstance = &Produce{
		BucketlistService: bucketlistService,
	}

	return produceInstance
}
