package produce

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	BucketlistExchange          = "bucketlist.exchange"
	BucketlistCreatedQueue      = "bucketlist.created"
	BucketlistCreatedRoutingKey = "bucketlist.created"
	BucketlistDeletedQueue      = "bucketlist.deleted"
	BucketlistDeletedRoutingKey = "bucketlist.deleted"
)

type BucketlistService struct {
	channel *amqp.Channel
}

type BucketlistCreatedMessage struct {
	UserID       uint   `json:"user_id"`
	BucketlistID uint   `json:"bucketlist_id"`
	Name         string `json:"name"`
	Timestamp    int64  `json:"timestamp"`
}

type BucketlistDeletedMessage struct {
	UserID       uint   `json:"user_id"`
	BucketlistID uint   `json:"bucketlist_id"`
	Name         string `json:"name"`
	ItemsRemoved int64  `json:"items_removed"`
	Timestamp    int64  `json:"timestamp"`
}

func InitBucketlistService(channel *amqp.Channel) *BucketlistService {
	service := &BucketlistService{
		channel: channel,
	}

	err := channel.ExchangeDeclare(
		BucketlistExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		panic("Failed to declare Bucketlist exchange: " + err.Error())
	}

	for queue, routingKey := range map[string]string{
		BucketlistCreatedQueue: BucketlistCreatedRoutingKey,
		BucketlistDeletedQueue: BucketlistDeletedRoutingKey,
	} {
		_, err = channel.QueueDeclare(
			queue,
			true,  // durable
			false, // auto-delete
			false, // exclusive
			false, // no-wait
			nil,
		)
		if err != nil {
			panic("Failed to declare queue " + queue + ": " + err.Error())
		}

		err = channel.QueueBind(
			queue,
			routingKey,
			BucketlistExchange,
			false,
			nil,
		)
		if err != nil {
			panic("Failed to bind queue " + queue + ": " + err.Error())
		}
	}

	return service
}

func (s *BucketlistService) PublishBucketlistCreated(ctx context.Context, userID, bucketlistID uint, name string) error {
	return s.publish(ctx, BucketlistCreatedRoutingKey, BucketlistCreatedMessage{
		UserID:       userID,
		BucketlistID: bucketlistID,
		Name:         name,
		Timestamp:    time.Now().Unix(),
	})
}

func (s *BucketlistService) PublishBucketlistDeleted(ctx context.Context, userID, bucketlistID uint, name string, itemsRemoved int64) error {
	return s.publish(ctx, BucketlistDeletedRoutingKey, BucketlistDeletedMessage{
		UserID:       userID,
		BucketlistID: bucketlistID,
		Name:         name,
		ItemsRemoved: itemsRemoved,
		Timestamp:    time.Now().Unix(),
	})
}

func (s *BucketlistService) publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return s.channel.PublishWithContext(
		ctx,
		BucketlistExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
