// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"csupport-chat-be/internal/dto"
	"csupport-chat-be/internal/repository/ephemeral"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	state     ephemeral.StateStore
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	state ephemeral.StateStore,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		state:     state,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.SuggestionClickMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal suggestion click: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if payload.Question == "" {
		msg.Ack()
		return
	}

	if err := cs.state.IncrementSuggestionClick(ctx, payload.Question); err != nil {
		log.Printf("[ERROR] Failed to count suggestion click: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
