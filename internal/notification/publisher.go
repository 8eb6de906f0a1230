package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"interest-registry/internal/subscription/domain"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// Publisher announces committed subscription changes on a Pub/Sub topic so
// downstream notifiers can reconcile their own view of each interest.
type Publisher struct {
	pubsubClient *pubsub.Client
	topic        *pubsub.Topic
	topicName    string
}

func NewPublisher(ctx context.Context, projectID, topicName, credentialsFile string, extraOpts ...option.ClientOption) (*Publisher, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, extraOpts...)

	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %v", err)
	}

	return &Publisher{
		pubsubClient: client,
		topic:        client.Topic(topicName),
		topicName:    topicName,
	}, nil
}

// EnsureTopic creates the topic when it does not exist yet
func (p *Publisher) EnsureTopic(ctx context.Context) error {
	exists, err := p.topic.Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check topic %s: %w", p.topicName, err)
	}
	log.Printf("[PubSub] Topic %s exists: %v", p.topicName, exists)
	if exists {
		return nil
	}

	topic, err := p.pubsubClient.CreateTopic(ctx, p.topicName)
	if err != nil {
		return fmt.Errorf("failed to create topic %s: %w", p.topicName, err)
	}
	p.topic = topic
	log.Printf("[PubSub] Created topic: %s", p.topicName)
	return nil
}

// Publish sends the event and waits for the server to acknowledge it
func (p *Publisher) Publish(ctx context.Context, event domain.SubscriptionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"type":     string(event.Type),
			"interest": string(event.Interest),
		},
	})
	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	log.Printf("[PubSub] Published %s event for %s (id: %s)", event.Type, event.Interest, id)
	return nil
}

// Close flushes pending messages and releases the client
func (p *Publisher) Close() error {
	p.topic.Stop()
	return p.pubsubClient.Close()
}
