package fcm

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// MaxTopicBatch is the largest token batch FCM accepts per topic management call
const MaxTopicBatch = 1000

// Client wraps Firebase Cloud Messaging topic management
type Client struct {
	messagingClient *messaging.Client
}

// NewClient creates a new FCM client using the provided credentials file
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	messagingClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	log.Println("[FCM] Client initialized successfully")
	return &Client{
		messagingClient: messagingClient,
	}, nil
}

// TopicResult summarizes a topic management call
type TopicResult struct {
	SuccessCount int
	FailureCount int
	// Reasons holds one entry per failed token, in token order
	Reasons []string
}

// SubscribeToTopic adds tokens to a topic. len(tokens) must not exceed MaxTopicBatch.
func (c *Client) SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*TopicResult, error) {
	resp, err := c.messagingClient.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to topic %s: %w", topic, err)
	}
	log.Printf("[FCM] Subscribed to %s: %d success, %d failures", topic, resp.SuccessCount, resp.FailureCount)
	return toTopicResult(resp), nil
}

// UnsubscribeFromTopic removes tokens from a topic. len(tokens) must not exceed MaxTopicBatch.
func (c *Client) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*TopicResult, error) {
	resp, err := c.messagingClient.UnsubscribeFromTopic(ctx, tokens, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to unsubscribe from topic %s: %w", topic, err)
	}
	log.Printf("[FCM] Unsubscribed from %s: %d success, %d failures", topic, resp.SuccessCount, resp.FailureCount)
	return toTopicResult(resp), nil
}

func toTopicResult(resp *messaging.TopicManagementResponse) *TopicResult {
	result := &TopicResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}
	for _, e := range resp.Errors {
		result.Reasons = append(result.Reasons, e.Reason)
	}
	return result
}
