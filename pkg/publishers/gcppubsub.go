package publishers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/opttab/opttab-go/pkg/logging"
)

// gcpPubSubSender delivers events to a Google Cloud Pub/Sub topic.
type gcpPubSubSender struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	log    logging.Logger
}

func newGCPPubSubSender(ctx context.Context, cfg *GCPQueueConfig, log logging.Logger) (*gcpPubSubSender, error) {
	if cfg == nil {
		return nil, errors.New("missing gcp_pubsub configuration")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}

	return &gcpPubSubSender{
		client: client,
		topic:  client.Topic(cfg.Topic),
		log:    logging.OrNop(log),
	}, nil
}

// newGCPPubSubPublisher creates a Pub/Sub publisher with the given configuration.
func newGCPPubSubPublisher(ctx context.Context, cfg PublisherConfig, log logging.Logger) (Publisher, error) {
	if cfg.GCP == nil {
		return nil, fmt.Errorf("publisher %q missing gcp_pubsub configuration", cfg.ID)
	}
	sender, err := newGCPPubSubSender(ctx, cfg.GCP, log)
	if err != nil {
		return nil, fmt.Errorf("publisher %q: %w", cfg.ID, err)
	}
	return newQueuePublisher(cfg.ID, TypeGCPPubSub, sender), nil
}

// Send publishes the event and waits for the server acknowledgement.
func (g *gcpPubSubSender) Send(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	res := g.topic.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: evt.attributes(),
	})
	id, err := res.Get(ctx)
	if err != nil {
		g.log.ErrorObj("pubsub publisher send failed", "publisher_pubsub_error", map[string]any{
			"topic": g.topic.ID(),
			"error": err.Error(),
		})
		return fmt.Errorf("publish to pubsub: %w", err)
	}
	g.log.DebugObj("pubsub publisher delivered event", "publisher_pubsub_delivery", map[string]any{
		"topic":      g.topic.ID(),
		"message_id": id,
		"event_type": evt.Type,
	})
	return nil
}

// Close flushes pending messages and closes the client.
func (g *gcpPubSubSender) Close() error {
	g.topic.Stop()
	return g.client.Close()
}
