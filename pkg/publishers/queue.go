package publishers

import (
	"context"
	"io"
)

// queuePublisher adapts a Sender to the Publisher interface.
type queuePublisher struct {
	id     string
	typ    string
	sender Sender
}

func newQueuePublisher(id, typ string, sender Sender) *queuePublisher {
	return &queuePublisher{id: id, typ: typ, sender: sender}
}

func (q *queuePublisher) ID() string   { return q.id }
func (q *queuePublisher) Type() string { return q.typ }

func (q *queuePublisher) Publish(ctx context.Context, evt Event) error {
	return q.sender.Send(ctx, evt)
}

// Close releases the underlying sender's client when it holds one.
func (q *queuePublisher) Close() error {
	if c, ok := q.sender.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
