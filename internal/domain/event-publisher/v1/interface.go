package eventpublisherv1

import "context"

// EventPublisher defines the interface for broadcasting engine events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventpublisherv1_mock
type EventPublisher interface {
	// Publish sends an event to the outbound stream.
	Publish(ctx context.Context, event *Event) error
}
