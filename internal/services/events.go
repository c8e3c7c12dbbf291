package services

// Event names published to the message broker.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventOrderCreated   = "order.created"
)

// EventPublisher publishes inventory events to a message broker.
// Implemented by pkg/rabbitmq.Client; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(event string, payload interface{}) error
}
