package events

// EventCollector buffers the events an aggregate raises until they are
// handed to a publisher.
type EventCollector struct {
	pending []DomainEvent
}

// Record buffers events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Drain returns the buffered events and empties the buffer, so each event
// is handed out once.
func (c *EventCollector) Drain() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
