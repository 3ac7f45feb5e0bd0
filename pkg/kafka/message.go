package kafka

import "time"

// Message is the transport-agnostic event envelope handed to the
// producer. Key selects the partition, which keeps events for one slot
// in order.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}
