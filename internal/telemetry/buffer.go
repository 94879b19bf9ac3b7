package telemetry

import "log"

// queuedMsg stores one serialized MQTT message held for replay.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// outbox holds messages published while the broker is unreachable. It keeps
// at most max messages, evicting the oldest first; dropped counts evictions
// since the last drain. Callers must synchronize access.
type outbox struct {
	max     int
	pending []queuedMsg
	dropped int
}

func newOutbox(max int) *outbox {
	return &outbox{max: max}
}

// add queues a message, evicting the oldest when the outbox is full.
func (o *outbox) add(msg queuedMsg) {
	if len(o.pending) >= o.max {
		evict := len(o.pending) - o.max + 1
		if o.dropped == 0 {
			log.Printf("telemetry: outbox full (%d messages), evicting oldest", o.max)
		}
		o.dropped += evict
		o.pending = append(o.pending[:0], o.pending[evict:]...)
	}
	o.pending = append(o.pending, msg)
}

// drain returns the queued messages oldest first and empties the outbox.
func (o *outbox) drain() []queuedMsg {
	if len(o.pending) == 0 {
		return nil
	}
	if o.dropped > 0 {
		log.Printf("telemetry: %d messages were evicted while disconnected", o.dropped)
	}
	msgs := o.pending
	o.pending = nil
	o.dropped = 0
	return msgs
}

func (o *outbox) size() int {
	return len(o.pending)
}
