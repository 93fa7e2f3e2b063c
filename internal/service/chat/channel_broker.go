package chat

import (
	"sync"

	"chitchat_server/pkg/constants"
	"chitchat_server/pkg/errorx"
)

// ChannelBroker is the single-process broker: one buffered channel between
// publishers and the hub. Publish order is delivery order.
type ChannelBroker struct {
	ch     chan Event
	mu     sync.Mutex
	closed bool
}

func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{ch: make(chan Event, constants.CHANNEL_SIZE)}
}

func (b *ChannelBroker) Publish(e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errorx.New(errorx.CodeServerBusy, "event broker closed")
	}
	b.ch <- e
	return nil
}

func (b *ChannelBroker) Events() <-chan Event {
	return b.ch
}

func (b *ChannelBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
	return nil
}
