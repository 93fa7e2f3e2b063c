package chat

import (
	"chitchat_server/internal/config"
	"chitchat_server/pkg/errorx"
)

// Broker transports events from publishers to the hub. Events for the same
// room come out of Events in publish order; ordering across rooms is not
// guaranteed.
type Broker interface {
	Publisher
	Events() <-chan Event
	Close() error
}

// NewBroker selects the broker implementation from config: "channel" keeps
// everything in-process, "kafka" goes through a topic keyed by room id.
func NewBroker(cfg *config.Config) (Broker, error) {
	switch cfg.KafkaConfig.EventMode {
	case "channel", "":
		return NewChannelBroker(), nil
	case "kafka":
		return NewKafkaBroker(cfg.KafkaConfig)
	default:
		return nil, errorx.Newf(errorx.CodeInvalidParam, "unknown event mode %q", cfg.KafkaConfig.EventMode)
	}
}
