package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const BookEventsTopic = "book-events"

type Config struct {
	Addrs     []string `envconfig:"KAFKA_ADDRS"`
	BookTopic string   `envconfig:"KAFKA_BOOK_TOPIC"`
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool {
	for _, addr := range c.Addrs {
		if addr != "" {
			return true
		}
	}
	return false
}

func (c Config) Topic() string {
	if c.BookTopic == "" {
		return BookEventsTopic
	}
	return c.BookTopic
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Addrs, ProducerConfig())
}

func ProducerConfig() *sarama.Config {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Timeout = 5 * time.Second
	defaultCfg.Producer.Retry.Max = 0
	defaultCfg.Metadata.Timeout = 5 * time.Second

	return defaultCfg
}
