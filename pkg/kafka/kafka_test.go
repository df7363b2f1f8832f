package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	var cfg Config
	require.False(t, cfg.Enabled())
	require.Equal(t, BookEventsTopic, cfg.Topic())

	cfg = Config{Addrs: []string{""}}
	require.False(t, cfg.Enabled())

	cfg = Config{Addrs: []string{"localhost:9092"}, BookTopic: "reading"}
	require.True(t, cfg.Enabled())
	require.Equal(t, "reading", cfg.Topic())
}

func TestProducerConfig(t *testing.T) {
	t.Parallel()
	cfg := ProducerConfig()

	require.NoError(t, cfg.Validate())
	require.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	require.True(t, cfg.Producer.Return.Successes)
	require.Zero(t, cfg.Producer.Retry.Max)
}
