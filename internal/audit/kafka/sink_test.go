package kafka

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSinkRequiresBrokers(t *testing.T) {
	_, err := NewSink(nil, "audit", slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "at least one broker")
}
