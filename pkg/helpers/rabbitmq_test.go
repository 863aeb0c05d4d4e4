package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilQueue(t *testing.T) {
	var q *RabbitQueue
	assert.ErrorIs(t, q.PublishJSON(context.Background(), map[string]string{}), ErrQueueClosed)
	_, err := q.Consume(1)
	assert.ErrorIs(t, err, ErrQueueClosed)
	q.Close()
}
