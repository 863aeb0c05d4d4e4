package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewESClient(t *testing.T) {
	_, err := NewESClient(nil, "", "")
	assert.Error(t, err)

	es, err := NewESClient([]string{"http://localhost:9200"}, "elastic", "changeme")
	require.NoError(t, err)
	assert.NotNil(t, es)
}
