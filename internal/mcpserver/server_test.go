package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleQuerySuccess(t *testing.T) {
	s := New(2)
	result, _, err := s.handleQuery(context.Background(), nil, QueryParams{
			Input: `{"a":1}{"a":2}`,
			Query: ".a",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Len(t, result.Content, 1)
}

func TestHandleQueryCompileErrorReturnsToolError(t *testing.T) {
	s := New(2)
	result, _, err := s.handleQuery(context.Background(), nil, QueryParams{
			Input: `{}`,
			Query: ".a |",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestNewDefaultsLimitToNumCPU(t *testing.T) {
	s := New(0)
	require.NotNil(t, s.sem)
}
