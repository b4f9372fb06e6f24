package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStoreOptionsWithCredentials(t *testing.T) {
	opts := conversationStoreOptions("mongodb://localhost:27017", "svc", "secret")

	require.NotNil(t, opts.Auth)
	assert.Equal(t, "svc", opts.Auth.Username)
	assert.Equal(t, "secret", opts.Auth.Password)
	require.NotNil(t, opts.AppName)
	assert.Equal(t, "ecomovex-service", *opts.AppName)
	require.NotNil(t, opts.ConnectTimeout)
	assert.Equal(t, mongoConnectTimeout, *opts.ConnectTimeout)
}

func TestConversationStoreOptionsWithoutCredentials(t *testing.T) {
	opts := conversationStoreOptions("mongodb://localhost:27017", "", "")

	assert.Nil(t, opts.Auth)
}
