package ipfs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chainclub/internal/config"
)

func TestPlaceholderPublisher(t *testing.T) {
	p := NewPlaceholderPublisher("dev")

	first, err := p.Publish(context.Background(), map[string]string{"name": "x"})
	require.NoError(t, err)
	second, err := p.Publish(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, IsPlaceholderCid(first))
	assert.True(t, IsPlaceholderCid(second))
	assert.True(t, strings.HasPrefix(first, PlaceholderCidPrefix))
}

func TestNewPublisherSelection(t *testing.T) {
	p := NewPublisher(config.IpfsConf{}, "dev")
	_, ok := p.(*PlaceholderPublisher)
	assert.True(t, ok, "empty ApiUrl must select the placeholder backend")

	p = NewPublisher(config.IpfsConf{ApiUrl: "https://ipfs.example.com:5001"}, "dev")
	_, ok = p.(*HttpPublisher)
	assert.True(t, ok, "configured ApiUrl must select the HTTP backend")
}

func TestHttpPublisherAdd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v0/add", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "project-id", user)
		assert.Equal(t, "project-secret", pass)

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		payload, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Contains(t, string(payload), "ChainClub")

		json.NewEncoder(w).Encode(addResponse{Name: "metadata.json", Hash: "QmTestHash123", Size: "42"})
	}))
	defer srv.Close()

	p := NewHttpPublisher(config.IpfsConf{
		ApiUrl:        srv.URL,
		ProjectId:     "project-id",
		ProjectSecret: "project-secret",
	})

	cid, err := p.Publish(context.Background(), map[string]string{"name": "ChainClub Membership"})
	require.NoError(t, err)
	assert.Equal(t, "QmTestHash123", cid)
}

func TestHttpPublisherBackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewHttpPublisher(config.IpfsConf{ApiUrl: srv.URL})
	_, err := p.Publish(context.Background(), map[string]string{"name": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
