package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minhland/adhub/internal/config"
)

func TestFeedClientPublish(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"page_post_11"}`))
	}))
	defer ts.Close()

	client := NewFeedClient(&config.FacebookConfig{PageID: "page-1", AccessToken: "fbtok", BaseURL: ts.URL}, zap.NewNop())

	result, err := client.Publish(context.Background(), testContent())
	require.NoError(t, err)

	assert.Equal(t, "/page-1/feed", gotPath)
	assert.Equal(t, "Bearer fbtok", gotAuth)
	assert.Equal(t, "Bán căn hộ 2PN\nLiên hệ: 0901112222\nĐịa chỉ: Quận 7", gotBody["message"])
	assert.Equal(t, "page_post_11", result.PublishID)
}

func TestFeedClientRemoteFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"permission denied"}}`))
	}))
	defer ts.Close()

	client := NewFeedClient(&config.FacebookConfig{PageID: "page-1", AccessToken: "fbtok", BaseURL: ts.URL}, zap.NewNop())

	result, err := client.Publish(context.Background(), testContent())

	assert.ErrorIs(t, err, ErrChannelUnavailable)
	require.NotNil(t, result)
	assert.Contains(t, string(result.Raw), "permission denied")
}
