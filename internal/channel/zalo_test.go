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

func testContent() Content {
	return Content{
		RecordID: "ad-1",
		Name:     "An",
		Mobile:   "0901112222",
		Address:  "Quận 7",
		Body:     "Bán căn hộ 2PN",
		PhotoID:  "photo-9",
	}
}

func TestArticleClientPublish(t *testing.T) {
	var gotPath, gotToken string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("access_token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":0,"data":{"article_id":"art-77"}}`))
	}))
	defer ts.Close()

	client := NewArticleClient(&config.ZaloConfig{AccessToken: "tok", BaseURL: ts.URL}, zap.NewNop())

	result, err := client.Publish(context.Background(), testContent())
	require.NoError(t, err)

	assert.Equal(t, "/v2.0/oa/article/create", gotPath)
	assert.Equal(t, "tok", gotToken)
	assert.Equal(t, "An - Quận 7", gotBody["title"])
	assert.Equal(t, "photo", gotBody["cover_type"])
	assert.Equal(t, "art-77", result.PublishID)
	assert.JSONEq(t, `{"error":0,"data":{"article_id":"art-77"}}`, string(result.Raw))
}

func TestArticleClientTextCoverWithoutPhoto(t *testing.T) {
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"data":{"article_id":"art-1"}}`))
	}))
	defer ts.Close()

	client := NewArticleClient(&config.ZaloConfig{AccessToken: "tok", BaseURL: ts.URL}, zap.NewNop())
	content := testContent()
	content.PhotoID = ""

	_, err := client.Publish(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, "text", gotBody["cover_type"])
	assert.NotContains(t, gotBody, "cover_photo")
}

func TestArticleClientRemoteFailureKeepsPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":-124,"message":"token expired"}`))
	}))
	defer ts.Close()

	client := NewArticleClient(&config.ZaloConfig{AccessToken: "tok", BaseURL: ts.URL}, zap.NewNop())

	result, err := client.Publish(context.Background(), testContent())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrChannelUnavailable)
	// The failure payload is still returned so it can be audited
	require.NotNil(t, result)
	assert.JSONEq(t, `{"error":-124,"message":"token expired"}`, string(result.Raw))
}

func TestMessageClientPublish(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"data":{"msg_id":"msg-5"}}`))
	}))
	defer ts.Close()

	client := NewMessageClient(&config.ZaloConfig{AccessToken: "tok", BaseURL: ts.URL}, zap.NewNop())
	content := testContent()
	content.RecipientID = "user-3"

	result, err := client.Publish(context.Background(), content)
	require.NoError(t, err)

	assert.Equal(t, "/v3.0/oa/message/cs", gotPath)
	recipient := gotBody["recipient"].(map[string]any)
	assert.Equal(t, "user-3", recipient["user_id"])
	message := gotBody["message"].(map[string]any)
	assert.Equal(t, "Bán căn hộ 2PN\nLiên hệ: 0901112222", message["text"])
	assert.Equal(t, "msg-5", result.PublishID)
}

func TestMessageClientRequiresRecipient(t *testing.T) {
	client := NewMessageClient(&config.ZaloConfig{AccessToken: "tok", BaseURL: "http://unused"}, zap.NewNop())

	_, err := client.Publish(context.Background(), testContent())

	assert.Error(t, err)
}

