package sheet

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

func newTestClient(ts *httptest.Server) *Client {
	return &Client{
		client:        ts.Client(),
		baseURL:       ts.URL,
		spreadsheetID: "sheet-1",
		logger:        zap.NewNop(),
	}
}

func TestClientGet(t *testing.T) {
	var gotPath string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"range":"Listings!A2:AD4","values":[["An","0901"],["Bình"]]}`))
	}))
	defer ts.Close()

	rows, err := newTestClient(ts).Get(context.Background(), "Listings!A2:AD")
	require.NoError(t, err)

	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Listings!A2:AD", gotPath)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"An", "0901"}, rows[0])
}

func TestClientGetEmptyRange(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No values key at all when the range is empty
		w.Write([]byte(`{"range":"Listings!A2:AD"}`))
	}))
	defer ts.Close()

	rows, err := newTestClient(ts).Get(context.Background(), "Listings!A2:AD")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClientAppendInputOption(t *testing.T) {
	var gotQuery map[string][]string
	var gotBody map[string][][]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	err := newTestClient(ts).Append(context.Background(), "Listings!A2:AD", []string{"An"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"USER_ENTERED"}, gotQuery["valueInputOption"])
	assert.Equal(t, []string{"INSERT_ROWS"}, gotQuery["insertDataOption"])
	assert.Equal(t, [][]string{{"An"}}, gotBody["values"])
}

func TestClientUpdateRawInputOption(t *testing.T) {
	var gotMethod string
	var gotQuery map[string][]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	err := newTestClient(ts).Update(context.Background(), "Listings!A5:AD5", [][]string{{"x"}}, false)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, []string{"RAW"}, gotQuery["valueInputOption"])
}

func TestClientRemoteErrorWrapsStoreUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"status":"UNAVAILABLE"}}`))
	}))
	defer ts.Close()

	_, err := newTestClient(ts).Get(context.Background(), "Listings!A2:AD")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	err = newTestClient(ts).Clear(context.Background(), "Listings!A9:AD9")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewClientValidatesCredentials(t *testing.T) {
	_, err := NewClient(&config.SheetConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = NewClient(&config.SheetConfig{
		SpreadsheetID: "sheet-1",
		ClientEmail:   "svc@project.iam.gserviceaccount.com",
		PrivateKey:    "not a pem block",
	}, zap.NewNop())
	assert.ErrorIs(t, err, ErrMissingCredentials)
}
