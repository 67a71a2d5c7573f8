package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string, attempts int) *Client {
	c := NewClient("re_test_key", "briefing@example.com", "team@example.com",
		"cc@example.com", "", 5*time.Second, attempts, time.Millisecond)
	c.baseURL = serverURL
	return c
}

func TestSendPayload(t *testing.T) {
	var got map[string]interface{}
	var auth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	msg := Message{
		Subject:     "Test Briefing",
		HTML:        "<h1>Hallo</h1>",
		Attachments: []Attachment{{Filename: "report.html", Content: []byte("<html></html>")}},
	}
	require.NoError(t, testClient(srv.URL, 1).Send(context.Background(), msg))

	assert.Equal(t, "Bearer re_test_key", auth)
	assert.Equal(t, "briefing@example.com", got["from"])
	assert.Equal(t, []interface{}{"team@example.com"}, got["to"])
	assert.Equal(t, []interface{}{"cc@example.com"}, got["cc"])
	assert.Nil(t, got["bcc"], "empty bcc must be omitted")
	assert.Equal(t, "Test Briefing", got["subject"])

	atts, ok := got["attachments"].([]interface{})
	require.True(t, ok)
	require.Len(t, atts, 1)
	att := atts[0].(map[string]interface{})
	assert.Equal(t, "report.html", att["filename"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("<html></html>")), att["content"])
}

func TestSendRetriesTransientFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := testClient(srv.URL, 3).Send(context.Background(), Message{Subject: "x"})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestSendSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	err := testClient(srv.URL, 1).Send(context.Background(), Message{Subject: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "invalid from address")
}

func TestSplitRecipients(t *testing.T) {
	assert.Nil(t, splitRecipients(""))
	assert.Equal(t, []string{"a@x.de"}, splitRecipients("a@x.de"))
	assert.Equal(t, []string{"a@x.de", "b@x.de"}, splitRecipients(" a@x.de , b@x.de ,"))
}
