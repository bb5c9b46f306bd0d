package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPayload struct {
	From             sgAddress  `json:"from"`
	ReplyTo          *sgAddress `json:"reply_to"`
	Personalizations []struct {
		To      []sgAddress `json:"to"`
		Subject string      `json:"subject"`
	} `json:"personalizations"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func TestSendGridSender_Send(t *testing.T) {
	var got sgPayload
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("X-Message-Id", "msg-1")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	msg, err := AdminNotification("noreply@prateekhakay.com", "prateek@edoflip.com", sampleData())
	require.NoError(t, err)

	receipt, err := NewSendGridSender("SG.test", srv.URL).Send(context.Background(), msg)
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, receipt.StatusCode)
	assert.Equal(t, "msg-1", receipt.MessageID)
	assert.Equal(t, "/v3/mail/send", path)
	assert.Equal(t, "Bearer SG.test", auth)

	assert.Equal(t, "noreply@prateekhakay.com", got.From.Email)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "jane@example.com", got.ReplyTo.Email)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "prateek@edoflip.com", got.Personalizations[0].To[0].Email)
	assert.Equal(t, "New contact form submission from Jane Doe", got.Personalizations[0].Subject)
	require.Len(t, got.Content, 2)
	assert.Equal(t, "text/plain", got.Content[0].Type)
	assert.Equal(t, "text/html", got.Content[1].Type)
}

func TestSendGridSender_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"The provided authorization grant is invalid"}]}`))
	}))
	defer srv.Close()

	msg, _ := Acknowledgment("f@x.com", sampleData())
	_, err := NewSendGridSender("bad", srv.URL).Send(context.Background(), msg)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
	assert.Contains(t, perr.Body, "authorization grant")
	assert.NotContains(t, err.Error(), "authorization grant")
}
