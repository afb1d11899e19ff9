package api

import (
	"errors"
	"io"
	"strings"
	"testing"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/spuoss/aichat/internal/errors"
	"github.com/spuoss/aichat/internal/models"
)

// fakeDoer is a scripted HTTP transport for client tests.
type fakeDoer struct {
	status  int
	body    string
	err     error
	lastReq *http.Request
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func newTestClient(t *testing.T, doer *fakeDoer) *Client {
	t.Helper()

	client, err := NewClient(WithHTTPClient(doer))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func testTranscript() []models.Message {
	return []models.Message{
		models.SystemMessage("You are a helpful assistant."),
		models.UserMessage("hi"),
	}
}

func TestClientSendSuccess(t *testing.T) {
	doer := &fakeDoer{
		status: http.StatusOK,
		body:   `{"choices":[{"message":{"content":"hello!"}}]}`,
	}
	client := newTestClient(t, doer)

	reply, err := client.Send("OpenAI", "sk-test", testTranscript())
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "hello!" {
		t.Errorf("reply = %q, want %q", reply, "hello!")
	}
	if doer.lastReq == nil {
		t.Fatal("Expected a request to be made")
	}
	if got := doer.lastReq.Header.Get("Authorization"); got != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want Bearer sk-test", got)
	}
}

func TestClientSendUnknownProvider(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: "{}"}
	client := newTestClient(t, doer)

	_, err := client.Send("NotAProvider", "sk-test", testTranscript())
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !apierrors.IsConfigError(err) {
		t.Errorf("Expected ConfigError, got %T: %v", err, err)
	}
	if !errors.Is(err, apierrors.ErrUnknownProvider) {
		t.Errorf("Expected error to match ErrUnknownProvider, got %v", err)
	}
	if doer.lastReq != nil {
		t.Error("No network call should be made for an unknown provider")
	}
}

func TestClientSendMissingKey(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: "{}"}
	client := newTestClient(t, doer)

	_, err := client.Send("OpenAI", "", testTranscript())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
	if !errors.Is(err, apierrors.ErrMissingAPIKey) {
		t.Errorf("Expected error to match ErrMissingAPIKey, got %v", err)
	}
	if doer.lastReq != nil {
		t.Error("No network call should be made without an API key")
	}
}

func TestClientSendHTTPFailureSurfacesStatusAndBody(t *testing.T) {
	doer := &fakeDoer{status: 403, body: "forbidden"}
	client := newTestClient(t, doer)

	_, err := client.Send("OpenAI", "sk-test", testTranscript())
	if err == nil {
		t.Fatal("Expected error for 403 response")
	}

	// The failure text carries the status and raw body verbatim
	if err.Error() != "Error 403: forbidden" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Error 403: forbidden")
	}
	if got := apierrors.GetHTTPStatus(err); got != 403 {
		t.Errorf("GetHTTPStatus = %d, want 403", got)
	}
	if got := apierrors.GetResponseBody(err); got != "forbidden" {
		t.Errorf("GetResponseBody = %q, want forbidden", got)
	}
}

func TestClientSendTransportError(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	doer := &fakeDoer{err: cause}
	client := newTestClient(t, doer)

	_, err := client.Send("OpenAI", "sk-test", testTranscript())
	if err == nil {
		t.Fatal("Expected error for transport failure")
	}
	if !apierrors.IsNetworkError(err) {
		t.Errorf("Expected NetworkError, got %T: %v", err, err)
	}
	// The stringified cause surfaces verbatim
	if err.Error() != cause.Error() {
		t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
	}
	if got := apierrors.GetEndpoint(err); got == "" {
		t.Error("Expected endpoint in NetworkError")
	}
}

func TestClientSendGoogleStyle(t *testing.T) {
	doer := &fakeDoer{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"parts":[{"text":"oi"}]}}]}`,
	}
	client := newTestClient(t, doer)

	reply, err := client.Send("Gemini (Google)", "key-123", testTranscript())
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if reply != "oi" {
		t.Errorf("reply = %q, want %q", reply, "oi")
	}
	if got := doer.lastReq.URL.Query().Get("key"); got != "key-123" {
		t.Errorf("key query param = %q, want key-123", got)
	}
}
