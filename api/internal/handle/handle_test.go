package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"tutor-proxy/api/internal/llm"
	"tutor-proxy/api/internal/tutor"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// scripted replies by prompt substring; unmatched prompts get "".
type scripted struct {
	name    string
	replies map[string]string
	err     error
	seen    chan time.Time
}

func (s *scripted) Name() string     { return s.name }
func (s *scripted) GetModel() string { return "test" }

func (s *scripted) Generate(ctx context.Context, in llm.Request) (string, error) {
	if s.seen != nil {
		if dl, ok := ctx.Deadline(); ok {
			s.seen <- dl
		}
	}
	if s.err != nil {
		return "", s.err
	}
	for k, v := range s.replies {
		if strings.Contains(in.Prompt, k) {
			return v, nil
		}
	}
	return "", nil
}

func newServer(t *testing.T, engs ...llm.Engine) *httptest.Server {
	t.Helper()
	pool, err := tutor.NewPool(llm.NewEngines("gemini", engs...))
	require.NoError(t, err)
	mux := http.NewServeMux()
	New(pool, 0, zaptest.NewLogger(t)).Routes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string, hdr map[string]string) (*http.Response, map[string]string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/ask", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func mathEngine(name string) *scripted {
	return &scripted{name: name, replies: map[string]string{
		"Classify the subject":                 "math",
		"calculator tool":                      `{"needs_calculator": true, "expression": "2+5*3"}`,
		"helpful math tutor. The question was": "The answer is 17.",
	}}
}

func TestAsk_OK(t *testing.T) {
	srv := newServer(t, mathEngine("gemini"))

	resp, out := post(t, srv, `{"query": "What is 2 + 5 * 3?"}`, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
	assert.Equal(t, map[string]string{"answer": "The answer is 17.", "subject": "math"}, out)
}

func TestAsk_PicksEngine(t *testing.T) {
	gpt := mathEngine("gpt")
	gpt.replies["helpful math tutor. The question was"] = "from gpt"
	srv := newServer(t, mathEngine("gemini"), gpt)

	resp, out := post(t, srv, `{"query": "2+5*3?", "llm_name": "openai"}`, map[string]string{"X-Request-Id": "abc"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc", resp.Header.Get("X-Request-Id"))
	assert.Equal(t, "from gpt", out["answer"])
}

func TestAsk_BadRequest(t *testing.T) {
	srv := newServer(t, mathEngine("gemini"))

	for name, body := range map[string]string{
		"bad json":       `{"query":`,
		"empty query":    `{"query": "   "}`,
		"missing query":  `{}`,
		"unknown engine": `{"query": "hi", "llm_name": "claude"}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp, out := post(t, srv, body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, out["detail"])
		})
	}
}

func TestAsk_CollaboratorFailure(t *testing.T) {
	srv := newServer(t, &scripted{name: "gemini", err: errors.New("quota exceeded")})

	resp, out := post(t, srv, `{"query": "What is 2 + 2?"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, out["detail"], "quota exceeded")
}

func TestAsk_MethodNotAllowed(t *testing.T) {
	srv := newServer(t, mathEngine("gemini"))

	resp, err := srv.Client().Get(srv.URL + "/ask")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAsk_RequestTimeoutHeader(t *testing.T) {
	eng := &scripted{name: "gemini", replies: map[string]string{"Classify the subject": "biology"}, seen: make(chan time.Time, 4)}
	srv := newServer(t, eng)

	start := time.Now()
	resp, _ := post(t, srv, `{"query": "hi"}`, map[string]string{"X-Request-Timeout": "5"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	dl := <-eng.seen
	assert.WithinDuration(t, start.Add(5*time.Second), dl, 2*time.Second)

	start = time.Now()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/ask?timeoutSec=9", strings.NewReader(`{"query": "hi"}`))
	require.NoError(t, err)
	resp, err = srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	dl = <-eng.seen
	assert.WithinDuration(t, start.Add(9*time.Second), dl, 2*time.Second)
}

func TestHealth(t *testing.T) {
	srv := newServer(t, mathEngine("gemini"))

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, map[string]string{"status": "healthy"}, out)

	rec := httptest.NewRecorder()
	New(nil, 0, nil).Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok", rec.Body.String())
}
