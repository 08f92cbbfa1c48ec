package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
	"github.com/yildizm/sentimoji/internal/ai"
	"github.com/yildizm/sentimoji/internal/formatter"
	"github.com/yildizm/sentimoji/internal/monitor"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

type fakeClassifier struct {
	result     ai.Classifications
	err        error
	missingKey bool
	calls      int32
	started    chan struct{}
	release    chan struct{}
}

func (f *fakeClassifier) Name() string  { return "fake" }
func (f *fakeClassifier) Model() string { return "fake/model" }
func (f *fakeClassifier) Close() error  { return nil }

func (f *fakeClassifier) ValidateConfig() error {
	if f.missingKey {
		return ai.NewCredentialMissingError("fake")
	}
	return nil
}

func (f *fakeClassifier) Classify(ctx context.Context, req *ai.AnalysisRequest) (ai.Classifications, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func newTestRouter(classifier ai.Classifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	client := sentiment.NewClient(classifier, nil)
	return NewRouter(client, sentiment.NewSession(client), Options{AllowedOrigins: []string{"http://localhost:3000"}}, nil)
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, text string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	form := url.Values{"text": {text}}
	req := httptest.NewRequest("POST", "/analyze", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestIndex_Idle(t *testing.T) {
	r := newTestRouter(&fakeClassifier{})

	w := get(r, "/")
	body := w.Body.String()

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(body, "Sentiment Analyzer👋"))
	assert.Equal(t, true, strings.Contains(body, "Sentiment Rating Scale:"))
	assert.Equal(t, true, strings.Contains(body, `<button type="submit">Analyze</button>`))
	assert.Equal(t, false, strings.Contains(body, `class="bubble"`))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestAPIAnalyze_Success(t *testing.T) {
	fake := &fakeClassifier{result: ai.Classifications{{Label: "1 star", Score: 0.6}, {Label: "2 stars", Score: 0.3}}}
	r := newTestRouter(fake)

	w := postJSON(r, "/api/analyze", `{"text":"this is awful"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var res formatter.AnalysisOutput
	err := json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, nil, err)
	assert.Equal(t, "1 star", res.Label)
	assert.Equal(t, "😢", res.Emoji)
	assert.Equal(t, "Worst", res.Tier)
	assert.Equal(t, 2, len(res.Candidates))
	assert.NotEqual(t, "", res.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.calls))
}

func TestAPIAnalyze_EmptyText(t *testing.T) {
	fake := &fakeClassifier{}
	r := newTestRouter(fake)

	w := postJSON(r, "/api/analyze", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var res map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, ai.EmptyInputMessage, res["error"])
	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.calls))
}

func TestAPIAnalyze_MissingCredential(t *testing.T) {
	fake := &fakeClassifier{missingKey: true}
	r := newTestRouter(fake)

	w := postJSON(r, "/api/analyze", `{"text":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var res map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, ai.CredentialMissingMessage, res["error"])
	assert.Equal(t, int32(0), atomic.LoadInt32(&fake.calls))
}

func TestAPIAnalyze_RemoteError(t *testing.T) {
	fake := &fakeClassifier{err: ai.NewProviderError(ai.ErrTypeAuthentication, "Invalid credentials", "fake")}
	r := newTestRouter(fake)

	w := postJSON(r, "/api/analyze", `{"text":"hello"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var res map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Please Refresh: Invalid credentials", res["error"])
}

func TestAPIAnalyze_BadBody(t *testing.T) {
	r := newTestRouter(&fakeClassifier{})

	w := postJSON(r, "/api/analyze", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAPIAnalyze_InFlight(t *testing.T) {
	fake := &fakeClassifier{
		result:  ai.Classifications{{Label: "3 stars", Score: 0.5}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := newTestRouter(fake)

	done := make(chan *httptest.ResponseRecorder)
	go func() {
		done <- postJSON(r, "/api/analyze", `{"text":"first"}`)
	}()
	<-fake.started

	state := get(r, "/api/state")
	var st StateResponse
	_ = json.Unmarshal(state.Body.Bytes(), &st)
	assert.Equal(t, "loading", st.Phase)

	second := postJSON(r, "/api/analyze", `{"text":"second"}`)
	assert.Equal(t, http.StatusConflict, second.Code)

	page := get(r, "/")
	assert.Equal(t, true, strings.Contains(page.Body.String(), "disabled>Analyzing...</button>"))

	close(fake.release)
	first := <-done
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.calls))
}

func TestFormAnalyze(t *testing.T) {
	fake := &fakeClassifier{result: ai.Classifications{{Label: "5 stars", Score: 0.95}}}
	r := newTestRouter(fake)

	w := postForm(r, "Best day ever")
	body := w.Body.String()

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(body, `class="bubble"`))
	assert.Equal(t, true, strings.Contains(body, "😄"))
	assert.Equal(t, true, strings.Contains(body, "Best day ever"))
}

func TestFormAnalyze_EmptyText(t *testing.T) {
	r := newTestRouter(&fakeClassifier{})

	w := postForm(r, "")
	body := w.Body.String()

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, true, strings.Contains(body, ai.EmptyInputMessage))
	assert.Equal(t, false, strings.Contains(body, `class="bubble"`))
}

func TestState_AfterError(t *testing.T) {
	r := newTestRouter(&fakeClassifier{err: ai.NewProviderError(ai.ErrTypeTimeout, "request timed out", "fake")})

	postJSON(r, "/api/analyze", `{"text":"hi"}`)

	w := get(r, "/api/state")
	var st StateResponse
	_ = json.Unmarshal(w.Body.Bytes(), &st)

	assert.Equal(t, "error", st.Phase)
	assert.Equal(t, "hi", st.Input)
	assert.Equal(t, "Please Refresh: request timed out", st.Error)
	assert.Equal(t, true, st.Result == nil)
}

func TestLegend(t *testing.T) {
	r := newTestRouter(&fakeClassifier{})

	w := get(r, "/api/legend")
	assert.Equal(t, http.StatusOK, w.Code)

	var legend []formatter.TierOutput
	_ = json.Unmarshal(w.Body.Bytes(), &legend)
	assert.Equal(t, 5, len(legend))
	assert.Equal(t, "Worst", legend[0].Label)
	assert.Equal(t, "😄", legend[4].Emoji)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		missingKey bool
		status     string
	}{
		{"configured", false, "ok"},
		{"no credential", true, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&fakeClassifier{missingKey: tt.missingKey})

			w := get(r, "/health")
			assert.Equal(t, http.StatusOK, w.Code)

			var res HealthResponse
			_ = json.Unmarshal(w.Body.Bytes(), &res)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, "fake/model", res.Model)
			assert.Equal(t, !tt.missingKey, res.Credential)
		})
	}
}

func TestCORS(t *testing.T) {
	r := newTestRouter(&fakeClassifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/legend", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stats := monitor.NewStats()
	fake := &fakeClassifier{result: ai.Classifications{{Label: "4 stars", Score: 0.8}}}
	client := sentiment.NewClient(fake, nil).WithRecorder(stats)
	r := NewRouter(client, sentiment.NewSession(client), Options{Stats: stats}, nil)

	postJSON(r, "/api/analyze", `{"text":"pretty good"}`)
	postJSON(r, "/api/analyze", `{"text":"  "}`)

	w := get(r, "/api/stats")
	assert.Equal(t, http.StatusOK, w.Code)

	var snap monitor.StatsSnapshot
	_ = json.Unmarshal(w.Body.Bytes(), &snap)
	assert.Equal(t, int64(2), snap.Total)
	assert.Equal(t, int64(1), snap.Tiers["4_stars"])
	assert.Equal(t, int64(1), snap.Failures["validation"])
}

func TestStats_NotMounted(t *testing.T) {
	r := newTestRouter(&fakeClassifier{})

	w := get(r, "/api/stats")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIAnalyze_ClientGoesAway(t *testing.T) {
	fake := &fakeClassifier{
		result:  ai.Classifications{{Label: "4 stars", Score: 0.8}},
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	r := newTestRouter(fake)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan *httptest.ResponseRecorder)
	go func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"text":"I love this!"}`)).WithContext(ctx)
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		done <- w
	}()
	<-fake.started

	cancel()
	close(fake.release)
	<-done

	w := get(r, "/api/state")
	var st StateResponse
	_ = json.Unmarshal(w.Body.Bytes(), &st)
	assert.Equal(t, "success", st.Phase)
	assert.Equal(t, "", st.Error)
	assert.Equal(t, "I love this!", st.Input)
}
