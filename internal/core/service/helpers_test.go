package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/infra/transport"
	"github.com/yndnr/tunevault-go/pkg/crypto/stripe"
	"github.com/yndnr/tunevault-go/pkg/crypto/trackkey"
)

// mockAuthenticator is a hand-written Authenticator.
type mockAuthenticator struct {
	calls int32
	delay time.Duration
	err   error
	sess  domain.Session
}

func (m *mockAuthenticator) Authenticate(ctx context.Context) (*domain.Session, error) {
	atomic.AddInt32(&m.calls, 1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return nil, m.err
	}
	sess := m.sess
	return &sess, nil
}

func (m *mockAuthenticator) Calls() int {
	return int(atomic.LoadInt32(&m.calls))
}

func newSession(privileged bool) domain.Session {
	return domain.Session{
		SessionID:    "sid-1",
		AuthToken:    "check-1",
		LicenseToken: "lic-1",
		UserID:       42,
		Privileged:   privileged,
	}
}

// staticSessions always returns the same session.
type staticSessions struct {
	sess domain.Session
	err  error
}

func (s *staticSessions) EnsureValid(context.Context) (domain.Session, error) {
	return s.sess, s.err
}

type locatorCall struct {
	licenseToken string
	assetToken   string
	enc          domain.Encoding
}

// mockLocator records SourceURL calls.
type mockLocator struct {
	mu    sync.Mutex
	calls []locatorCall
	url   string
	err   error
}

func (m *mockLocator) SourceURL(_ context.Context, licenseToken, assetToken string, enc domain.Encoding) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, locatorCall{licenseToken, assetToken, enc})
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

// mockFetcher serves payloads by URL.
type mockFetcher struct {
	payloads map[string][]byte
	err      error
}

func (m *mockFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.payloads[rawURL]
	if !ok {
		return nil, domain.ErrTransport.WithDetailsf("no payload for %s", rawURL)
	}
	return data, nil
}

func sizes(mp3320, mp3256, mp3128, flac int64) map[domain.Encoding]int64 {
	return map[domain.Encoding]int64{
		domain.EncodingMP3320: mp3320,
		domain.EncodingMP3256: mp3256,
		domain.EncodingMP3128: mp3128,
		domain.EncodingFLAC:   flac,
	}
}

func encryptFor(t *testing.T, assetID string, plain []byte) []byte {
	t.Helper()
	key := trackkey.Derive(assetID)
	enc, err := stripe.Encrypt(plain, key.Bytes())
	if err != nil {
		t.Fatalf("stripe.Encrypt() error = %v", err)
	}
	return enc
}

// fakeUpstream emulates the gateway, licensing and media hosts.
type fakeUpstream struct {
	server *httptest.Server

	mu          sync.Mutex
	results     map[string]string // gateway method -> results JSON
	errors      map[string]string // gateway method -> error JSON
	media       map[string][]byte // asset token -> encrypted payload
	licenseBody []byte
	cookies     []string
	queries     []map[string]string
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{
		results: make(map[string]string),
		errors:  make(map[string]string),
		media:   make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/gw", f.handleGateway)
	mux.HandleFunc("/media", f.handleLicense)
	mux.HandleFunc("/file/", f.handleFile)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeUpstream) gatewayURL() string { return f.server.URL + "/gw" }
func (f *fakeUpstream) mediaURL() string   { return f.server.URL + "/media" }

func (f *fakeUpstream) client(credential string) *transport.Client {
	return transport.New(transport.Config{Credential: credential, Timeout: 5 * time.Second})
}

func (f *fakeUpstream) handleGateway(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	method := q.Get("method")

	f.mu.Lock()
	if c, err := r.Cookie(transport.CredentialCookie); err == nil {
		f.cookies = append(f.cookies, c.Value)
	}
	f.queries = append(f.queries, map[string]string{
		"method":    method,
		"api_token": q.Get("api_token"),
		"sid":       q.Get("sid"),
	})
	results, ok := f.results[method]
	errJSON, failed := f.errors[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case failed:
		w.Write([]byte(`{"error":` + errJSON + `,"results":{}}`))
	case ok:
		w.Write([]byte(`{"error":[],"results":` + results + `}`))
	default:
		w.Write([]byte(`{"error":{"DATA_ERROR":"no data"},"results":{}}`))
	}
}

func (f *fakeUpstream) handleLicense(w http.ResponseWriter, r *http.Request) {
	var req licenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.licenseBody, _ = json.Marshal(req)
	_, ok := f.media[req.TrackTokens[0]]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.Write([]byte(`{"data":[{"errors":[{"code":2002,"message":"Track token has no sufficient rights on requested media"}]}]}`))
		return
	}

	url := f.server.URL + "/file/" + req.TrackTokens[0] + "?format=" + req.Media[0].Formats[0].Format
	w.Write([]byte(`{"data":[{"media":[{"format":"` + req.Media[0].Formats[0].Format +
		`","sources":[{"url":"` + url + `","provider":"ak"}]}]}]}`))
}

func (f *fakeUpstream) handleFile(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.URL.Path, "/file/")

	f.mu.Lock()
	data, ok := f.media[token]
	f.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write(data)
}

const userDataJSON = `{
	"SESSION_ID": "sid-abc",
	"checkForm": "check-abc",
	"USER": {"USER_ID": 1234, "OPTIONS": {"license_token": "lic-abc", "web_lossless": true}}
}`

const trackJSON = `{
	"SNG_ID": "3135556",
	"TRACK_TOKEN": "tok-3135556",
	"SNG_TITLE": "Harder, Better, Faster, Stronger",
	"ART_NAME": "Daft Punk",
	"ALB_TITLE": "Discovery",
	"DURATION": "224",
	"FILESIZE_MP3_320": "0",
	"FILESIZE_MP3_256": 5000,
	"FILESIZE_MP3_128": "9000",
	"FILESIZE_FLAC": 0
}`
