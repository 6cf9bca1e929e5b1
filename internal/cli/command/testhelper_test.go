package command

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/yndnr/tunevault-go/pkg/crypto/stripe"
	"github.com/yndnr/tunevault-go/pkg/crypto/trackkey"
)

// mockUpstream emulates the catalogue gateway, licensing endpoint and CDN.
type mockUpstream struct {
	*httptest.Server

	mu       sync.Mutex
	results  map[string]string // gateway method -> results JSON
	media    map[string][]byte // track token -> encrypted payload
	licenses int
}

func newMockUpstream(t *testing.T) *mockUpstream {
	t.Helper()
	m := &mockUpstream{
		results: map[string]string{
			"deezer.getUserData": `{"SESSION_ID":"sid","checkForm":"chk","USER":{"USER_ID":0,"OPTIONS":{"license_token":"lic"}}}`,
		},
		media: make(map[string][]byte),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/gw", m.gateway)
	mux.HandleFunc("/media", m.license)
	mux.HandleFunc("/file/", m.file)
	m.Server = httptest.NewServer(mux)
	t.Cleanup(m.Close)
	return m
}

// addTrack registers a track whose plaintext is plain.
func (m *mockUpstream) addTrack(t *testing.T, id string, plain []byte) {
	t.Helper()
	key := trackkey.Derive(id)
	enc, err := stripe.Encrypt(plain, key.Bytes())
	if err != nil {
		t.Fatalf("stripe.Encrypt() error = %v", err)
	}
	m.mu.Lock()
	m.media["tok-"+id] = enc
	m.mu.Unlock()
}

func (m *mockUpstream) gateway(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	results, ok := m.results[r.URL.Query().Get("method")]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.Write([]byte(`{"error":{"DATA_ERROR":"not found"},"results":{}}`))
		return
	}
	w.Write([]byte(`{"error":[],"results":` + results + `}`))
}

func (m *mockUpstream) license(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TrackTokens []string `json:"track_tokens"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	m.mu.Lock()
	m.licenses++
	m.mu.Unlock()

	token := req.TrackTokens[0]
	jsonResponse(w, map[string]any{
		"data": []any{map[string]any{
			"media": []any{map[string]any{
				"sources": []any{map[string]string{"url": m.URL + "/file/" + token}},
			}},
		}},
	})
}

func (m *mockUpstream) file(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	data, ok := m.media[strings.TrimPrefix(r.URL.Path, "/file/")]
	m.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write(data)
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

// runApp runs the CLI against the mock upstream with an isolated home
// directory and returns stdout and stderr.
func runApp(t *testing.T, up *mockUpstream, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	full := []string{"tunevault-cli"}
	if up != nil {
		full = append(full, "--gateway", up.URL+"/gw", "--media", up.URL+"/media")
	}
	full = append(full, args...)

	err := app.Run(full)
	return stdout.String(), stderr.String(), err
}

// trackJSON returns a gateway track record available only as MP3_128 and
// MP3_256 at the given sizes.
func trackJSON(id, title string, size128, size256 int) string {
	return fmt.Sprintf(`{"SNG_ID":%q,"TRACK_TOKEN":"tok-%s","SNG_TITLE":%q,"ART_NAME":"Artist",`+
		`"ALB_TITLE":"Album","DURATION":"180","FILESIZE_MP3_128":"%d","FILESIZE_MP3_256":%d,"FILESIZE_FLAC":0}`,
		id, id, title, size128, size256)
}
