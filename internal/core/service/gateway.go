package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/infra/transport"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
)

// Default upstream endpoints.
const (
	DefaultGatewayURL = "https://www.deezer.com/ajax/gw-light.php"
	DefaultMediaURL   = "https://media.deezer.com/v1/get_url"
)

const (
	gatewayAPIVersion = "1.0"
	gatewayInput      = "3"

	methodUserData = "deezer.getUserData"

	// dataErrorKey marks "no such record" errors in the gateway envelope.
	dataErrorKey = "DATA_ERROR"
)

// Transport is the HTTP collaborator used by all services.
type Transport interface {
	DoJSON(ctx context.Context, req *transport.Request, target any) error
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
	HasCredential() bool
}

// Gateway calls methods of the catalogue API.
type Gateway struct {
	transport Transport
	url       string
}

// NewGateway creates a Gateway for the endpoint at gatewayURL.
func NewGateway(t Transport, gatewayURL string) *Gateway {
	if gatewayURL == "" {
		gatewayURL = DefaultGatewayURL
	}
	return &Gateway{transport: t, url: gatewayURL}
}

// envelope is the response wrapper for every gateway method. Error is an
// empty array on success and an object of code/message pairs on failure.
type envelope struct {
	Error   json.RawMessage `json:"error"`
	Results json.RawMessage `json:"results"`
}

// Call invokes method with body and decodes the results into target.
// sess may be nil for the session exchange itself.
func (g *Gateway) Call(ctx context.Context, sess *domain.Session, method string, body, target any) error {
	var apiToken, sid string
	if sess != nil {
		apiToken, sid = sess.AuthToken, sess.SessionID
	}

	if body == nil {
		body = struct{}{}
	}

	req := &transport.Request{
		Method: http.MethodPost,
		URL:    g.url,
		Query: url.Values{
			"method":      {method},
			"input":       {gatewayInput},
			"api_version": {gatewayAPIVersion},
			"api_token":   {apiToken},
			"sid":         {sid},
		},
		Body: body,
		Kind: "gateway",
	}

	var env envelope
	if err := g.transport.DoJSON(ctx, req, &env); err != nil {
		return err
	}

	if msg, code, failed := envelopeError(env.Error); failed {
		logger.L(ctx).Debug("gateway error", "method", method, "code", code, "message", msg)
		if code == dataErrorKey {
			return domain.ErrEntityNotFound.WithDetailsf("%s: %s", method, msg)
		}
		return domain.ErrCatalogue.WithDetailsf("%s: %s: %s", method, code, msg)
	}

	if target == nil {
		return nil
	}
	if len(env.Results) == 0 || bytes.Equal(env.Results, []byte("null")) {
		return domain.ErrEntityNotFound.WithDetailsf("%s: empty results", method)
	}
	if err := json.Unmarshal(env.Results, target); err != nil {
		return domain.ErrTransport.WithDetailsf("decode %s results", method).WithCause(err)
	}
	return nil
}

// envelopeError extracts the first error from the envelope's error field.
// Keys are sorted so the reported error is stable.
func envelopeError(raw json.RawMessage) (msg, code string, failed bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", "", false
	}

	var errs map[string]any
	if err := json.Unmarshal(trimmed, &errs); err != nil || len(errs) == 0 {
		return "", "", false
	}

	codes := make([]string, 0, len(errs))
	for k := range errs {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	code = codes[0]
	return strings.TrimSpace(fmt.Sprint(errs[code])), code, true
}

// ============================================================================
// Session Exchange
// ============================================================================

type userData struct {
	SessionID string `json:"SESSION_ID"`
	CheckForm string `json:"checkForm"`
	User      struct {
		UserID  domain.FlexInt `json:"USER_ID"`
		Options struct {
			LicenseToken string `json:"license_token"`
			WebLossless  bool   `json:"web_lossless"`
		} `json:"OPTIONS"`
	} `json:"USER"`
}

// Authenticate performs the session exchange. Without a configured
// credential the upstream issues an anonymous, non-privileged session.
// IssuedAt is left for the caller to stamp.
func (g *Gateway) Authenticate(ctx context.Context) (*domain.Session, error) {
	var data userData
	if err := g.Call(ctx, nil, methodUserData, nil, &data); err != nil {
		return nil, domain.ErrAuthentication.WithDetails("session exchange").WithCause(err)
	}

	// 1. Both tokens are required for every later call
	if data.SessionID == "" {
		return nil, domain.ErrAuthentication.WithDetails("response has no session id")
	}
	if data.CheckForm == "" {
		return nil, domain.ErrAuthentication.WithDetails("response has no api token")
	}
	if data.User.Options.LicenseToken == "" {
		return nil, domain.ErrAuthentication.WithDetails("response has no license token")
	}

	// 2. Lossless needs a credential that upstream resolved to a real account
	userID := int64(data.User.UserID)
	privileged := g.transport.HasCredential() && userID != 0 && data.User.Options.WebLossless

	return &domain.Session{
		SessionID:    data.SessionID,
		AuthToken:    data.CheckForm,
		LicenseToken: data.User.Options.LicenseToken,
		UserID:       userID,
		Privileged:   privileged,
	}, nil
}
