package service

import (
	"context"
	"net/http"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/infra/transport"
	"github.com/yndnr/tunevault-go/pkg/crypto/stripe"
)

// mediaTypeFull requests the complete asset rather than a preview.
const mediaTypeFull = "FULL"

// LicenseClient exchanges an asset token and a license token for a media
// source URL.
type LicenseClient struct {
	transport Transport
	url       string
}

// NewLicenseClient creates a LicenseClient for the licensing endpoint at mediaURL.
func NewLicenseClient(t Transport, mediaURL string) *LicenseClient {
	if mediaURL == "" {
		mediaURL = DefaultMediaURL
	}
	return &LicenseClient{transport: t, url: mediaURL}
}

type licenseFormat struct {
	Cipher string `json:"cipher"`
	Format string `json:"format"`
}

type licenseMedia struct {
	Type    string          `json:"type"`
	Formats []licenseFormat `json:"formats"`
}

type licenseRequest struct {
	LicenseToken string         `json:"license_token"`
	Media        []licenseMedia `json:"media"`
	TrackTokens  []string       `json:"track_tokens"`
}

type licenseResponse struct {
	Data []struct {
		Media []struct {
			Format  string `json:"format"`
			Sources []struct {
				URL      string `json:"url"`
				Provider string `json:"provider"`
			} `json:"sources"`
		} `json:"media"`
		Errors []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"data"`
}

// SourceURL requests a source URL scoped to exactly one encoding of one
// asset. Transport failures are returned unchanged; any response without
// a URL is ErrSourceResolution.
func (c *LicenseClient) SourceURL(ctx context.Context, licenseToken, assetToken string, enc domain.Encoding) (string, error) {
	body := licenseRequest{
		LicenseToken: licenseToken,
		Media: []licenseMedia{{
			Type:    mediaTypeFull,
			Formats: []licenseFormat{{Cipher: stripe.Name, Format: string(enc)}},
		}},
		TrackTokens: []string{assetToken},
	}

	var resp licenseResponse
	err := c.transport.DoJSON(ctx, &transport.Request{
		Method: http.MethodPost,
		URL:    c.url,
		Body:   body,
		Kind:   "license",
	}, &resp)
	if err != nil {
		return "", err
	}

	return resp.sourceURL(enc)
}

func (r *licenseResponse) sourceURL(enc domain.Encoding) (string, error) {
	if len(r.Data) == 0 {
		return "", domain.ErrSourceResolution.WithDetails("empty licensing response")
	}

	entry := r.Data[0]
	if len(entry.Media) > 0 && len(entry.Media[0].Sources) > 0 && entry.Media[0].Sources[0].URL != "" {
		return entry.Media[0].Sources[0].URL, nil
	}

	if len(entry.Errors) > 0 && entry.Errors[0].Message != "" {
		return "", domain.ErrSourceResolution.WithDetails(entry.Errors[0].Message)
	}
	return "", domain.ErrSourceResolution.WithDetailsf("no source for %s", enc)
}
