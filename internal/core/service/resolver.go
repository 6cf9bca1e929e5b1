package service

import (
	"context"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
)

// SourceLocator exchanges tokens for an encoding-scoped source URL.
type SourceLocator interface {
	SourceURL(ctx context.Context, licenseToken, assetToken string, enc domain.Encoding) (string, error)
}

// Resolution is the outcome of resolving an asset.
type Resolution struct {
	// Asset is the descriptor actually resolved, after fallback substitution.
	Asset    domain.AssetDescriptor
	Encoding domain.Encoding
	// SourceURL is valid only for Encoding.
	SourceURL string
}

// MediaResolver picks an encoding for an asset and obtains its source URL.
type MediaResolver struct {
	sessions SessionProvider
	locator  SourceLocator
}

// NewMediaResolver creates a MediaResolver.
func NewMediaResolver(sessions SessionProvider, locator SourceLocator) *MediaResolver {
	return &MediaResolver{sessions: sessions, locator: locator}
}

// Resolve selects an encoding for asset and requests its source URL.
//
// An asset offering no encoding is replaced by its fallback, one hop only.
// Lossless requests are refused for non-privileged sessions before any
// licensing call is made.
func (r *MediaResolver) Resolve(ctx context.Context, asset domain.AssetDescriptor, wantLossless bool) (*Resolution, error) {
	sess, err := r.sessions.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}

	resolved := ApplyFallback(asset)
	if resolved.ID != asset.ID {
		logger.L(ctx).Debug("substituted fallback asset", "asset_id", asset.ID, "fallback_id", resolved.ID)
	}

	enc, err := SelectEncoding(resolved, wantLossless, sess.Privileged)
	if err != nil {
		return nil, err
	}

	url, err := r.locator.SourceURL(ctx, sess.LicenseToken, resolved.Token, enc)
	if err != nil {
		return nil, err
	}

	return &Resolution{Asset: resolved, Encoding: enc, SourceURL: url}, nil
}

// ApplyFallback returns the asset's fallback when the asset offers no
// encoding at all. The fallback's own fallback is never followed.
func ApplyFallback(asset domain.AssetDescriptor) domain.AssetDescriptor {
	if asset.Available() || asset.Fallback == nil {
		return asset
	}
	fb := *asset.Fallback
	fb.Fallback = nil
	return fb
}

// SelectEncoding chooses the encoding to request for asset.
func SelectEncoding(asset domain.AssetDescriptor, wantLossless, privileged bool) (domain.Encoding, error) {
	if wantLossless {
		if !privileged {
			return "", domain.ErrEntitlement
		}
		if asset.Size(domain.EncodingFLAC) == 0 {
			return "", domain.ErrUnavailableFormat.WithDetailsf("asset %s has no %s", asset.ID, domain.EncodingFLAC)
		}
		return domain.EncodingFLAC, nil
	}

	for _, enc := range domain.LossyPriority() {
		if asset.Size(enc) > 0 {
			return enc, nil
		}
	}
	return "", domain.ErrUnavailableFormat.WithDetailsf("asset %s has no lossy encoding", asset.ID)
}
