package service

import (
	"context"
	"strconv"
	"time"

	"github.com/yndnr/tunevault-go/internal/core/domain"
)

// Gateway methods used for catalogue lookups.
const (
	methodSongData       = "song.getData"
	methodAlbumData      = "album.getData"
	methodAlbumTracks    = "song.getListByAlbum"
	methodArtistData     = "artist.getData"
	methodArtistTop      = "artist.getTopTrack"
	methodPlaylistData   = "playlist.getData"
	methodPlaylistTracks = "playlist.getSongs"
)

// allItems asks list methods for every entry instead of a page.
const allItems = -1

// DefaultTopTracks is how many tracks an artist lookup resolves to.
const DefaultTopTracks = 100

// Catalogue looks up entities through the gateway.
type Catalogue struct {
	gateway   *Gateway
	sessions  SessionProvider
	topTracks int
}

// NewCatalogue creates a Catalogue.
func NewCatalogue(gateway *Gateway, sessions SessionProvider) *Catalogue {
	return &Catalogue{gateway: gateway, sessions: sessions, topTracks: DefaultTopTracks}
}

// Lookup fetches the entity named by ref.
func (c *Catalogue) Lookup(ctx context.Context, ref domain.Reference) (domain.Entity, error) {
	sess, err := c.sessions.EnsureValid(ctx)
	if err != nil {
		return nil, err
	}

	switch ref.Kind {
	case domain.KindTrack:
		return c.track(ctx, &sess, ref.ID)
	case domain.KindAlbum:
		return c.album(ctx, &sess, ref.ID)
	case domain.KindArtist:
		return c.artist(ctx, &sess, ref.ID)
	case domain.KindPlaylist:
		return c.playlist(ctx, &sess, ref.ID)
	default:
		return nil, domain.ErrInvalidReference.WithDetailsf("unknown kind %q", ref.Kind)
	}
}

func (c *Catalogue) track(ctx context.Context, sess *domain.Session, id string) (domain.Entity, error) {
	var raw rawTrack
	if err := c.gateway.Call(ctx, sess, methodSongData, map[string]any{"sng_id": id}, &raw); err != nil {
		return nil, err
	}
	if raw.ID == 0 {
		return nil, domain.ErrEntityNotFound.WithDetailsf("track %s", id)
	}
	return mapTrack(raw), nil
}

func (c *Catalogue) album(ctx context.Context, sess *domain.Session, id string) (domain.Entity, error) {
	var raw rawAlbum
	if err := c.gateway.Call(ctx, sess, methodAlbumData, map[string]any{"alb_id": id}, &raw); err != nil {
		return nil, err
	}
	if raw.ID == 0 {
		return nil, domain.ErrEntityNotFound.WithDetailsf("album %s", id)
	}

	var list rawTrackList
	if err := c.gateway.Call(ctx, sess, methodAlbumTracks, map[string]any{"alb_id": id, "nb": allItems}, &list); err != nil {
		return nil, err
	}
	return mapAlbum(raw, list), nil
}

func (c *Catalogue) artist(ctx context.Context, sess *domain.Session, id string) (domain.Entity, error) {
	var raw rawArtist
	if err := c.gateway.Call(ctx, sess, methodArtistData, map[string]any{"art_id": id}, &raw); err != nil {
		return nil, err
	}
	if raw.ID == 0 {
		return nil, domain.ErrEntityNotFound.WithDetailsf("artist %s", id)
	}

	var list rawTrackList
	if err := c.gateway.Call(ctx, sess, methodArtistTop, map[string]any{"art_id": id, "nb": c.topTracks}, &list); err != nil {
		return nil, err
	}
	return mapArtist(raw, list), nil
}

func (c *Catalogue) playlist(ctx context.Context, sess *domain.Session, id string) (domain.Entity, error) {
	var raw rawPlaylist
	if err := c.gateway.Call(ctx, sess, methodPlaylistData, map[string]any{"playlist_id": id}, &raw); err != nil {
		return nil, err
	}
	if raw.ID == 0 {
		return nil, domain.ErrEntityNotFound.WithDetailsf("playlist %s", id)
	}

	var list rawTrackList
	if err := c.gateway.Call(ctx, sess, methodPlaylistTracks, map[string]any{"playlist_id": id, "nb": allItems}, &list); err != nil {
		return nil, err
	}
	return mapPlaylist(raw, list), nil
}

// ============================================================================
// Wire Records
// ============================================================================

type rawTrack struct {
	ID       domain.FlexInt `json:"SNG_ID"`
	Token    string         `json:"TRACK_TOKEN"`
	Title    string         `json:"SNG_TITLE"`
	Version  string         `json:"VERSION"`
	Artist   string         `json:"ART_NAME"`
	Album    string         `json:"ALB_TITLE"`
	Duration domain.FlexInt `json:"DURATION"`

	SizeMP3320 domain.FlexInt `json:"FILESIZE_MP3_320"`
	SizeMP3256 domain.FlexInt `json:"FILESIZE_MP3_256"`
	SizeMP3128 domain.FlexInt `json:"FILESIZE_MP3_128"`
	SizeFLAC   domain.FlexInt `json:"FILESIZE_FLAC"`

	Fallback *rawTrack `json:"FALLBACK"`
}

type rawTrackList struct {
	Data  []rawTrack     `json:"data"`
	Total domain.FlexInt `json:"total"`
}

type rawAlbum struct {
	ID     domain.FlexInt `json:"ALB_ID"`
	Title  string         `json:"ALB_TITLE"`
	Artist string         `json:"ART_NAME"`
}

type rawArtist struct {
	ID   domain.FlexInt `json:"ART_ID"`
	Name string         `json:"ART_NAME"`
}

type rawPlaylist struct {
	ID    domain.FlexInt `json:"PLAYLIST_ID"`
	Title string         `json:"TITLE"`
	Owner string         `json:"PARENT_USERNAME"`
}

// ============================================================================
// Mapping
// ============================================================================

func mapTrack(raw rawTrack) *domain.Track {
	return &domain.Track{Asset: mapAsset(raw, true)}
}

func mapAlbum(raw rawAlbum, list rawTrackList) *domain.Album {
	return &domain.Album{
		ID:     formatID(raw.ID),
		Title:  raw.Title,
		Artist: raw.Artist,
		Tracks: mapAssets(list.Data),
	}
}

func mapArtist(raw rawArtist, list rawTrackList) *domain.Artist {
	return &domain.Artist{
		ID:        formatID(raw.ID),
		Name:      raw.Name,
		TopTracks: mapAssets(list.Data),
	}
}

func mapPlaylist(raw rawPlaylist, list rawTrackList) *domain.Playlist {
	return &domain.Playlist{
		ID:     formatID(raw.ID),
		Title:  raw.Title,
		Owner:  raw.Owner,
		Tracks: mapAssets(list.Data),
	}
}

func mapAssets(raws []rawTrack) []domain.AssetDescriptor {
	assets := make([]domain.AssetDescriptor, 0, len(raws))
	for _, raw := range raws {
		assets = append(assets, mapAsset(raw, true))
	}
	return assets
}

// mapAsset converts a wire track. Only the first fallback level is kept.
func mapAsset(raw rawTrack, withFallback bool) domain.AssetDescriptor {
	title := raw.Title
	if raw.Version != "" {
		title += " " + raw.Version
	}

	asset := domain.AssetDescriptor{
		ID:       formatID(raw.ID),
		Token:    raw.Token,
		Title:    title,
		Artist:   raw.Artist,
		Album:    raw.Album,
		Duration: time.Duration(raw.Duration) * time.Second,
		Sizes: map[domain.Encoding]int64{
			domain.EncodingMP3320: int64(raw.SizeMP3320),
			domain.EncodingMP3256: int64(raw.SizeMP3256),
			domain.EncodingMP3128: int64(raw.SizeMP3128),
			domain.EncodingFLAC:   int64(raw.SizeFLAC),
		},
	}

	if withFallback && raw.Fallback != nil && raw.Fallback.ID != 0 {
		fb := mapAsset(*raw.Fallback, false)
		asset.Fallback = &fb
	}
	return asset
}

func formatID(id domain.FlexInt) string {
	return strconv.FormatInt(int64(id), 10)
}
