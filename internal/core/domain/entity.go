package domain

import "strings"

// EntityKind names a variant of Entity.
type EntityKind string

// Entity kinds.
const (
	KindTrack    EntityKind = "track"
	KindAlbum    EntityKind = "album"
	KindArtist   EntityKind = "artist"
	KindPlaylist EntityKind = "playlist"
)

// ParseEntityKind parses a kind name, case-insensitively.
func ParseEntityKind(s string) (EntityKind, bool) {
	switch k := EntityKind(strings.ToLower(s)); k {
	case KindTrack, KindAlbum, KindArtist, KindPlaylist:
		return k, true
	default:
		return "", false
	}
}

// Entity is a catalogue record. The set of implementations is closed:
// *Track, *Album, *Artist and *Playlist.
type Entity interface {
	Kind() EntityKind
	EntityID() string
	DisplayName() string
	// Assets returns the tracks the entity resolves to, in catalogue order.
	Assets() []AssetDescriptor

	entity()
}

// Track is a single asset.
type Track struct {
	Asset AssetDescriptor
}

// Album is an ordered track list released together.
type Album struct {
	ID     string
	Title  string
	Artist string
	Tracks []AssetDescriptor
}

// Artist resolves to the artist's top tracks.
type Artist struct {
	ID        string
	Name      string
	TopTracks []AssetDescriptor
}

// Playlist is a user-curated track list.
type Playlist struct {
	ID     string
	Title  string
	Owner  string
	Tracks []AssetDescriptor
}

func (*Track) Kind() EntityKind    { return KindTrack }
func (*Album) Kind() EntityKind    { return KindAlbum }
func (*Artist) Kind() EntityKind   { return KindArtist }
func (*Playlist) Kind() EntityKind { return KindPlaylist }

func (t *Track) EntityID() string    { return t.Asset.ID }
func (a *Album) EntityID() string    { return a.ID }
func (a *Artist) EntityID() string   { return a.ID }
func (p *Playlist) EntityID() string { return p.ID }

func (t *Track) DisplayName() string    { return t.Asset.Title }
func (a *Album) DisplayName() string    { return a.Title }
func (a *Artist) DisplayName() string   { return a.Name }
func (p *Playlist) DisplayName() string { return p.Title }

func (t *Track) Assets() []AssetDescriptor    { return []AssetDescriptor{t.Asset} }
func (a *Album) Assets() []AssetDescriptor    { return a.Tracks }
func (a *Artist) Assets() []AssetDescriptor   { return a.TopTracks }
func (p *Playlist) Assets() []AssetDescriptor { return p.Tracks }

func (*Track) entity()    {}
func (*Album) entity()    {}
func (*Artist) entity()   {}
func (*Playlist) entity() {}
