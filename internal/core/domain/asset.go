package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Encoding identifies an audio format offered by the media store.
type Encoding string

// Supported encodings.
const (
	EncodingMP3320 Encoding = "MP3_320"
	EncodingMP3256 Encoding = "MP3_256"
	EncodingMP3128 Encoding = "MP3_128"
	EncodingFLAC   Encoding = "FLAC"
)

// lossyPriority lists lossy encodings from highest to lowest bitrate.
var lossyPriority = [...]Encoding{EncodingMP3320, EncodingMP3256, EncodingMP3128}

// LossyPriority returns the lossy encodings, highest bitrate first.
func LossyPriority() []Encoding {
	return lossyPriority[:]
}

// Encodings returns every supported encoding.
func Encodings() []Encoding {
	return []Encoding{EncodingFLAC, EncodingMP3320, EncodingMP3256, EncodingMP3128}
}

// Lossless reports whether e is the lossless encoding.
func (e Encoding) Lossless() bool {
	return e == EncodingFLAC
}

// Extension returns the file extension for media in this encoding.
func (e Encoding) Extension() string {
	if e.Lossless() {
		return "flac"
	}
	return "mp3"
}

// AssetDescriptor describes one fetchable track.
type AssetDescriptor struct {
	// ID is the catalogue identifier; it also seeds the cipher key.
	ID string `json:"id"`

	// Token is the asset-scoped access token exchanged for a media URL.
	Token string `json:"-"`

	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Album    string        `json:"album,omitempty"`
	Duration time.Duration `json:"duration"`

	// Sizes maps each encoding to its file size in bytes; zero or absent
	// means the encoding is not offered.
	Sizes map[Encoding]int64 `json:"sizes"`

	// Fallback is substituted when the asset offers no encoding at all.
	Fallback *AssetDescriptor `json:"fallback,omitempty"`
}

// Size returns the file size for e, or zero when e is not offered.
func (a *AssetDescriptor) Size(e Encoding) int64 {
	return a.Sizes[e]
}

// Available reports whether any encoding has a non-zero size.
func (a *AssetDescriptor) Available() bool {
	for _, size := range a.Sizes {
		if size > 0 {
			return true
		}
	}
	return false
}

// FlexInt decodes JSON numbers and numeric strings alike. The catalogue
// gateway is inconsistent about quoting integer fields.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("decode integer %s: %w", b, err)
	}
	*f = FlexInt(n)
	return nil
}
