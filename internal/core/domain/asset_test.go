package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestLossyPriority(t *testing.T) {
	got := LossyPriority()
	want := []Encoding{EncodingMP3320, EncodingMP3256, EncodingMP3128}
	if len(got) != len(want) {
		t.Fatalf("LossyPriority() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LossyPriority()[%d] = %s, want %s", i, got[i], want[i])
		}
		if got[i].Lossless() {
			t.Errorf("%s should not be lossless", got[i])
		}
	}
	if !EncodingFLAC.Lossless() {
		t.Error("FLAC should be lossless")
	}
}

func TestEncoding_Extension(t *testing.T) {
	if EncodingFLAC.Extension() != "flac" {
		t.Errorf("FLAC extension = %q", EncodingFLAC.Extension())
	}
	if EncodingMP3128.Extension() != "mp3" {
		t.Errorf("MP3_128 extension = %q", EncodingMP3128.Extension())
	}
}

func TestAssetDescriptor_Available(t *testing.T) {
	empty := &AssetDescriptor{ID: "1", Sizes: map[Encoding]int64{EncodingMP3320: 0}}
	if empty.Available() {
		t.Error("asset with only zero sizes should not be available")
	}

	none := &AssetDescriptor{ID: "2"}
	if none.Available() {
		t.Error("asset with nil sizes should not be available")
	}
	if none.Size(EncodingFLAC) != 0 {
		t.Error("Size on nil map should be zero")
	}

	some := &AssetDescriptor{ID: "3", Sizes: map[Encoding]int64{EncodingMP3128: 9000}}
	if !some.Available() {
		t.Error("asset with a non-zero size should be available")
	}
}

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input   string
		want    FlexInt
		wantErr bool
	}{
		{`123`, 123, false},
		{`"4567"`, 4567, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"-42"`, -42, false},
		{`"abc"`, 0, true},
		{`1.5`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tt.input), &f)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && f != tt.want {
				t.Errorf("Unmarshal(%s) = %d, want %d", tt.input, f, tt.want)
			}
		})
	}
}

func TestEntity_Variants(t *testing.T) {
	track := AssetDescriptor{ID: "1", Title: "Song"}
	entities := []struct {
		e      Entity
		kind   EntityKind
		id     string
		name   string
		assets int
	}{
		{&Track{Asset: track}, KindTrack, "1", "Song", 1},
		{&Album{ID: "10", Title: "LP", Tracks: []AssetDescriptor{track, track}}, KindAlbum, "10", "LP", 2},
		{&Artist{ID: "20", Name: "Band", TopTracks: []AssetDescriptor{track}}, KindArtist, "20", "Band", 1},
		{&Playlist{ID: "30", Title: "Mix"}, KindPlaylist, "30", "Mix", 0},
	}

	for _, tt := range entities {
		t.Run(string(tt.kind), func(t *testing.T) {
			if tt.e.Kind() != tt.kind {
				t.Errorf("Kind() = %s, want %s", tt.e.Kind(), tt.kind)
			}
			if tt.e.EntityID() != tt.id {
				t.Errorf("EntityID() = %s, want %s", tt.e.EntityID(), tt.id)
			}
			if tt.e.DisplayName() != tt.name {
				t.Errorf("DisplayName() = %s, want %s", tt.e.DisplayName(), tt.name)
			}
			if len(tt.e.Assets()) != tt.assets {
				t.Errorf("len(Assets()) = %d, want %d", len(tt.e.Assets()), tt.assets)
			}
		})
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		input   string
		want    Reference
		wantErr bool
	}{
		{"track:3135556", Reference{KindTrack, "3135556"}, false},
		{"album/302127", Reference{KindAlbum, "302127"}, false},
		{"ARTIST:27", Reference{KindArtist, "27"}, false},
		{"https://www.example.com/en/playlist/908622995?utm_source=share", Reference{KindPlaylist, "908622995"}, false},
		{"https://www.example.com/track/-1234", Reference{KindTrack, "-1234"}, false},
		{"  track:1  ", Reference{KindTrack, "1"}, false},
		{"", Reference{}, true},
		{"3135556", Reference{}, true},
		{"show:12", Reference{}, true},
		{"track:abc", Reference{}, true},
		{"track:-", Reference{}, true},
		{"https://www.example.com/", Reference{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReference(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseReference(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidReference) {
					t.Errorf("error = %v, want ErrInvalidReference", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseReference(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if got.String() != string(tt.want.Kind)+":"+tt.want.ID {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}
