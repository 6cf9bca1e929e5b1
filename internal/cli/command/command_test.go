package command

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/core/service"
)

func TestSessionCommand(t *testing.T) {
	up := newMockUpstream(t)

	stdout, _, err := runApp(t, up, "-o", "json", "session")
	if err != nil {
		t.Fatalf("session error = %v", err)
	}

	var view sessionView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	if !view.Anonymous {
		t.Error("session without credential should be anonymous")
	}
	if view.Lossless {
		t.Error("anonymous session should not be privileged")
	}
	if !view.ExpiresAt.After(view.IssuedAt) {
		t.Errorf("expires_at %v should be after issued_at %v", view.ExpiresAt, view.IssuedAt)
	}
	if strings.Contains(stdout, "lic") || strings.Contains(stdout, "chk") {
		t.Errorf("session output leaks tokens: %s", stdout)
	}
}

func TestSessionCommand_AuthFailure(t *testing.T) {
	up := newMockUpstream(t)
	up.results["deezer.getUserData"] = `{"SESSION_ID":"","checkForm":"","USER":{"USER_ID":0}}`

	_, _, err := runApp(t, up, "session")
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Errorf("session error = %v, want ErrAuthentication", err)
	}
}

func TestSessionCommand_Refresh(t *testing.T) {
	up := newMockUpstream(t)

	stdout, _, err := runApp(t, up, "session", "--refresh")
	if err != nil {
		t.Fatalf("session --refresh error = %v", err)
	}
	for _, want := range []string{"FIELD", "anonymous", "expires_at"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	up := newMockUpstream(t)
	up.results["song.getData"] = trackJSON("3135556", "One More Time", 9000, 0)

	t.Run("table", func(t *testing.T) {
		stdout, _, err := runApp(t, up, "info", "track:3135556")
		if err != nil {
			t.Fatalf("info error = %v", err)
		}
		for _, want := range []string{"track 3135556", "One More Time", "MP3_128", "3:00"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("output missing %q:\n%s", want, stdout)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := runApp(t, up, "--output", "json", "info", "https://www.deezer.com/en/track/3135556")
		if err != nil {
			t.Fatalf("info error = %v", err)
		}
		var view entityView
		if err := json.Unmarshal([]byte(stdout), &view); err != nil {
			t.Fatalf("decode output: %v\n%s", err, stdout)
		}
		if view.Kind != domain.KindTrack || len(view.Assets) != 1 {
			t.Fatalf("view = %+v, want one track", view)
		}
		if got := view.Assets[0].Formats; len(got) != 1 || got[0] != "MP3_128" {
			t.Errorf("formats = %v, want [MP3_128]", got)
		}
	})
}

func TestInfoCommand_Errors(t *testing.T) {
	up := newMockUpstream(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"missing reference", []string{"info"}, nil},
		{"invalid reference", []string{"info", "podcast:12"}, domain.ErrInvalidReference},
		{"not found", []string{"info", "album:99"}, domain.ErrEntityNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runApp(t, up, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDownloadCommand(t *testing.T) {
	up := newMockUpstream(t)
	up.results["album.getData"] = `{"ALB_ID":"302127","ALB_TITLE":"Discovery","ART_NAME":"Daft Punk"}`
	up.results["song.getListByAlbum"] = `{"data":[` +
		trackJSON("1", "One More Time", 9000, 0) + `,` +
		trackJSON("2", "Aerodynamic", 9000, 7000) + `],"total":2}`

	first := bytes.Repeat([]byte("first track "), 700)
	second := bytes.Repeat([]byte("second track "), 900)
	up.addTrack(t, "1", first)
	up.addTrack(t, "2", second)

	dir := filepath.Join(t.TempDir(), "out")
	stdout, stderr, err := runApp(t, up, "-o", "json", "download", "-d", dir, "-j", "2", "album:302127")
	if err != nil {
		t.Fatalf("download error = %v\nstderr: %s", err, stderr)
	}

	var view downloadView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	if len(view.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(view.Files))
	}
	if view.Files[0].Encoding != domain.EncodingMP3128 {
		t.Errorf("track 1 encoding = %s, want MP3_128", view.Files[0].Encoding)
	}
	if view.Files[1].Encoding != domain.EncodingMP3256 {
		t.Errorf("track 2 encoding = %s, want MP3_256", view.Files[1].Encoding)
	}

	for name, want := range map[string][]byte{"1.mp3": first, "2.mp3": second} {
		got, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s does not match the plaintext", name)
		}
	}

	if up.licenses != 2 {
		t.Errorf("license requests = %d, want 2", up.licenses)
	}
	if !strings.Contains(stderr, "album:302127") {
		t.Errorf("progress output missing reference: %q", stderr)
	}
}

func TestDownloadCommand_LosslessRequiresEntitlement(t *testing.T) {
	up := newMockUpstream(t)
	up.results["song.getData"] = trackJSON("1", "One More Time", 9000, 0)
	up.addTrack(t, "1", []byte("payload"))

	dir := t.TempDir()
	_, _, err := runApp(t, up, "download", "--lossless", "-d", dir, "track:1")
	if !errors.Is(err, domain.ErrEntitlement) {
		t.Fatalf("download error = %v, want ErrEntitlement", err)
	}

	var stageErr *domain.StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != domain.StageResolve {
		t.Errorf("error = %v, want a resolve stage failure", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("wrote %d files on failure", len(entries))
	}
	if up.licenses != 0 {
		t.Errorf("license requests = %d, want 0", up.licenses)
	}
}

func TestConfigCommands(t *testing.T) {
	t.Run("show masks credential", func(t *testing.T) {
		stdout, _, err := runApp(t, nil, "--credential", "abcdef0123456789", "-o", "yaml", "config", "show")
		if err != nil {
			t.Fatalf("config show error = %v", err)
		}
		if strings.Contains(stdout, "abcdef0123456789") {
			t.Errorf("credential not masked:\n%s", stdout)
		}
		if !strings.Contains(stdout, "abc...789") {
			t.Errorf("masked credential missing:\n%s", stdout)
		}
	})

	t.Run("init writes file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("output: json\n"), 0600); err != nil {
			t.Fatal(err)
		}

		if _, _, err := runApp(t, nil, "-c", path, "config", "init"); err == nil {
			t.Error("init over an existing file should fail without --force")
		}

		stdout, _, err := runApp(t, nil, "-c", path, "--log-level", "debug", "config", "init", "--force")
		if err != nil {
			t.Fatalf("config init error = %v", err)
		}
		if !strings.Contains(stdout, path) {
			t.Errorf("output = %q, want path", stdout)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "level: debug") {
			t.Errorf("saved config missing log level:\n%s", data)
		}
		if !strings.Contains(string(data), "output: json") {
			t.Errorf("saved config lost file value:\n%s", data)
		}
	})

	t.Run("invalid output format", func(t *testing.T) {
		_, _, err := runApp(t, nil, "-o", "xml", "config", "show")
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("error = %v, want ErrInvalidConfig", err)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runApp(t, nil, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	for _, want := range []string{"version", "go_version", "platform"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestFlagOverrides(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range globalFlags() {
		if err := f.Apply(set); err != nil {
			t.Fatal(err)
		}
	}
	if err := set.Parse([]string{"--log-level", "debug", "--gateway", "http://gw.test"}); err != nil {
		t.Fatal(err)
	}
	c := cli.NewContext(cli.NewApp(), set, nil)

	got := flagOverrides(c)
	want := map[string]any{
		"log.level":         "debug",
		"endpoints.gateway": "http://gw.test",
	}
	if len(got) != len(want) {
		t.Fatalf("overrides = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("overrides[%q] = %v, want %v", k, got[k], v)
		}
	}

	flags := ParseGlobalFlags(c)
	if flags.LogLevel != "debug" || flags.Gateway != "http://gw.test" || flags.Output != "" {
		t.Errorf("ParseGlobalFlags() = %+v", flags)
	}
}

func TestFileName(t *testing.T) {
	dl := &service.Download{
		Asset:    domain.AssetDescriptor{ID: "42"},
		Encoding: domain.EncodingFLAC,
	}
	if got := FileName(dl); got != "42.flac" {
		t.Errorf("FileName() = %q, want 42.flac", got)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	PrintError(&buf, "failed: %s", "boom")
	if got := buf.String(); got != "error: failed: boom\n" {
		t.Errorf("PrintError() = %q", got)
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid reference", domain.ErrInvalidReference.WithDetails("podcast:1"), 2},
		{"invalid config", fmt.Errorf("load: %w", domain.ErrInvalidConfig), 2},
		{"entitlement", domain.ErrEntitlement, 1},
		{"stage error", &domain.StageError{AssetID: "1", Stage: domain.StageFetch, Err: domain.ErrTransport}, 1},
		{"plain error", errors.New("reference is required"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := ReportError(&buf, tt.err); got != tt.wantCode {
				t.Errorf("ReportError() = %d, want %d", got, tt.wantCode)
			}
			if want := "error: " + tt.err.Error() + "\n"; buf.String() != want {
				t.Errorf("output = %q, want %q", buf.String(), want)
			}
		})
	}
}
