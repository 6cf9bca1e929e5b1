package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/tunevault-go/internal/cli/output"
	"github.com/yndnr/tunevault-go/internal/core/domain"
	"github.com/yndnr/tunevault-go/internal/core/service"
	"github.com/yndnr/tunevault-go/internal/telemetry/logger"
)

// DownloadCommand returns the download command.
func DownloadCommand() *cli.Command {
	return &cli.Command{
		Name:      "download",
		Aliases:   []string{"dl"},
		Usage:     "Fetch and decrypt every track of an entity",
		ArgsUsage: "REFERENCE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "lossless",
				Aliases: []string{"l"},
				Usage:   "Request FLAC (needs a privileged credential)",
			},
			&cli.StringFlag{
				Name:    "out-dir",
				Aliases: []string{"d"},
				Usage:   "Directory for downloaded files",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"j"},
				Usage:   "Tracks downloaded in parallel",
			},
		},
		Action: download,
	}
}

// downloadOptions are the effective download settings: config values
// overridden by flags the user set.
type downloadOptions struct {
	Lossless    bool
	OutDir      string
	Concurrency int
}

func parseDownloadOptions(c *cli.Context, rt *Runtime) downloadOptions {
	opts := downloadOptions{
		Lossless:    rt.Config.Download.Lossless,
		OutDir:      rt.Config.Download.OutDir,
		Concurrency: rt.Config.Download.Concurrency,
	}
	if c.IsSet("lossless") {
		opts.Lossless = c.Bool("lossless")
	}
	if c.IsSet("out-dir") {
		opts.OutDir = c.String("out-dir")
	}
	if c.IsSet("concurrency") {
		opts.Concurrency = c.Int("concurrency")
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return opts
}

type fileView struct {
	ID       string          `json:"id" yaml:"id"`
	Title    string          `json:"title" yaml:"title"`
	Encoding domain.Encoding `json:"encoding" yaml:"encoding"`
	Bytes    int             `json:"bytes" yaml:"bytes"`
	Path     string          `json:"path" yaml:"path"`
}

type downloadView struct {
	Reference string     `json:"reference" yaml:"reference"`
	Files     []fileView `json:"files" yaml:"files"`
}

func (v downloadView) Table() *output.Table {
	t := output.NewTable("ID", "TITLE", "ENCODING", "SIZE", "FILE")
	for _, f := range v.Files {
		t.AddRow(f.ID, f.Title, string(f.Encoding), output.FormatBytes(int64(f.Bytes)), f.Path)
	}
	return t
}

// FileName returns the output file name for a download.
func FileName(dl *service.Download) string {
	return dl.Asset.ID + "." + dl.Encoding.Extension()
}

func download(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("reference is required")
	}

	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	formatter, _, err := rt.Formatter()
	if err != nil {
		return err
	}
	opts := parseDownloadOptions(c, rt)

	ref, err := domain.ParseReference(c.Args().First())
	if err != nil {
		return err
	}

	ctx := rt.Context()
	entity, err := rt.Catalogue.Lookup(ctx, ref)
	if err != nil {
		return err
	}
	assets := entity.Assets()
	if len(assets) == 0 {
		return domain.ErrEntityNotFound.WithDetailsf("%s has no tracks", ref)
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	progress := output.NewProgress(c.App.ErrWriter, ref.String(), len(assets))
	files := make([]fileView, len(assets))

	// The first failure cancels the remaining downloads.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, asset := range assets {
		i, asset := i, asset
		g.Go(func() error {
			reqCtx := logger.WithRequestID(gctx, logger.NewRequestID())

			dl, err := rt.Pipeline.FetchAndDecrypt(reqCtx, asset, opts.Lossless)
			if err != nil {
				progress.Fail()
				return err
			}

			path := filepath.Join(opts.OutDir, FileName(dl))
			if err := os.WriteFile(path, dl.Data, 0644); err != nil {
				progress.Fail()
				return fmt.Errorf("write %s: %w", path, err)
			}

			progress.Done(int64(len(dl.Data)))
			files[i] = fileView{
				ID:       dl.Asset.ID,
				Title:    dl.Asset.Title,
				Encoding: dl.Encoding,
				Bytes:    len(dl.Data),
				Path:     path,
			}
			return nil
		})
	}
	err = g.Wait()
	progress.Finish()
	if err != nil {
		return err
	}

	return formatter.Format(c.App.Writer, downloadView{Reference: ref.String(), Files: files})
}
