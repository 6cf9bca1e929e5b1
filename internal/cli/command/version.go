package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/tunevault-go/internal/cli/output"
	"github.com/yndnr/tunevault-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: versionShow,
	}
}

type versionView buildinfo.Info

func (v versionView) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("version", v.Version)
	t.AddRow("commit", v.Commit)
	t.AddRow("build_time", v.BuildTime)
	t.AddRow("go_version", v.GoVersion)
	t.AddRow("platform", v.Platform)
	return t
}

func versionShow(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	formatter, _, err := rt.Formatter()
	if err != nil {
		return err
	}
	return formatter.Format(c.App.Writer, versionView(buildinfo.Get()))
}
