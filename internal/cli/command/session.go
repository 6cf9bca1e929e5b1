package command

import (
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tunevault-go/internal/cli/output"
	"github.com/yndnr/tunevault-go/internal/core/domain"
)

// SessionCommand returns the session command.
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:    "session",
		Aliases: []string{"sess"},
		Usage:   "Authenticate and show the current session",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Discard any cached session and authenticate again",
			},
		},
		Action: sessionShow,
	}
}

// sessionView is the displayable part of a session; tokens are omitted.
type sessionView struct {
	UserID     int64     `json:"user_id" yaml:"user_id"`
	Anonymous  bool      `json:"anonymous" yaml:"anonymous"`
	Lossless   bool      `json:"lossless" yaml:"lossless"`
	IssuedAt   time.Time `json:"issued_at" yaml:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at" yaml:"expires_at"`
	Credential bool      `json:"credential" yaml:"credential"`
}

func newSessionView(sess domain.Session, ttl time.Duration, hasCredential bool) sessionView {
	return sessionView{
		UserID:     sess.UserID,
		Anonymous:  sess.Anonymous(),
		Lossless:   sess.Privileged,
		IssuedAt:   sess.IssuedAt,
		ExpiresAt:  sess.ExpiresAt(ttl),
		Credential: hasCredential,
	}
}

func (v sessionView) Table() *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("user_id", strconv.FormatInt(v.UserID, 10))
	t.AddRow("anonymous", strconv.FormatBool(v.Anonymous))
	t.AddRow("credential", strconv.FormatBool(v.Credential))
	t.AddRow("lossless", strconv.FormatBool(v.Lossless))
	t.AddRow("issued_at", output.FormatTime(v.IssuedAt))
	t.AddRow("expires_at", output.FormatTime(v.ExpiresAt))
	return t
}

func sessionShow(c *cli.Context) error {
	rt, err := GetRuntime(c)
	if err != nil {
		return err
	}
	formatter, _, err := rt.Formatter()
	if err != nil {
		return err
	}

	if c.Bool("refresh") {
		rt.Sessions.Invalidate()
	}
	sess, err := rt.Sessions.EnsureValid(rt.Context())
	if err != nil {
		return err
	}

	return formatter.Format(c.App.Writer, newSessionView(sess, rt.Sessions.TTL(), rt.Transport.HasCredential()))
}
