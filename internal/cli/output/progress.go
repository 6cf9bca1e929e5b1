package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Progress reports batch download progress on a single terminal line.
// It is safe for concurrent use by download workers.
type Progress struct {
	w     io.Writer
	title string
	width int

	mu     sync.Mutex
	total  int
	done   int
	failed int
	bytes  int64
}

// NewProgress creates a progress line for total assets.
func NewProgress(w io.Writer, title string, total int) *Progress {
	return &Progress{
		w:     w,
		title: title,
		width: 30,
		total: total,
	}
}

// Done records one completed asset of n bytes.
func (p *Progress) Done(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	p.bytes += n
	p.render()
}

// Fail records one failed asset.
func (p *Progress) Fail() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed++
	p.render()
}

// Finish renders the final state and ends the line.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.render()
	fmt.Fprintln(p.w)
}

// Counts returns completed and failed asset counts and total bytes.
func (p *Progress) Counts() (done, failed int, bytes int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done, p.failed, p.bytes
}

func (p *Progress) render() {
	if p.total <= 0 {
		fmt.Fprintf(p.w, "\r%s %d done (%s)", p.title, p.done, FormatBytes(p.bytes))
		return
	}

	finished := p.done + p.failed
	if finished > p.total {
		finished = p.total
	}
	filled := p.width * finished / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	line := fmt.Sprintf("\r%s [%s] %d/%d (%s)", p.title, bar, p.done, p.total, FormatBytes(p.bytes))
	if p.failed > 0 {
		line += fmt.Sprintf(" %d failed", p.failed)
	}
	fmt.Fprint(p.w, line)
}
