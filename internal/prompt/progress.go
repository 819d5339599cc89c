package prompt

import (
	"fmt"
	"io"
	"math"

	"github.com/dpgen-labs/dpgen/internal/output"
)

// progressLine redraws one status line per report. The percentage is the sum
// of all increments, capped at 100.
type progressLine struct {
	w       io.Writer
	title   string
	percent float64
	drawn   bool
}

func newProgressLine(w io.Writer, title string) *progressLine {
	return &progressLine{w: w, title: title}
}

func (p *progressLine) Report(increment float64, message string) {
	p.percent = math.Min(100, p.percent+increment)
	fmt.Fprintf(p.w, "\r\033[K%s %s %s",
		output.StyleSummary.Render(p.title),
		output.StyleDim.Render(message),
		output.StyleNoun.Render(fmt.Sprintf("%3.0f%%", p.percent)))
	p.drawn = true
}

func (p *progressLine) done() {
	if p.drawn {
		fmt.Fprintln(p.w)
	}
}
