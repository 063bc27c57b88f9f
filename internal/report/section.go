package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var headerColor = color.New(color.FgCyan, color.Bold)

// SectionPrinter writes "=====> header <=====" sections separated by blank
// lines. With SuppressEmpty set, sections with an empty body are skipped;
// the hook sections use that, run sections always print.
type SectionPrinter struct {
	Out           io.Writer
	SuppressEmpty bool

	needGap bool
}

// Print writes one section. A body already ending in a newline does not get
// a second one.
func (p *SectionPrinter) Print(header string, body string) {
	if p.SuppressEmpty && body == "" {
		return
	}
	if p.needGap {
		fmt.Fprintln(p.Out)
	}
	fmt.Fprintln(p.Out, decorateHeader(header))
	if body != "" {
		if strings.HasSuffix(body, "\n") {
			fmt.Fprint(p.Out, body)
		} else {
			fmt.Fprintln(p.Out, body)
		}
	}
	p.needGap = true
}

func decorateHeader(header string) string {
	return headerColor.Sprintf("=====> %s <=====", header)
}
