package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/pondmodel/internal/pond"
)

// RenderReport formats a self-test report, one line per check.
func RenderReport(r pond.Report) string {
	var b strings.Builder

	b.WriteString(Title.Render("pond model self-test"))
	b.WriteString("\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("weir_height=%g weir_width=%g alpha=%g c=%.6g",
		r.Params.WeirHeight, r.Params.WeirWidth, r.Params.Alpha, r.Params.C)))
	b.WriteString("\n\n")

	for _, c := range r.Checks {
		if c.Passed() {
			fmt.Fprintf(&b, "  %s  %s\n", Pass.Render("PASS"), c.Name)
			continue
		}
		fmt.Fprintf(&b, "  %s  %s\n        %s\n", Fail.Render("FAIL"), c.Name, Subtle.Render(c.Err.Error()))
	}

	passed := 0
	for _, c := range r.Checks {
		if c.Passed() {
			passed++
		}
	}
	b.WriteString("\n")
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(r.Checks))
	if r.Passed() {
		b.WriteString(Pass.Render(summary))
	} else {
		b.WriteString(Fail.Render(summary))
	}

	return Panel.Render(b.String())
}
