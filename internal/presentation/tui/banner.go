package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`  _   _       _  __`, "#818cf8"},
	{` | | | |_ __ (_)/ _|_   _`, "#a78bfa"},
	{` | | | | '_ \| | |_| | | |`, "#c084fc"},
	{` | |_| | | | | |  _| |_| |`, "#e879f9"},
	{`  \___/|_| |_|_|_|  \__, |`, "#f472b6"},
	{`                    |___/`, "#fb7185"},
}

// PrintBanner writes the unify banner and version to w.
// Colors follow the terminal profile, so a pipe gets plain text.
func PrintBanner(w io.Writer, version string) {
	p := termenv.NewOutput(w).ColorProfile()

	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, p.String("  "+version).Faint())
	}
	fmt.Fprintln(w)
}
