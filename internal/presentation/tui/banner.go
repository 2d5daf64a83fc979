package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the AutoQuote banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`    _       _         ___              _       `, "#E6A15C"},
		{`   /_\ _  _| |_ ___  / _ \ _  _ ___ __| |_ ___ `, "#DDA86D"},
		{`  / _ \ || |  _/ _ \| (_) | || / _ / _|  _/ -_)`, "#D6B07E"},
		{` /_/ \_\_,_|\__\___/ \__\_\\_,_\___\__|\__\___|`, "#CFCFC5"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
