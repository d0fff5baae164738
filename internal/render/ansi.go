package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shine/internal/hl"
	"shine/internal/source"
)

// ANSI writes themed terminal output for one highlighted file.
type ANSI struct {
	Theme *Theme
	// Gutter enables a line number column.
	Gutter bool
	// NoColor strips styling, leaving layout intact.
	NoColor bool
}

// Write renders the file's content with its highlighted ranges to w. Ranges
// must be sorted and non-overlapping, which is the collector's output
// contract.
func (a *ANSI) Write(w io.Writer, fs *source.FileSet, file source.FileID, ranges []hl.HighlightedRange) error {
	f := fs.Get(file)
	content := f.Content

	gutterWidth := 0
	if a.Gutter {
		gutterWidth = len(fmt.Sprintf("%d", lineCount(content)))
	}

	line := uint32(1)
	if err := a.writeGutter(w, gutterWidth, line); err != nil {
		return err
	}

	var cursor uint32
	emit := func(text string, c *color.Color) error {
		for {
			nl := strings.IndexByte(text, '\n')
			if nl < 0 {
				break
			}
			if err := a.writeStyled(w, text[:nl], c); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			line++
			if err := a.writeGutter(w, gutterWidth, line); err != nil {
				return err
			}
			text = text[nl+1:]
		}
		return a.writeStyled(w, text, c)
	}

	for _, r := range ranges {
		if r.Span.Start > cursor {
			if err := emit(string(content[cursor:r.Span.Start]), nil); err != nil {
				return err
			}
		}
		style, ok := a.Theme.Lookup(r.Highlight)
		var c *color.Color
		if ok && !a.NoColor {
			c = colorFor(style)
		}
		if err := emit(string(content[r.Span.Start:r.Span.End]), c); err != nil {
			return err
		}
		cursor = r.Span.End
	}
	if int(cursor) < len(content) {
		if err := emit(string(content[cursor:]), nil); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (a *ANSI) writeStyled(w io.Writer, text string, c *color.Color) error {
	if text == "" {
		return nil
	}
	if c == nil || a.NoColor {
		_, err := io.WriteString(w, text)
		return err
	}
	_, err := c.Fprint(w, text)
	return err
}

func (a *ANSI) writeGutter(w io.Writer, width int, line uint32) error {
	if width == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%*d | ", width, line)
	return err
}

func lineCount(content []byte) int {
	n := 1
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	return n
}

// WriteSpans renders the plain machine-readable listing: one range per line
// with position, classification, and text.
func WriteSpans(w io.Writer, fs *source.FileSet, ranges []hl.HighlightedRange) error {
	for _, r := range ranges {
		start, end := fs.Resolve(r.Span)
		f := fs.Get(r.Span.File)
		text := string(f.Content[r.Span.Start:r.Span.End])
		if _, err := fmt.Fprintf(w, "%d:%d-%d:%d\t%s\t%q\n",
			start.Line, start.Col, end.Line, end.Col, r.Highlight, text); err != nil {
			return err
		}
	}
	return nil
}

// WriteLegend prints every tag with its themed appearance, aligned into two
// columns. Display names are title-cased tag names.
func (a *ANSI) WriteLegend(w io.Writer) error {
	caser := cases.Title(language.English)
	names := hl.Tags()

	width := 0
	for _, name := range names {
		if rw := runewidth.StringWidth(name); rw > width {
			width = rw
		}
	}

	for i, name := range names {
		display := caser.String(name)
		pad := strings.Repeat(" ", width-runewidth.StringWidth(name)+2)
		sample := name
		style, ok := a.Theme.Lookup(hl.H(hl.Tag(i))) //nolint:gosec // i ranges over tags
		if ok && !a.NoColor {
			sample = colorFor(style).Sprint(name)
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", sample, pad, display); err != nil {
			return err
		}
	}
	return nil
}
