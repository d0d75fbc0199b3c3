// Package page assembles the static HTML overview listing the images of one sequence.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/farcloser/primordium/fault"
)

const (
	// Filename is the name of the generated page.
	Filename = "out.html"

	imageSuffix   = ".png"
	dotplotSuffix = "cov.png"
)

//go:embed templates/index.html
var templates embed.FS

//nolint:gochecknoglobals
var index = template.Must(template.ParseFS(templates, "templates/index.html"))

// Page is the content of an overview page.
type Page struct {
	Name      string
	Dotplots  []string
	BarCharts []string
}

// Partition splits image names into dot plots (ending in cov.png) and bar charts (any other .png).
// Other names are ignored. Both lists are sorted.
func Partition(names []string) ([]string, []string) {
	var dotplots, barCharts []string

	for _, name := range names {
		switch {
		case strings.HasSuffix(name, dotplotSuffix):
			dotplots = append(dotplots, name)
		case strings.HasSuffix(name, imageSuffix):
			barCharts = append(barCharts, name)
		}
	}

	slices.Sort(dotplots)
	slices.Sort(barCharts)

	return dotplots, barCharts
}

// Scan lists the images found in dir.
func Scan(dir, name string) (*Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	dotplots, barCharts := Partition(names)

	return &Page{Name: name, Dotplots: dotplots, BarCharts: barCharts}, nil
}

// Write renders page as HTML.
func Write(writer io.Writer, page *Page) error {
	if err := index.Execute(writer, page); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}

	return nil
}
