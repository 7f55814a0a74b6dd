package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/SaiNageswarS/go-rest-boot/annotation"
	"github.com/SaiNageswarS/go-rest-boot/rest"
	"golang.org/x/sync/errgroup"
)

// RouteTable scans the given directories in parallel and merges their
// annotations into one route preview.
func RouteTable(dirs []string) ([]rest.RoutePreview, error) {
	results := make([][]annotation.Occurrence, len(dirs))

	g := new(errgroup.Group)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			occs, err := annotation.NewScanner().ScanDir(dir)
			if err != nil {
				return fmt.Errorf("scanning %s: %w", dir, err)
			}
			results[i] = occs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []annotation.Occurrence
	for _, occs := range results {
		all = append(all, occs...)
	}
	return rest.PreviewRoutes(all), nil
}

func PrintRoutes(w io.Writer, previews []rest.RoutePreview) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tHANDLER\tAUTH")
	for _, p := range previews {
		fmt.Fprintf(tw, "%s\t%s\t%s.%s\t%s\n", p.Method, p.Pattern, p.Controller, p.Handler, p.Auth)
	}
	tw.Flush()
}
