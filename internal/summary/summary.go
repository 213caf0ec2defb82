// Package summary reports walk results once the export finishes.
package summary

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"

	"github.com/keyboardsamurai/srcexport/internal/logger"
	"github.com/keyboardsamurai/srcexport/internal/walker"
)

// PrintResults logs the final export counters.
func PrintResults(log logger.Logger, exported int, skipped int, elapsed time.Duration) {
	log.Info("exported %d files, skipped %d entries in %s",
		exported, skipped, elapsed.Round(time.Millisecond))
}

// PrintSkipped writes the skipped items to out, sorted by path and
// grouped under a small header. Nothing is written when the list is
// empty.
func PrintSkipped(out io.Writer, items []walker.SkippedItem) {
	if len(items) == 0 {
		return
	}

	sorted := make([]walker.SkippedItem, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	fmt.Fprintf(out, "\n%s\n", color.YellowString("Skipped entries (%d):", len(sorted)))
	for _, it := range sorted {
		kind := "file"
		if it.IsDir {
			kind = "dir"
		}
		fmt.Fprintf(out, "  %-4s %-40s %s\n", kind, it.Path, it.Reason)
	}
}
