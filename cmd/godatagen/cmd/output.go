package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/godatagen/internal/generator"
	"github.com/dbsmedya/godatagen/internal/loader"
	"github.com/dbsmedya/godatagen/internal/verifier"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// setOutputWriter sets the output writer (used for testing)
func setOutputWriter(w io.Writer) {
	outputWriter = w
}

// resetOutputWriter resets output to stdout (used for testing)
func resetOutputWriter() {
	outputWriter = os.Stdout
}

// printHeader prints a formatted header
func printHeader(format string, args ...interface{}) {
	title := fmt.Sprintf(format, args...)
	width := runewidth.StringWidth(title) + 4
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
	fmt.Fprintf(outputWriter, "  %s\n", color.Bold.Sprint(title))
	fmt.Fprintln(outputWriter, strings.Repeat("=", width))
}

// printSection prints a section header
func printSection(title string) {
	fmt.Fprintf(outputWriter, "[%s]\n", color.Cyan.Sprint(title))
	fmt.Fprintln(outputWriter, strings.Repeat("-", runewidth.StringWidth(title)+2))
}

// printTable prints rows under headers with columns aligned by display
// width. highlight marks rows to render in yellow.
func printTable(headers []string, rows [][]string, highlight func(i int) bool) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	fmt.Fprintf(outputWriter, "  %s\n", color.Bold.Sprint(padRow(headers, widths)))
	for i, row := range rows {
		line := padRow(row, widths)
		if highlight != nil && highlight(i) {
			line = color.Yellow.Sprint(line)
		}
		fmt.Fprintf(outputWriter, "  %s\n", line)
	}
}

// padRow pads every cell but the last to its column width.
func padRow(cells []string, widths []int) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			parts[i] = c
			continue
		}
		parts[i] = runewidth.FillRight(c, widths[i])
	}
	return strings.Join(parts, "  ")
}

// printReport prints requested and produced sizes per collection.
func printReport(report generator.Report) {
	rows := make([][]string, 0, len(report)+1)
	for _, r := range report {
		rows = append(rows, []string{r.Collection, strconv.Itoa(r.Requested), strconv.Itoa(r.Produced)})
	}
	rows = append(rows, []string{"total", "", strconv.Itoa(report.Total())})

	printTable([]string{"Collection", "Requested", "Produced"}, rows, func(i int) bool {
		return i < len(report) && report[i].Short()
	})

	for _, r := range report {
		if r.Short() {
			fmt.Fprintf(outputWriter, "  %s %s: provider ran out of unique values after %d of %d\n",
				color.Yellow.Sprint("!"), r.Collection, r.Produced, r.Requested)
		}
	}
}

// printLoadStats prints rows inserted per table in load order.
func printLoadStats(stats *loader.Stats, order []string) {
	var rows [][]string
	for _, table := range order {
		rows = append(rows, []string{table, strconv.FormatInt(stats.RowsPerTable[table], 10)})
	}
	printTable([]string{"Table", "Rows"}, rows, nil)
	fmt.Fprintf(outputWriter, "  %d rows in %d batches, %d tables created, %d dropped, took %s\n",
		stats.RowsInserted, stats.Batches, stats.TablesCreated, stats.TablesDropped, stats.Duration)
}

// printVerifyStats prints the per-table verification results.
func printVerifyStats(stats *verifier.Stats) {
	if stats == nil {
		return
	}
	fmt.Fprintln(outputWriter)
	if stats.Method == verifier.MethodSkip {
		fmt.Fprintf(outputWriter, "  Verification: skipped\n")
		return
	}
	fmt.Fprintf(outputWriter, "  Verification (%s): %d of %d tables passed\n",
		stats.Method, stats.TablesPassed, stats.TablesVerified)
}
