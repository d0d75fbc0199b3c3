// Package testutils provides test infrastructure for covbar integration tests.
package testutils

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"
)

// ReportsDir is the data directory holding generated reports.
const ReportsDir = "reports"

// Setup creates a test case configured to run the covbar binary.
func Setup() *test.Case {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", "covbar")

	return agar.Setup(binaryPath)
}

// Row is one report record, reduced to the two filtered columns.
type Row struct {
	Identity string
	Coverage string
}

// Report formats rows as a tab-separated coverage report with 16 columns.
func Report(rows ...Row) string {
	var builder strings.Builder

	for _, row := range rows {
		fields := []string{"contig_1", "gene_1", row.Identity}
		for range 12 {
			fields = append(fields, "0")
		}

		fields = append(fields, row.Coverage)
		builder.WriteString(strings.Join(fields, "\t") + "\n")
	}

	return builder.String()
}

// Reports writes each named report into a fresh directory and returns its path.
func Reports(data test.Data, reports map[string]string) string {
	dir := data.Temp().Dir(ReportsDir)

	for name, content := range reports {
		data.Temp().Save(content, ReportsDir, name)
	}

	return dir
}
