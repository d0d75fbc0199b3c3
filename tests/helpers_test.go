package tests_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"
)

// expectContains returns a comparator verifying the output contains a substring.
func expectContains(substr string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if !strings.Contains(stdout, substr) {
			testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
			testing.Fail()
		}
	}
}

// expectExactly returns a comparator verifying the whole output.
func expectExactly(expected string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		if stdout != expected {
			testing.Log(fmt.Sprintf("expected output %q, got %q", expected, stdout))
			testing.Fail()
		}
	}
}

// expectFile returns a comparator verifying that path exists and is not empty.
func expectFile(path string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			testing.Log(fmt.Sprintf("expected non-empty file %q: %v", path, err))
			testing.Fail()
		}
	}
}

// expectFileContains returns a comparator verifying the content of path.
func expectFileContains(path, substr string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		content, err := os.ReadFile(path) //nolint:gosec // test fixture path
		if err != nil || !strings.Contains(string(content), substr) {
			testing.Log(fmt.Sprintf("expected %q in %q: %v", substr, path, err))
			testing.Fail()
		}
	}
}

// expectNoFile returns a comparator verifying that path does not exist.
func expectNoFile(path string) test.Comparator {
	return func(_ string, testing tig.T) {
		testing.Helper()

		if _, err := os.Stat(path); err == nil {
			testing.Log(fmt.Sprintf("expected %q not to exist", path))
			testing.Fail()
		}
	}
}
