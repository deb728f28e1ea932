// Package testutil provides shared test utilities and fixtures.
//
// It must not import any package under test, so fixtures are exposed as
// paths and readers rather than parsed values.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// ExampleReportPath returns the absolute path of the five-scanner example
// report kept with the registration package.
func ExampleReportPath(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil source file")
	}
	return filepath.Join(filepath.Dir(file), "..", "registration", "testdata", "example.txt")
}

// OpenExampleReport opens the example report. It is closed when the test ends.
func OpenExampleReport(t testing.TB) *os.File {
	t.Helper()
	f, err := os.Open(ExampleReportPath(t))
	if err != nil {
		t.Fatalf("open example report: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
