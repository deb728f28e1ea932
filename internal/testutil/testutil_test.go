package testutil

import (
	"bufio"
	"errors"
	"strings"
	"testing"
)

func TestExampleReport(t *testing.T) {
	t.Parallel()

	f := OpenExampleReport(t)
	sc := bufio.NewScanner(f)
	headers := 0
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "--- scanner ") {
			headers++
		}
	}
	AssertNoError(t, sc.Err())
	if headers != 5 {
		t.Errorf("example report has %d scanners, want 5", headers)
	}
}

func TestAssertNoError(t *testing.T) {
	t.Parallel()
	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	t.Parallel()
	AssertError(t, errors.New("expected"))
}
