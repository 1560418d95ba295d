package engine_test

import (
	"testing"

	"go.uber.org/goleak"
)

// Landing operations shell out to git and drive goroutines for command
// io; none of them may outlive the operation that started them.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
