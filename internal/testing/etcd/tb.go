package etcd

import (
	"fmt"
	"os"
	"sync"

	"go.etcd.io/etcd/client/pkg/v3/testutil"
)

// quietTB is a testutil.TB detached from any test. Fatal failures panic.
type quietTB struct {
	name string

	mu       sync.Mutex
	failed   bool
	cleanups []func()
}

var _ testutil.TB = &quietTB{} //nolint:exhaustruct

func (t *quietTB) Helper() {}

func (t *quietTB) Cleanup(f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cleanups = append(t.cleanups, f)
}

func (t *quietTB) Error(...any) { t.Fail() }

func (t *quietTB) Errorf(string, ...any) { t.Fail() }

func (t *quietTB) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.failed = true
}

func (t *quietTB) FailNow() {
	t.Fail()
	panic(t.name + ": FailNow called")
}

func (t *quietTB) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.failed
}

func (t *quietTB) Fatal(args ...any) {
	panic(t.name + ": " + fmt.Sprint(args...))
}

func (t *quietTB) Fatalf(format string, args ...any) {
	panic(t.name + ": " + fmt.Sprintf(format, args...))
}

func (t *quietTB) Log(...any) {}

func (t *quietTB) Logf(string, ...any) {}

func (t *quietTB) Name() string { return t.name }

func (t *quietTB) Skip(...any) {}

func (t *quietTB) TempDir() string {
	dir, err := os.MkdirTemp("", t.name)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	return dir
}

func (t *quietTB) runCleanups() {
	t.mu.Lock()
	cleanups := t.cleanups
	t.cleanups = nil
	t.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

type silentTB struct {
	testutil.TB
}

// Silence wraps tb and drops its log output.
func Silence(tb testutil.TB) testutil.TB {
	return silentTB{TB: tb}
}

func (silentTB) Log(...any) {}

func (silentTB) Logf(string, ...any) {}
