//go:build basic || database

// Package integration contains end-to-end tests that run the outrank binary.
// These tests are excluded from normal test runs due to build tags.
// To run them: go test -tags basic ./integration
// Database tests need Docker: go test -tags database ./integration
package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedOutrankPath holds the path to a shared outrank binary built once for all tests.
	sharedOutrankPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getOutrankBinary returns the path to the outrank binary, building it once if needed.
func getOutrankBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "outrank-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		outrankPath := filepath.Join(tempDir, "outrank")
		buildCmd := exec.Command("go", "build", "-o", outrankPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build outrank: %v", err))
		}

		sharedOutrankPath = outrankPath
	})

	return sharedOutrankPath
}

// outrankCommand prepares an outrank invocation from the project root with
// caching and tracking isolated in a per-test HOME.
func outrankCommand(t *testing.T, args ...string) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(getOutrankBinary(), args...)
	cmd.Dir = ".."
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	return cmd
}
