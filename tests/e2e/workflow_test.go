package e2e

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const serverStartTimeout = 15 * time.Second

// cliEnv locates the moodatlas binary and returns an environment whose HOME
// is an isolated temp dir.
func cliEnv(t *testing.T) (string, []string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("MOODATLAS_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "moodatlas")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/moodatlas ./cmd/moodatlas'.", cliPath)
	}

	tempDir := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "MOODATLAS_") {
			env = append(env, e)
		}
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		"MOODATLAS_TIMEZONE=UTC",
	)
	return cliPath, env
}

func TestEndToEndWorkflow(t *testing.T) {
	cliPath, env := cliEnv(t)

	out := runCmd(t, cliPath, env, "init")
	assertContains(t, out, "Initialized moodatlas storage")

	runCmd(t, cliPath, env, "user", "add", "ana", "--pin", "1234", "--default")
	runCmd(t, cliPath, env, "entry", "add", "--date", "yesterday", "--title", "Walk",
		"--content", "long walk by the river", "--mood", "Happy,Calm", "--tag", "Nature")
	runCmd(t, cliPath, env, "entry", "add", "--content", "short note today", "--mood", "Stressed")

	out = runCmd(t, cliPath, env, "entry", "list")
	assertContains(t, out, "Walk  (5 words)")

	out = runCmd(t, cliPath, env, "stats", "--json")
	var snap struct {
		TotalEntries  int `json:"total_entries"`
		CurrentStreak int `json:"current_streak"`
	}
	if err := json.Unmarshal([]byte(out), &snap); err != nil {
		t.Fatalf("stats --json is not JSON: %v\n%s", err, out)
	}
	if snap.TotalEntries != 2 || snap.CurrentStreak != 2 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}

	exportPath := filepath.Join(t.TempDir(), "journal.txt")
	runCmd(t, cliPath, env, "export", "--output", exportPath)
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	assertContains(t, string(data), "=== MoodAtlas Journal Export ===")

	runCmd(t, cliPath, env, "backup", "create")
	out = runCmd(t, cliPath, env, "doctor")
	assertContains(t, out, "All diagnostics passed!")

	out = runCmd(t, cliPath, env, "validate")
	assertContains(t, out, "No conflicts detected.")
}

func TestServeAnalytics(t *testing.T) {
	cliPath, env := cliEnv(t)

	runCmd(t, cliPath, env, "init")
	runCmd(t, cliPath, env, "user", "add", "ana")
	runCmd(t, cliPath, env, "entry", "add", "--content", "served entry")

	serveCmd := exec.Command(cliPath, "serve", "--addr", "127.0.0.1:0")
	serveCmd.Env = env
	stdoutPipe, err := serveCmd.StdoutPipe()
	if err != nil {
		t.Fatalf("Failed to get stdout pipe: %v", err)
	}
	if err := serveCmd.Start(); err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	t.Cleanup(func() {
		_ = serveCmd.Process.Signal(os.Interrupt)
		_ = serveCmd.Wait()
	})

	urlCh := make(chan string, 1)
	go func() {
		scanner := bufio.NewScanner(stdoutPipe)
		for scanner.Scan() {
			line := scanner.Text()
			if idx := strings.Index(line, "http://"); idx != -1 {
				urlCh <- strings.TrimSpace(line[idx:])
				return
			}
		}
	}()

	var baseURL string
	select {
	case baseURL = <-urlCh:
	case <-time.After(serverStartTimeout):
		t.Fatal("Timed out waiting for server to start")
	}

	resp, err := http.Get(baseURL + "/api/users/ana/analytics")
	if err != nil {
		t.Fatalf("GET analytics failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Username  string `json:"username"`
		Analytics struct {
			TotalEntries int `json:"total_entries"`
		} `json:"analytics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Username != "ana" || body.Analytics.TotalEntries != 1 {
		t.Errorf("unexpected response: %+v", body)
	}

	resp404, err := http.Get(baseURL + "/api/users/ghost/analytics")
	if err != nil {
		t.Fatalf("GET analytics failed: %v", err)
	}
	resp404.Body.Close()
	if resp404.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown user, got %d", resp404.StatusCode)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}

func assertContains(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Errorf("expected output to contain %q, got:\n%s", sub, s)
	}
}
