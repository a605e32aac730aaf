package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const watchRecord = `{"winner":"Ash","p1":"Ash","p2":"Misty",
	"p1team":[{"species":"Pikachu","item":"Light Ball","ability":"Static","nature":"Jolly","moves":["Thunderbolt"]}],
	"p2team":[{"species":"Starmie","item":"Leftovers","ability":"Natural Cure","nature":"Timid","moves":["Surf"]}],
	"p1rating":1500,"p2rating":1480,"timestamp":"2024-05-03T10:00:00Z"}`

func TestWatchAndGenerate_RegeneratesOnNewLog(t *testing.T) {
	logs := t.TempDir()
	dayDir := filepath.Join(logs, "2024-05", "gen9ou", "2024-05-03")
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		t.Fatal(err)
	}

	renderers, err := resolveRenderers([]string{"json"})
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "site")
	opts := generateOptions{
		directory: logs,
		formats:   []string{"gen9ou"},
		years:     []string{"2024"},
		months:    []string{"05"},
		renderers: renderers,
		outputDir: out,
		workers:   1,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watchAndGenerate(ctx, opts, 20*time.Millisecond)
	}()

	// The watcher registers its directories asynchronously, so keep adding
	// logs until a regeneration shows up.
	index := filepath.Join(out, "gen9ou", "2024", "05", "index.json")
	deadline := time.Now().Add(10 * time.Second)
	for i := 0; ; i++ {
		name := fmt.Sprintf("gen9ou-%d.log.json", i)
		if err := os.WriteFile(filepath.Join(dayDir, name), []byte(watchRecord), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(200 * time.Millisecond)
		if _, err := os.Stat(index); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("no regeneration after writing battle logs")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("watchAndGenerate returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watchAndGenerate did not stop after cancellation")
	}

	if _, err := os.Stat(filepath.Join(out, "gen9ou", "2024", "05", "03", "pikachu.json")); err != nil {
		t.Errorf("day species file missing after regeneration: %v", err)
	}
}

func TestWatchAndGenerate_IgnoresOtherFiles(t *testing.T) {
	logs := t.TempDir()
	dayDir := filepath.Join(logs, "2024-05", "gen9ou", "2024-05-03")
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		t.Fatal(err)
	}
	renderers, err := resolveRenderers([]string{"json"})
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "site")
	opts := generateOptions{
		directory: logs,
		formats:   []string{"gen9ou"},
		years:     []string{"2024"},
		months:    []string{"05"},
		renderers: renderers,
		outputDir: out,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- watchAndGenerate(ctx, opts, 10*time.Millisecond)
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dayDir, "notes.txt"), []byte(watchRecord), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := <-done; err != nil {
		t.Fatalf("watchAndGenerate returned error: %v", err)
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("a non-log file should not trigger regeneration")
	}
}

func TestWatchAndGenerate_NoDirectories(t *testing.T) {
	opts := generateOptions{
		directory: filepath.Join(t.TempDir(), "missing"),
		formats:   []string{"gen9ou"},
		years:     []string{"2024"},
		months:    []string{"05"},
	}

	err := watchAndGenerate(context.Background(), opts, time.Millisecond)
	if err == nil || !strings.Contains(err.Error(), "no log directories exist") {
		t.Fatalf("expected missing directories error, got: %v", err)
	}
}
