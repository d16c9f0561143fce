package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleScenario = `
duration: 6
facility:
  facility: unit1
  assem_size: 10
  n_assem_batch: 1
  n_assem_core: 1
  n_assem_fresh: 0
  n_assem_spent: 0
  cycle_time: 1
  refuel_time: 0
  fuel_incommods: [uox]
  fuel_inrecipes: [fresh_uox]
  fuel_outcommods: [waste]
  fuel_outrecipes: [spent_uox]
  fuel_prefs: [1]
  power_cap: 100
supply:
  uox: fresh_uox
demand:
  - requester: sink
    commodity: waste
    quantity: 10
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestCLIRunsScenario(t *testing.T) {
	t.Setenv("REACTORCORE_RECORDER_DRIVER", "memory")
	path := writeScenario(t, sampleScenario)

	var stdout, stderr bytes.Buffer
	code := cli([]string{"-scenario", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "unit1: ran 6 steps") {
		t.Fatalf("summary missing: %q", out)
	}
	if !strings.Contains(out, "shipped") {
		t.Fatalf("summary missing shipped count: %q", out)
	}
}

func TestCLIStepsOverride(t *testing.T) {
	t.Setenv("REACTORCORE_RECORDER_DRIVER", "memory")
	path := writeScenario(t, sampleScenario)

	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-scenario", path, "-steps", "2"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "ran 2 steps") {
		t.Fatalf("override ignored: %q", stdout.String())
	}
}

func TestCLIMissingScenarioFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli(nil, &stdout, &stderr); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr.String(), "-scenario is required") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestCLIBadScenarioFile(t *testing.T) {
	t.Setenv("REACTORCORE_RECORDER_DRIVER", "memory")
	path := writeScenario(t, "duration: 0\n")

	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-scenario", path}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "reactor-sim:") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunWritesSnapshots(t *testing.T) {
	t.Setenv("REACTORCORE_RECORDER_DRIVER", "memory")
	t.Setenv("REACTORCORE_SNAPSHOT_DRIVER", "fs")
	root := t.TempDir()
	t.Setenv("REACTORCORE_SNAPSHOT_FS_ROOT", root)

	path := writeScenario(t, strings.Replace(sampleScenario,
		"duration: 6", "duration: 6\nsnapshot_every: 2", 1))

	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-scenario", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}

	matches, err := filepath.Glob(filepath.Join(root, "unit1", "*.json"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("snapshots = %v, want 3 (steps 1, 3, 5)", matches)
	}
}
