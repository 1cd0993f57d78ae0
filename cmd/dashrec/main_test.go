package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf("[paths]\ndata_dir = %q\nlog_dir = %q\n",
		filepath.Join(base, "data"), filepath.Join(base, "logs"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", configPath))
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q does not contain %q", output, want)
	}
}

func TestConfigValidate(t *testing.T) {
	out, err := runCLI(t, writeTestConfig(t), "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, writeTestConfig(t), "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigInitRefusesExisting(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatalf("write existing: %v", err)
	}

	if _, err := runCLI(t, writeTestConfig(t), "config", "init", "--path", target); err == nil {
		t.Fatal("expected init over existing file to fail")
	}
	if _, err := runCLI(t, writeTestConfig(t), "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowPrintsTOML(t *testing.T) {
	out, err := runCLI(t, writeTestConfig(t), "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, "data_dir")
}

func TestListEmpty(t *testing.T) {
	out, err := runCLI(t, writeTestConfig(t), "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "No recordings")
}

func TestStatusMissingRecording(t *testing.T) {
	_, err := runCLI(t, writeTestConfig(t), "status", "20260115_093000")
	if err == nil {
		t.Fatal("expected missing recording to fail")
	}
	requireContains(t, err.Error(), "not found")
}

func TestDeleteMissingRecording(t *testing.T) {
	_, err := runCLI(t, writeTestConfig(t), "delete", "--force", "20260115_093000")
	if err == nil {
		t.Fatal("expected missing recording to fail")
	}
	requireContains(t, err.Error(), "not found")
}

func TestStatsEmpty(t *testing.T) {
	out, err := runCLI(t, writeTestConfig(t), "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "total:")
	requireContains(t, out, "uploaded:")
}

func TestListRejectsUnknownStatus(t *testing.T) {
	_, err := runCLI(t, writeTestConfig(t), "list", "--status", "bogus")
	if err == nil {
		t.Fatal("expected unknown status to fail")
	}
}
