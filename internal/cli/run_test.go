package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type harness struct {
	t      *testing.T
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	config := filepath.Join(dir, "widgetform.jsonc")
	content := `{
		// keep instances between runs
		"store": {"driver": "file", "path": "` + filepath.ToSlash(filepath.Join(dir, "instances.json")) + `"},
		"logging": {"level": "error"}
	}`
	if err := os.WriteFile(config, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &harness{t: t, config: config}
}

func (h *harness) run(stdin string, args ...string) (string, string, int) {
	h.t.Helper()

	var stdout, stderr bytes.Buffer
	all := append([]string{"--config", h.config}, args...)
	code := Run(context.Background(), strings.NewReader(stdin), &stdout, &stderr, all)
	return stdout.String(), stderr.String(), code
}

func TestUsageWithoutCommand(t *testing.T) {
	var stdout bytes.Buffer
	code := Run(context.Background(), strings.NewReader(""), &stdout, &bytes.Buffer{}, nil)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	for _, want := range []string{"Commands:", "timeslots", "--config"} {
		if !strings.Contains(stdout.String(), want) {
			t.Fatalf("expected %q in usage:\n%s", want, stdout.String())
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	var stderr bytes.Buffer
	code := Run(context.Background(), strings.NewReader(""), &bytes.Buffer{}, &stderr, []string{"bogus"})
	if code != 1 || !strings.Contains(stderr.String(), "unknown command: bogus") {
		t.Fatalf("unexpected result %d: %s", code, stderr.String())
	}
}

func TestTimeSlotsCommand(t *testing.T) {
	h := newHarness(t)

	stdout, stderr, code := h.run("", "timeslots", "--increment", "fifteen_minutes")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 95 || lines[1] != "12:15 AM" {
		t.Fatalf("unexpected slots (%d): %v", len(lines), lines[:2])
	}
}

func TestUpdateThenDisplayAndList(t *testing.T) {
	h := newHarness(t)

	stdout, stderr, code := h.run(`{"title":{"value":"Hello"},"phone":{"value":"555-0100"}}`, "update", "2")
	if code != 0 {
		t.Fatalf("update exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"title": "Hello"`) {
		t.Fatalf("expected stored instance on stdout:\n%s", stdout)
	}

	stdout, stderr, code = h.run("", "display", "2")
	if code != 0 {
		t.Fatalf("display exit %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "555-0100") || !strings.Contains(stdout, "Hello") {
		t.Fatalf("unexpected display markup:\n%s", stdout)
	}

	stdout, _, _ = h.run("", "list")
	if strings.TrimSpace(stdout) != "2" {
		t.Fatalf("unexpected list output %q", stdout)
	}
}

func TestUpdateFromFormBody(t *testing.T) {
	h := newHarness(t)

	body := "widget-wpcw_contact%5B4%5D%5Bfax%5D%5Bvalue%5D=555-0199"
	_, stderr, code := h.run(body, "update", "4", "--format", "form")
	if code != 0 {
		t.Fatalf("update exit %d: %s", code, stderr)
	}

	stdout, _, _ := h.run("", "form", "4")
	if !strings.Contains(stdout, `value="555-0199"`) {
		t.Fatalf("expected stored fax in form:\n%s", stdout)
	}
}

func TestDisplayMissingPlacementFails(t *testing.T) {
	h := newHarness(t)

	_, stderr, code := h.run("", "display", "99")
	if code != 1 || !strings.Contains(stderr, "not found") {
		t.Fatalf("unexpected result %d: %s", code, stderr)
	}
}

func TestCommandRequiresNumber(t *testing.T) {
	h := newHarness(t)

	_, stderr, code := h.run("", "form")
	if code != 1 || !strings.Contains(stderr, errNumberRequired.Error()) {
		t.Fatalf("unexpected result %d: %s", code, stderr)
	}
}
