// Package testsupport loads instance and submission fixtures and manages
// golden files for widget tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/submission"
)

// MustLoadInstance reads a stored instance fixture.
func MustLoadInstance(t *testing.T, path string) model.Instance {
	t.Helper()

	instance, err := LoadInstance(path)
	if err != nil {
		t.Fatalf("load instance: %v", err)
	}
	return instance
}

// LoadInstance reads a JSON instance fixture, returning an error for callers
// managing setup outside of *testing.T.
func LoadInstance(path string) (model.Instance, error) {
	if path == "" {
		return model.Instance{}, errors.New("testsupport: instance path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Instance{}, fmt.Errorf("testsupport: read instance: %w", err)
	}
	instance := model.NewInstance()
	if err := json.Unmarshal(data, &instance); err != nil {
		return model.Instance{}, fmt.Errorf("testsupport: unmarshal instance: %w", err)
	}
	return instance, nil
}

// MustLoadSubmission reads a JSON submission fixture, keeping field order.
func MustLoadSubmission(t *testing.T, path string) submission.Submission {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read submission: %v", err)
	}
	var sub submission.Submission
	if err := sub.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal submission: %v", err)
	}
	return sub
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}
