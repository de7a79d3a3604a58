package widget

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/testsupport"
)

func TestUpdateMatchesGolden(t *testing.T) {
	w := newContact(t)
	submitted := testsupport.MustLoadSubmission(t, filepath.Join("testdata", "submission.json"))

	got := w.Update(submitted, model.NewInstance())

	golden := filepath.Join("testdata", "update.golden.json")
	if testsupport.WriteGolden(t, golden, got) {
		return
	}

	want := model.NewInstance()
	if err := json.Unmarshal(testsupport.MustReadGolden(t, golden), &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}

	reloaded := testsupport.MustLoadInstance(t, golden)
	if diff := testsupport.CompareGolden(got, reloaded); diff != "" {
		t.Fatalf("stored instance does not reload (-want +got):\n%s", diff)
	}
}
