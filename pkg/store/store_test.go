package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-widgetform/pkg/model"
)

func TestMemoryCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if _, err := s.Get(ctx, "wpcw_contact", "1"); !errors.Is(err, ErrInstanceNotFound) {
		t.Fatalf("expected ErrInstanceNotFound, got %v", err)
	}

	instance := model.NewInstance()
	instance.Title = "Contact"
	instance.Set("hours", model.InstanceValue{Value: model.HoursValue(model.DefaultWeek()), Order: 1})

	for _, number := range []string{"3", "1"} {
		if err := s.Save(ctx, "wpcw_contact", number, instance); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	instance.Fields["hours"].Value.Hours[0].Open[0] = "mutated"
	got, err := s.Get(ctx, "wpcw_contact", "1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Fields["hours"].Value.Hours[0].Open[0] != "9:00 AM" {
		t.Fatalf("stored instance shares memory with the caller")
	}

	numbers, _ := s.List(ctx, "wpcw_contact")
	if diff := cmp.Diff([]string{"1", "3"}, numbers); diff != "" {
		t.Fatalf("numbers mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(ctx, "wpcw_contact", "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err = s.Delete(ctx, "wpcw_contact", "1")
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category, got %v", err)
	}
}
