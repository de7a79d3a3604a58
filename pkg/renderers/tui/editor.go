// Package tui edits widget placements from a terminal. Fields are prompted
// in display order and the answers are collected into a submission that the
// widget update pipeline sanitizes like a browser post.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-widgetform/internal/logging"
	"github.com/goliatone/go-widgetform/pkg/interfaces"
	"github.com/goliatone/go-widgetform/pkg/model"
	"github.com/goliatone/go-widgetform/pkg/submission"
)

const defaultMaxSlots = 4

// Editor prompts for every field of a placement.
type Editor struct {
	driver   PromptDriver
	logger   interfaces.Logger
	maxSlots int
}

// New constructs an editor backed by the survey driver unless another driver
// is supplied.
func New(options ...Option) (*Editor, error) {
	e := &Editor{
		logger:   logging.NoOp(),
		maxSlots: defaultMaxSlots,
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		e.driver = driver
	}
	return e, nil
}

// Edit prompts for fields, pre-filled with their current values, and returns
// the answers in prompt order. slots lists the labels offered for hours.
func (e *Editor) Edit(ctx context.Context, fields []model.Field, slots []string) (submission.Submission, error) {
	if ctx == nil {
		return submission.Submission{}, errors.New("tui: context is required")
	}

	var out submission.Submission
	for _, field := range fields {
		value, err := e.promptField(ctx, field, slots)
		if err != nil {
			return submission.Submission{}, fmt.Errorf("tui: field %q: %w", field.Key, err)
		}
		out.Set(field.Key, value)
	}

	e.logger.Debug("tui.edit", "fields", len(out.Fields))
	return out, nil
}

func (e *Editor) promptField(ctx context.Context, field model.Field, slots []string) (model.Value, error) {
	switch {
	case field.Type == model.FieldTypeHours || field.FormCallback == model.FormCallbackHours:
		hours, err := e.promptHours(ctx, field, slots)
		return model.HoursValue(hours), err
	case field.Type == model.FieldTypeCheckbox:
		checked, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: label(field),
			Help:    field.Description,
			Default: field.Value.Text == model.CheckboxChecked,
		})
		if err != nil {
			return model.Value{}, err
		}
		if checked {
			return model.Text(model.CheckboxChecked), nil
		}
		return model.Text(model.CheckboxUnchecked), nil
	case field.Type == model.FieldTypeSelect || field.FormCallback == model.FormCallbackSelect:
		return e.promptSelect(ctx, field)
	case field.Type == model.FieldTypeTextarea || field.FormCallback == model.FormCallbackTextarea:
		text, err := e.driver.TextArea(ctx, TextAreaConfig{
			Message: label(field),
			Help:    field.Description,
			Default: field.Value.Text,
		})
		return model.Text(text), err
	default:
		text, err := e.driver.Input(ctx, InputConfig{
			Message:   label(field),
			Help:      field.Description,
			Default:   field.Value.Text,
			Validator: validatorFor(field),
		})
		return model.Text(text), err
	}
}

func (e *Editor) promptSelect(ctx context.Context, field model.Field) (model.Value, error) {
	if len(field.SelectOptions) == 0 {
		return field.Value, nil
	}

	labels := make([]string, len(field.SelectOptions))
	current := 0
	for i, option := range field.SelectOptions {
		labels[i] = option.Label
		if option.Value == field.Value.Text {
			current = i
		}
	}

	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Help:         field.Description,
		Options:      labels,
		DefaultIndex: current,
	})
	if err != nil {
		return model.Value{}, err
	}
	if idx < 0 || idx >= len(field.SelectOptions) {
		idx = current
	}
	return model.Text(field.SelectOptions[idx].Value), nil
}

func (e *Editor) promptHours(ctx context.Context, field model.Field, slots []string) (model.Hours, error) {
	days := field.Value.Hours
	if len(days) == 0 {
		days = field.Days
	}

	out := make(model.Hours, 0, len(days))
	for _, day := range days {
		name := titleCase(day.Day)
		open, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Open on %s?", name),
			Default: !day.NotOpen,
		})
		if err != nil {
			return nil, err
		}

		edited := model.DayHours{Day: day.Day, NotOpen: !open}
		if !open {
			edited.Open = append([]string(nil), day.Open...)
			edited.Closed = append([]string(nil), day.Closed...)
			out = append(out, edited)
			continue
		}

		for row := 1; row <= e.maxSlots; row++ {
			opening, err := e.promptSlot(ctx, fmt.Sprintf("%s opens at", name), slots, day.OpenAt(row))
			if err != nil {
				return nil, err
			}
			closing, err := e.promptSlot(ctx, fmt.Sprintf("%s closes at", name), slots, day.ClosedAt(row))
			if err != nil {
				return nil, err
			}
			edited.Open = append(edited.Open, opening)
			edited.Closed = append(edited.Closed, closing)

			if row == e.maxSlots {
				break
			}
			more, err := e.driver.Confirm(ctx, ConfirmConfig{
				Message: fmt.Sprintf("Add another time slot for %s?", name),
				Default: row < day.Rows(),
			})
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
		out = append(out, edited)
	}
	return out, nil
}

func (e *Editor) promptSlot(ctx context.Context, message string, slots []string, current string) (string, error) {
	if len(slots) == 0 {
		return e.driver.Input(ctx, InputConfig{Message: message, Default: current})
	}
	idx, err := e.driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      slots,
		DefaultIndex: indexOf(slots, current),
		PageSize:     12,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(slots) {
		return current, nil
	}
	return slots[idx], nil
}

// validatorFor returns a format check for typed inputs. Empty answers are
// always accepted.
func validatorFor(field model.Field) func(string) error {
	var rule validation.Rule
	switch field.Type {
	case model.FieldTypeEmail:
		rule = is.EmailFormat
	case model.FieldTypeURL:
		rule = is.URL
	case model.FieldTypeNumber:
		rule = is.Float
	default:
		return nil
	}
	return func(answer string) error {
		return validation.Validate(strings.TrimSpace(answer), rule)
	}
}

func label(field model.Field) string {
	if text := strings.TrimSpace(field.Label); text != "" {
		return text
	}
	return field.Key
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
