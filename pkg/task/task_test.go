package task_test

import (
	"strings"
	"testing"
	"time"

	"github.com/taskrank/taskrank/pkg/task"
)

func floatPtr(v float64) *float64 { return &v }

func TestParseDate(t *testing.T) {
	tests := []struct {
		raw    string
		want   time.Time
		wantOK bool
	}{
		{"2020-01-01T00:00:00Z", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{"2024-03-10T09:30:00+02:00", time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC), true},
		{"2024-03-10T09:30:00.250Z", time.Date(2024, 3, 10, 9, 30, 0, 250_000_000, time.UTC), true},
		{"2024-03-10T09:30:00-0500", time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC), true},
		{"2024-03-10T09:30:00", time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC), true},
		{"2024-03-10T09:30", time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC), true},
		{"2024-03-10 09:30:00", time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC), true},
		{"2024-03-10", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"  2024-03-10  ", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"20240310", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"   ", time.Time{}, false},
		{"tomorrow", time.Time{}, false},
		{"2024-13-45", time.Time{}, false},
		{"10/03/2024", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := task.ParseDate(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.raw, got, tt.want)
		}
		if ok && got.Location() != time.UTC {
			t.Errorf("ParseDate(%q) location = %v, want UTC", tt.raw, got.Location())
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	tasks, errs := task.Normalize([]task.Record{
		{Title: "  Write report  "},
	})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}

	got := tasks[0]
	if got.ID != "Write report" {
		t.Errorf("ID = %q, want title fallback %q", got.ID, "Write report")
	}
	if got.Importance != task.DefaultImportance {
		t.Errorf("Importance = %v, want %v", got.Importance, task.DefaultImportance)
	}
	if got.Due != nil {
		t.Errorf("Due = %v, want nil", got.Due)
	}
	if got.EstimatedHours != nil {
		t.Errorf("EstimatedHours = %v, want nil", *got.EstimatedHours)
	}
}

func TestNormalizeMalformedDateIsSoftLoss(t *testing.T) {
	tasks, errs := task.Normalize([]task.Record{
		{ID: "t1", Title: "Old", DueDate: "not a date"},
	})
	if len(errs) != 0 {
		t.Fatalf("malformed date should not be a validation error, got %v", errs)
	}
	if tasks[0].Due != nil {
		t.Errorf("Due = %v, want nil for malformed date", tasks[0].Due)
	}
}

func TestNormalizePartialSuccess(t *testing.T) {
	records := []task.Record{
		{ID: "a", Title: "A"},
		{ID: "b", Title: ""},
		{ID: "c", Title: "C", Importance: floatPtr(11)},
		{ID: "d", Title: "D", EstimatedHours: floatPtr(-2)},
		{ID: "e", Title: "E", Importance: floatPtr(10), EstimatedHours: floatPtr(0)},
		{ID: "f", Title: "   ", Importance: floatPtr(0)},
	}

	tasks, errs := task.Normalize(records)

	if len(tasks) != 2 {
		t.Fatalf("expected 2 valid tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[1].ID != "e" {
		t.Errorf("valid ids = [%s %s], want [a e]", tasks[0].ID, tasks[1].ID)
	}
	if tasks[1].Index != 4 {
		t.Errorf("Index = %d, want 4", tasks[1].Index)
	}

	wantIdx := []int{1, 2, 3, 5}
	if len(errs) != len(wantIdx) {
		t.Fatalf("expected %d errors, got %d: %v", len(wantIdx), len(errs), errs)
	}
	for i, e := range errs {
		if e.Index != wantIdx[i] {
			t.Errorf("errs[%d].Index = %d, want %d", i, e.Index, wantIdx[i])
		}
	}
	if !strings.Contains(errs[0].Message, "title") {
		t.Errorf("expected title message, got %q", errs[0].Message)
	}
	if !strings.Contains(errs[3].Message, "title") || !strings.Contains(errs[3].Message, "importance") {
		t.Errorf("expected combined message, got %q", errs[3].Message)
	}
}

func TestNormalizeDependencies(t *testing.T) {
	tasks, _ := task.Normalize([]task.Record{
		{ID: "a", Title: "A", Dependencies: []string{"b", " b ", "", "c", "b"}},
	})
	got := tasks[0].Dependencies
	want := []string{"b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Dependencies = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dependencies[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
