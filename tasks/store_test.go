package tasks

import (
	"sort"
	"testing"
)

func TestOrderBy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sort string
		want string
	}{
		{"", "created_at DESC"},
		{"newest", "created_at DESC"},
		{"bogus", "created_at DESC"},
		{"oldest", "created_at ASC"},
		{"dueDate", "due_date ASC NULLS LAST"},
		{"priority", "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END DESC"},
	}

	for _, tt := range tests {
		if got := orderBy(tt.sort); got != tt.want {
			t.Fatalf("orderBy(%q) = %q, want %q", tt.sort, got, tt.want)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	t.Parallel()

	// Severity ranking, not alphabetical order.
	priorities := []Priority{PriorityLow, PriorityHigh, PriorityMedium}
	sort.Slice(priorities, func(i, j int) bool {
		return priorities[i].Rank() > priorities[j].Rank()
	})

	want := []Priority{PriorityHigh, PriorityMedium, PriorityLow}
	for i := range want {
		if priorities[i] != want[i] {
			t.Fatalf("rank order = %v, want %v", priorities, want)
		}
	}

	if Priority("urgent").Rank() != 0 {
		t.Fatal("unknown priorities must rank below low")
	}
}

func TestValidStatusAndPriority(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"pending", "in-progress", "completed"} {
		if !ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "done", "Pending", "in progress"} {
		if ValidStatus(s) {
			t.Fatalf("ValidStatus(%q) = true", s)
		}
	}

	for _, p := range []string{"low", "medium", "high"} {
		if !ValidPriority(p) {
			t.Fatalf("ValidPriority(%q) = false", p)
		}
	}
	for _, p := range []string{"", "urgent", "High"} {
		if ValidPriority(p) {
			t.Fatalf("ValidPriority(%q) = true", p)
		}
	}
}
