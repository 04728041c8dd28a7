package course

import (
	"testing"
	"time"

	"github.com/pot-code/coursehub/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStateOf(t *testing.T) {
	assert.Equal(t, NotStarted, StateOf(nil))
	assert.Equal(t, InProgress, StateOf(&domain.ProgressModel{ProgressPercent: 10}))
	assert.Equal(t, Completed, StateOf(&domain.ProgressModel{Completed: true}))
	assert.Equal(t, "IN_PROGRESS", InProgress.String())
}

func TestComplete(t *testing.T) {
	first := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	p := Complete(nil, "u1", "l1", first)
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "l1", p.LessonID)
	assert.True(t, p.Completed)
	assert.Equal(t, 100, p.ProgressPercent)
	require.NotNil(t, p.CompletedAt)
	assert.Equal(t, first, *p.CompletedAt)

	again := Complete(p, "u1", "l1", later)
	assert.Equal(t, first, *again.CompletedAt, "completion time is set once")
	assert.Equal(t, later, again.UpdatedAt)

	inProgress := &domain.ProgressModel{ID: "p1", UserID: "u1", LessonID: "l1", ProgressPercent: 30}
	done := Complete(inProgress, "u1", "l1", later)
	assert.Equal(t, "p1", done.ID)
	assert.False(t, inProgress.Completed, "input must not be mutated")
}

func TestAdvance(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	p, err := Advance(nil, "u1", "l1", 40, now)
	require.NoError(t, err)
	assert.Equal(t, InProgress, StateOf(p))
	assert.Equal(t, 40, p.ProgressPercent)

	_, err = Advance(p, "u1", "l1", 101, now)
	assert.ErrorIs(t, err, domain.ErrInvalidProgress)
	_, err = Advance(p, "u1", "l1", -1, now)
	assert.ErrorIs(t, err, domain.ErrInvalidProgress)
}

func TestAdvance_neverLeavesCompleted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Unix(1700000000, 0)
		p := Complete(nil, "u", "l", now)
		steps := rapid.IntRange(1, 10).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			percent := rapid.IntRange(0, 100).Draw(t, "percent")
			next, err := Advance(p, "u", "l", percent, now.Add(time.Duration(i)*time.Minute))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if StateOf(next) != Completed {
				t.Fatalf("left COMPLETED after advancing to %d", percent)
			}
			if !next.CompletedAt.Equal(now) {
				t.Fatalf("completion time rewritten")
			}
			if next.ProgressPercent != percent {
				t.Fatalf("percent not rewritten")
			}
			p = next
		}
	})
}

func TestSummarize(t *testing.T) {
	ordered := []*domain.LessonModel{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	progress := IndexProgress([]*domain.ProgressModel{
		{LessonID: "a", Completed: true},
		{LessonID: "b", ProgressPercent: 50},
	})
	assert.Equal(t, domain.CourseSummary{CompletedCount: 1, Total: 3, TotalProgress: 33}, Summarize(ordered, progress))
	assert.Equal(t, domain.CourseSummary{}, Summarize(nil, nil))
}
