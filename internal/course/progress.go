package course

import (
	"time"

	"github.com/pot-code/coursehub/internal/domain"
)

// State progress state of a (learner, lesson) pair
type State int

const (
	NotStarted State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case InProgress:
		return "IN_PROGRESS"
	case Completed:
		return "COMPLETED"
	}
	return "UNKNOWN"
}

// StateOf a missing record means not started
func StateOf(p *domain.ProgressModel) State {
	switch {
	case p == nil:
		return NotStarted
	case p.Completed:
		return Completed
	default:
		return InProgress
	}
}

// Complete returns the record after completion, creating it when p is nil.
// completed_at keeps the first completion time.
func Complete(p *domain.ProgressModel, userID, lessonID string, now time.Time) *domain.ProgressModel {
	next := clone(p, userID, lessonID)
	next.Completed = true
	next.ProgressPercent = 100
	if next.CompletedAt == nil {
		completedAt := now
		next.CompletedAt = &completedAt
	}
	next.UpdatedAt = now
	return next
}

// Advance returns the record after a partial progress update. A completed
// record stays completed, only its percent is rewritten.
func Advance(p *domain.ProgressModel, userID, lessonID string, percent int, now time.Time) (*domain.ProgressModel, error) {
	if percent < 0 || percent > 100 {
		return nil, domain.ErrInvalidProgress
	}
	next := clone(p, userID, lessonID)
	next.ProgressPercent = percent
	next.UpdatedAt = now
	return next, nil
}

func clone(p *domain.ProgressModel, userID, lessonID string) *domain.ProgressModel {
	if p == nil {
		return &domain.ProgressModel{UserID: userID, LessonID: lessonID}
	}
	next := *p
	if p.CompletedAt != nil {
		completedAt := *p.CompletedAt
		next.CompletedAt = &completedAt
	}
	return &next
}

// Summarize counts completed lessons of an ordered list
func Summarize(ordered []*domain.LessonModel, progress map[string]*domain.ProgressModel) domain.CourseSummary {
	summary := domain.CourseSummary{Total: len(ordered)}
	for _, l := range ordered {
		if StateOf(progress[l.ID]) == Completed {
			summary.CompletedCount++
		}
	}
	summary.TotalProgress = Score(summary.CompletedCount, summary.Total)
	return summary
}
