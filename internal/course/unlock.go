// Package course holds the pure rules of the course: lesson ordering, unlock gating,
// quiz grading and the per-lesson progress state machine.
package course

import (
	"sort"

	"github.com/pot-code/coursehub/internal/domain"
)

// SortLessons orders lessons by order number, ties broken by id. The input is not modified.
func SortLessons(lessons []*domain.LessonModel) []*domain.LessonModel {
	sorted := make([]*domain.LessonModel, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].OrderNumber != sorted[j].OrderNumber {
			return sorted[i].OrderNumber < sorted[j].OrderNumber
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// IndexProgress keys progress records by lesson id
func IndexProgress(records []*domain.ProgressModel) map[string]*domain.ProgressModel {
	index := make(map[string]*domain.ProgressModel, len(records))
	for _, p := range records {
		if p != nil {
			index[p.LessonID] = p
		}
	}
	return index
}

// EvaluateUnlocks reports for every position of an ordered lesson list whether it is accessible.
//
// Position 0 is always unlocked, position i is unlocked iff lesson i-1 is completed.
func EvaluateUnlocks(ordered []*domain.LessonModel, progress map[string]*domain.ProgressModel) []bool {
	unlocked := make([]bool, len(ordered))
	for i := range ordered {
		unlocked[i] = IsUnlocked(ordered, progress, i)
	}
	return unlocked
}

// IsUnlocked single position variant of EvaluateUnlocks
func IsUnlocked(ordered []*domain.LessonModel, progress map[string]*domain.ProgressModel, i int) bool {
	if i <= 0 {
		return i == 0
	}
	if i >= len(ordered) {
		return false
	}
	p, ok := progress[ordered[i-1].ID]
	return ok && p != nil && p.Completed
}

// Position rank of the lesson in an ordered list, -1 if absent
func Position(ordered []*domain.LessonModel, lessonID string) int {
	for i, l := range ordered {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}
