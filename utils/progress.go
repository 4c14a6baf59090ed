package utils

import (
	"math"

	courseModels "khanqah/models/course"
)

// LessonState pairs a lesson with the viewer's progress record.
// Progress is nil when the lesson was never started.
type LessonState struct {
	Lesson   courseModels.Lesson          `json:"lesson"`
	Progress *courseModels.LessonProgress `json:"progress"`
}

// ModuleState is one module of a course together with its lessons and the
// viewer's per-lesson progress.
type ModuleState struct {
	Module  courseModels.Module `json:"module"`
	Lessons []LessonState       `json:"lessons"`
}

// ModuleSummary holds derived per-module progress figures.
type ModuleSummary struct {
	ModuleID         uint    `json:"module_id"`
	TotalLessons     int     `json:"total_lessons"`
	CompletedLessons int     `json:"completed_lessons"`
	CompletionRatio  float64 `json:"completion_ratio"` // 0 for a module with no lessons
	DurationMinutes  int     `json:"duration_minutes"`
}

// CourseSummary holds derived whole-course progress figures.
type CourseSummary struct {
	TotalLessons             int             `json:"total_lessons"`
	CompletedLessons         int             `json:"completed_lessons"`
	ProgressPercent          int             `json:"progress_percent"`
	TotalDurationMinutes     int             `json:"total_duration_minutes"`
	RemainingDurationMinutes int             `json:"remaining_duration_minutes"`
	Modules                  []ModuleSummary `json:"modules"`
}

// LessonDuration returns a lesson's duration in minutes, treating a missing
// duration as zero so totals never pick up garbage.
func LessonDuration(l courseModels.Lesson) int {
	if l.DurationMinutes == nil || *l.DurationMinutes < 0 {
		return 0
	}
	return *l.DurationMinutes
}

// SummarizeCourse computes progress statistics for one user's view of a
// course. It is a pure reduction over the module/lesson tree: no queries,
// no clock. A lesson counts as completed only when its progress record
// exists and IsCompleted is set.
func SummarizeCourse(modules []ModuleState) CourseSummary {
	summary := CourseSummary{Modules: make([]ModuleSummary, 0, len(modules))}

	for _, m := range modules {
		ms := ModuleSummary{ModuleID: m.Module.ID}
		for _, ls := range m.Lessons {
			ms.TotalLessons++
			ms.DurationMinutes += LessonDuration(ls.Lesson)
			if ls.Progress != nil && ls.Progress.IsCompleted {
				ms.CompletedLessons++
			}
		}
		if ms.TotalLessons > 0 {
			ms.CompletionRatio = float64(ms.CompletedLessons) / float64(ms.TotalLessons)
		}

		summary.TotalLessons += ms.TotalLessons
		summary.CompletedLessons += ms.CompletedLessons
		summary.TotalDurationMinutes += ms.DurationMinutes
		summary.RemainingDurationMinutes += remainingMinutes(m.Lessons)
		summary.Modules = append(summary.Modules, ms)
	}

	if summary.CompletedLessons > summary.TotalLessons {
		summary.CompletedLessons = summary.TotalLessons
	}
	summary.ProgressPercent = ProgressPercent(summary.CompletedLessons, summary.TotalLessons)

	return summary
}

// ProgressPercent rounds completed/total to a whole percentage, half-up.
// Zero total yields zero percent.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func remainingMinutes(lessons []LessonState) int {
	remaining := 0
	for _, ls := range lessons {
		if ls.Progress != nil && ls.Progress.IsCompleted {
			continue
		}
		remaining += LessonDuration(ls.Lesson)
	}
	return remaining
}

// CanAccessLesson decides whether lesson content may be shown to a viewer.
// Free lessons are always open; everything else needs an enrollment for the
// parent course. The caller is responsible for having fetched the enrollment
// for the right course.
func CanAccessLesson(lesson courseModels.Lesson, enrollment *courseModels.Enrollment) bool {
	return lesson.IsFree || enrollment != nil
}
