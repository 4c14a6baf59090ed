package utils

import (
	"testing"

	courseModels "khanqah/models/course"

	"github.com/stretchr/testify/assert"
)

func mins(n int) *int { return &n }

func lesson(id uint, duration *int, free bool) courseModels.Lesson {
	l := courseModels.Lesson{DurationMinutes: duration, IsFree: free}
	l.ID = id
	return l
}

func done(lessonID uint) *courseModels.LessonProgress {
	return &courseModels.LessonProgress{LessonID: lessonID, IsCompleted: true}
}

func TestSummarizeCourseEmpty(t *testing.T) {
	summary := SummarizeCourse(nil)

	assert.Equal(t, 0, summary.TotalLessons)
	assert.Equal(t, 0, summary.CompletedLessons)
	assert.Equal(t, 0, summary.ProgressPercent)
	assert.Equal(t, 0, summary.TotalDurationMinutes)
	assert.Empty(t, summary.Modules)
}

func TestSummarizeCourseTwoModules(t *testing.T) {
	moduleA := courseModels.Module{Title: "Tasawwuf Basics"}
	moduleA.ID = 1
	moduleB := courseModels.Module{Title: "Advanced Dhikr"}
	moduleB.ID = 2

	modules := []ModuleState{
		{
			Module: moduleA,
			Lessons: []LessonState{
				{Lesson: lesson(1, mins(10), true), Progress: done(1)},
				{Lesson: lesson(2, mins(15), false), Progress: done(2)},
				{Lesson: lesson(3, mins(5), false)},
			},
		},
		{
			Module: moduleB,
			Lessons: []LessonState{
				{Lesson: lesson(4, mins(20), false)},
			},
		},
	}

	summary := SummarizeCourse(modules)

	assert.Equal(t, 4, summary.TotalLessons)
	assert.Equal(t, 2, summary.CompletedLessons)
	assert.Equal(t, 50, summary.ProgressPercent)
	assert.Equal(t, 50, summary.TotalDurationMinutes)
	assert.Equal(t, 25, summary.RemainingDurationMinutes)

	assert.InDelta(t, 0.6667, summary.Modules[0].CompletionRatio, 0.001)
	assert.Equal(t, float64(0), summary.Modules[1].CompletionRatio)
}

func TestSummarizeCourseNilDuration(t *testing.T) {
	module := courseModels.Module{}
	module.ID = 1

	summary := SummarizeCourse([]ModuleState{
		{
			Module: module,
			Lessons: []LessonState{
				{Lesson: lesson(1, nil, false), Progress: done(1)},
			},
		},
	})

	assert.Equal(t, 0, summary.TotalDurationMinutes)
	assert.Equal(t, 100, summary.ProgressPercent)
}

func TestSummarizeCourseEmptyModuleRatio(t *testing.T) {
	module := courseModels.Module{}
	module.ID = 7

	summary := SummarizeCourse([]ModuleState{{Module: module}})

	assert.Equal(t, 0, summary.TotalLessons)
	assert.Equal(t, 0, summary.ProgressPercent)
	// ratio must be a clean zero, never NaN
	assert.Equal(t, float64(0), summary.Modules[0].CompletionRatio)
}

func TestSummarizeCourseCompletedNeverExceedsTotal(t *testing.T) {
	module := courseModels.Module{}
	module.ID = 1

	summary := SummarizeCourse([]ModuleState{
		{
			Module: module,
			Lessons: []LessonState{
				{Lesson: lesson(1, mins(5), false), Progress: done(1)},
				{Lesson: lesson(2, mins(5), false), Progress: done(2)},
			},
		},
	})

	assert.LessOrEqual(t, summary.CompletedLessons, summary.TotalLessons)
	assert.Equal(t, 100, summary.ProgressPercent)
}

func TestProgressPercentRounding(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(0, 0))
	assert.Equal(t, 0, ProgressPercent(3, 0))
	assert.Equal(t, 33, ProgressPercent(1, 3))
	assert.Equal(t, 67, ProgressPercent(2, 3))
	// half rounds up
	assert.Equal(t, 13, ProgressPercent(1, 8))
	assert.Equal(t, 100, ProgressPercent(5, 5))
}

func TestCanAccessLesson(t *testing.T) {
	enrollment := &courseModels.Enrollment{UserID: 1, CourseID: 1}

	freeLesson := lesson(1, mins(10), true)
	paidLesson := lesson(2, mins(10), false)

	assert.True(t, CanAccessLesson(freeLesson, nil))
	assert.True(t, CanAccessLesson(freeLesson, enrollment))
	assert.False(t, CanAccessLesson(paidLesson, nil))
	assert.True(t, CanAccessLesson(paidLesson, enrollment))
}
