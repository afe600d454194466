package course

import (
	"math"
	"time"
)

// Locked reports whether a lesson is still scheduled for the future at `now`.
// A lesson whose release instant equals `now` is already unlocked.
//
// `now` must be captured once per request so that every lesson of a course is
// judged against the same instant.
func Locked(l Lesson, now time.Time) bool {
	return l.ReleaseAt.After(now)
}

// Percent returns the completion percentage rounded half-up to an integer.
// An empty course has 0% progress.
//
// The denominator counts every lesson of the course, locked or not. Completion
// is a historical fact; a completed lesson that an admin re-schedules into the
// future still counts.
func Percent(totalLessons, completedLessons int) int {
	if totalLessons <= 0 {
		return 0
	}
	return int(math.Round(float64(completedLessons) / float64(totalLessons) * 100))
}
