package utils

import (
	"log"
	"time"

	"skillspring/aggregates"
	"skillspring/database"
	courseModels "skillspring/models/course"

	"github.com/robfig/cron/v3"
)

// logAudit logs aggregate-audit events with timestamp
func logAudit(message string) {
	log.Printf("[AGGREGATE-AUDIT %s] %s", time.Now().Format(time.RFC3339), message)
}

// auditAggregates re-derives every stored aggregate from its facts and
// repairs drift. The transactional recomputation on each write is the
// authority; this is a safety net that should normally find nothing.
func auditAggregates() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Find(&courses).Error; err != nil {
		logAudit("Error fetching courses: " + err.Error())
		return
	}
	for _, course := range courses {
		before := course.Rating
		beforeCount := course.RatingCount
		if err := aggregates.RecomputeCourseRating(db, course.ID); err != nil {
			logAudit("Error recomputing rating: " + err.Error())
			continue
		}
		var after courseModels.Course
		if db.First(&after, course.ID).Error == nil &&
			(after.Rating != before || after.RatingCount != beforeCount) {
			logAudit("Repaired rating drift on course " + after.Title)
		}
	}

	var enrollments []courseModels.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		logAudit("Error fetching enrollments: " + err.Error())
		return
	}
	for _, enrollment := range enrollments {
		percent, err := aggregates.RecomputeProgress(db, enrollment.StudentID, enrollment.CourseID)
		if err != nil {
			logAudit("Error recomputing progress: " + err.Error())
			continue
		}
		if percent != enrollment.ProgressPercent {
			logAudit("Repaired progress drift on enrollment")
		}
	}
}

// StartAggregateScheduler runs the nightly aggregate audit.
func StartAggregateScheduler() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@daily", auditAggregates)
	if err != nil {
		log.Fatalf("Failed to schedule aggregate audit: %v", err)
	}

	c.Start()
	logAudit("Aggregate audit scheduled")
	return c
}
