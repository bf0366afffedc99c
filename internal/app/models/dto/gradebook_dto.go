package dto

import "github.com/ekurt/gradebook/internal/app/models"

// GradebookResponse is the role-scoped gradebook listing: the classes
// visible to the caller and the distinct semesters they span.
type GradebookResponse struct {
	Semesters []*models.Semester `json:"semesters"`
	Classes   []*models.Class    `json:"classes"`
}

// ClassGradebookResponse is the per-class gradebook: the class and its
// enrollments, filtered to the caller's own record for the Student role.
type ClassGradebookResponse struct {
	Class       *models.Class        `json:"class"`
	Enrollments []*models.Enrollment `json:"student"`
}

// CascadeReport describes what a semester course-set update removed.
type CascadeReport struct {
	RemovedCourseIDs   []int64         `json:"removedCourseIds"`
	DeletedClasses     []*models.Class `json:"deletedClasses"`
	DeletedEnrollments int64           `json:"deletedEnrollments"`
}
