package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/gradebook/internal/app/models"
)

type countingCourseGetter struct {
	courses map[int64]*models.Course
	calls   int
}

func (g *countingCourseGetter) GetByID(_ context.Context, id int64) (*models.Course, error) {
	g.calls++
	if course, ok := g.courses[id]; ok {
		return course, nil
	}
	return nil, errors.New("course not found")
}

type countingSemesterGetter struct {
	semesters map[int64]*models.Semester
	calls     int
}

func (g *countingSemesterGetter) GetByID(_ context.Context, id int64) (*models.Semester, error) {
	g.calls++
	if semester, ok := g.semesters[id]; ok {
		return semester, nil
	}
	return nil, errors.New("semester not found")
}

type countingLecturerGetter struct {
	lecturers map[int64]*models.Lecturer
	calls     int
}

func (g *countingLecturerGetter) GetByID(_ context.Context, id int64) (*models.Lecturer, error) {
	g.calls++
	if lecturer, ok := g.lecturers[id]; ok {
		return lecturer, nil
	}
	return nil, errors.New("lecturer not found")
}

func TestExpandClasses(t *testing.T) {
	lecturerID := int64(3)
	classes := []*models.Class{
		{ID: 1, Number: 101, CourseID: 10, SemesterID: 20, LecturerID: &lecturerID},
		{ID: 2, Number: 102, CourseID: 10, SemesterID: 20},
	}
	courses := &countingCourseGetter{courses: map[int64]*models.Course{10: {ID: 10}}}
	semesters := &countingSemesterGetter{semesters: map[int64]*models.Semester{20: {ID: 20}}}
	lecturers := &countingLecturerGetter{lecturers: map[int64]*models.Lecturer{3: {ID: 3}}}

	require.NoError(t, expandClasses(context.Background(), classes, courses, semesters, lecturers))

	for _, class := range classes {
		require.NotNil(t, class.Course)
		require.NotNil(t, class.Semester)
		assert.Equal(t, int64(10), class.Course.ID)
		assert.Equal(t, int64(20), class.Semester.ID)
	}
	require.NotNil(t, classes[0].Lecturer)
	assert.Equal(t, int64(3), classes[0].Lecturer.ID)
	assert.Nil(t, classes[1].Lecturer, "unassigned class stays without a lecturer")

	assert.Equal(t, 1, courses.calls, "one fetch per distinct course")
	assert.Equal(t, 1, semesters.calls, "one fetch per distinct semester")
	assert.Equal(t, 1, lecturers.calls)
}

func TestExpandClassesSharesSemesterPointers(t *testing.T) {
	classes := []*models.Class{
		{ID: 1, CourseID: 10, SemesterID: 20},
		{ID: 2, CourseID: 11, SemesterID: 20},
	}
	courses := &countingCourseGetter{courses: map[int64]*models.Course{10: {ID: 10}, 11: {ID: 11}}}
	semesters := &countingSemesterGetter{semesters: map[int64]*models.Semester{20: {ID: 20}}}

	require.NoError(t, expandClasses(context.Background(), classes, courses, semesters, &countingLecturerGetter{}))
	assert.Same(t, classes[0].Semester, classes[1].Semester)
}

func TestExpandEnrollments(t *testing.T) {
	enrollments := []*models.Enrollment{
		{ID: 1, StudentID: 7, ClassID: 5},
		{ID: 2, StudentID: 8, ClassID: 5},
	}
	students := &fakeStudentStore{students: map[int64]*models.Student{
		7: {ID: 7, FirstName: "Maria"},
		8: {ID: 8, FirstName: "Jin"},
	}}
	classes := &fakeClassStore{classes: map[int64]*models.Class{5: {ID: 5, Number: 101}}}

	require.NoError(t, expandEnrollments(context.Background(), enrollments, students, classes))

	require.NotNil(t, enrollments[0].Student)
	assert.Equal(t, "Maria", enrollments[0].Student.FirstName)
	require.NotNil(t, enrollments[1].Student)
	assert.Equal(t, "Jin", enrollments[1].Student.FirstName)
	assert.Same(t, enrollments[0].Class, enrollments[1].Class, "one class record serves every enrollment in it")
}

func TestDistinctSemesters(t *testing.T) {
	fall := &models.Semester{ID: 1}
	spring := &models.Semester{ID: 2}
	classes := []*models.Class{
		{ID: 1, SemesterID: 1, Semester: fall},
		{ID: 2, SemesterID: 2, Semester: spring},
		{ID: 3, SemesterID: 1, Semester: fall},
		{ID: 4, SemesterID: 3}, // not expanded, skipped
	}

	semesters := distinctSemesters(classes)
	require.Len(t, semesters, 2)
	assert.Same(t, fall, semesters[0])
	assert.Same(t, spring, semesters[1])

	assert.Empty(t, distinctSemesters(nil), "no classes means no semesters")
}
