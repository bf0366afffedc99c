package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
)

func TestRemovedCourseIDs(t *testing.T) {
	tests := []struct {
		name    string
		current []int64
		next    []int64
		want    []int64
	}{
		{"nothing removed", []int64{1, 2, 3}, []int64{1, 2, 3}, nil},
		{"one removed", []int64{1, 2, 3}, []int64{1, 3}, []int64{2}},
		{"all removed", []int64{1, 2}, nil, []int64{1, 2}},
		{"additions only", []int64{1}, []int64{1, 2, 3}, nil},
		{"empty current", nil, []int64{1}, nil},
		{"disjoint sets", []int64{1, 2}, []int64{3, 4}, []int64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, removedCourseIDs(tt.current, tt.next))
		})
	}
}

func TestValidateSemester(t *testing.T) {
	currentYear := time.Now().Year()

	assert.NoError(t, validateSemester(currentYear, models.TermS1))
	assert.NoError(t, validateSemester(currentYear+models.SemesterYearWindow-1, models.TermS3))

	err := validateSemester(currentYear-1, models.TermS1)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), "past year")

	err = validateSemester(currentYear+models.SemesterYearWindow, models.TermS2)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), "year past the window")

	err = validateSemester(currentYear, models.Term("S4"))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), "unknown term")

	err = validateSemester(currentYear, models.Term("s1"))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed), "terms are case sensitive")
}

type fakeSemesterCourseStore struct {
	courseIDs []int64
	readErr   error
	replaced  [][]int64
}

func (f *fakeSemesterCourseStore) GetCourseIDs(_ context.Context, _ int64) ([]int64, error) {
	return f.courseIDs, f.readErr
}

func (f *fakeSemesterCourseStore) ReplaceCourses(_ context.Context, _ int64, courseIDs []int64) error {
	f.replaced = append(f.replaced, courseIDs)
	return nil
}

type fakeClassCascadeStore struct {
	classes     map[int64][]*models.Class // keyed by course ID
	enrollments map[int64]int64
	deleteErr   error
	deleted     []int64
}

func (f *fakeClassCascadeStore) DeleteByCourseAndSemester(_ context.Context, courseID, _ int64) ([]*models.Class, int64, error) {
	if f.deleteErr != nil {
		return nil, 0, f.deleteErr
	}
	f.deleted = append(f.deleted, courseID)
	return f.classes[courseID], f.enrollments[courseID], nil
}

func TestReplaceSemesterCoursesCascades(t *testing.T) {
	semesters := &fakeSemesterCourseStore{courseIDs: []int64{1, 2, 3}}
	classes := &fakeClassCascadeStore{
		classes: map[int64][]*models.Class{
			2: {{ID: 20, Number: 201}},
			3: {{ID: 30, Number: 301}, {ID: 31, Number: 302}},
		},
		enrollments: map[int64]int64{2: 4, 3: 7},
	}

	report, err := replaceSemesterCourses(context.Background(), semesters, classes, 9, []int64{1, 5})
	require.NoError(t, err)

	assert.Equal(t, []int64{2, 3}, report.RemovedCourseIDs)
	assert.Len(t, report.DeletedClasses, 3, "classes of every removed course are collected")
	assert.Equal(t, int64(11), report.DeletedEnrollments)
	assert.Equal(t, []int64{2, 3}, classes.deleted, "only removed courses cascade")
	require.Len(t, semesters.replaced, 1)
	assert.Equal(t, []int64{1, 5}, semesters.replaced[0])
}

func TestReplaceSemesterCoursesDiffsAgainstStoreRead(t *testing.T) {
	// The removed set must come from the course list the passed store
	// reports, not from any earlier snapshot.
	semesters := &fakeSemesterCourseStore{courseIDs: []int64{7}}
	classes := &fakeClassCascadeStore{}

	report, err := replaceSemesterCourses(context.Background(), semesters, classes, 9, []int64{8})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, report.RemovedCourseIDs)
	assert.Equal(t, []int64{7}, classes.deleted)
}

func TestReplaceSemesterCoursesStopsOnError(t *testing.T) {
	readFailed := errors.New("read failed")
	semesters := &fakeSemesterCourseStore{readErr: readFailed}

	_, err := replaceSemesterCourses(context.Background(), semesters, &fakeClassCascadeStore{}, 9, nil)
	assert.ErrorIs(t, err, readFailed)
	assert.Empty(t, semesters.replaced, "new course set is not written after a failed read")

	deleteFailed := errors.New("delete failed")
	semesters = &fakeSemesterCourseStore{courseIDs: []int64{1}}
	classes := &fakeClassCascadeStore{deleteErr: deleteFailed}

	_, err = replaceSemesterCourses(context.Background(), semesters, classes, 9, nil)
	assert.ErrorIs(t, err, deleteFailed)
	assert.Empty(t, semesters.replaced, "new course set is not written after a failed cascade")
}
