package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
)

type fakeEnrollmentStore struct {
	enrollments map[int64]*models.Enrollment
	owners      map[int64]string // student ID -> email
	updateErr   error
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, enrollment *models.Enrollment) error {
	enrollment.ID = int64(len(f.enrollments) + 1)
	f.enrollments[enrollment.ID] = enrollment
	return nil
}

func (f *fakeEnrollmentStore) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	copied := *enrollment
	return &copied, nil
}

func (f *fakeEnrollmentStore) GetAll(ctx context.Context) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEnrollmentStore) GetByStudentID(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) GetByStudentEmail(ctx context.Context, email string) ([]*models.Enrollment, error) {
	var out []*models.Enrollment
	for _, e := range f.enrollments {
		if owner, ok := f.owners[e.StudentID]; ok && owner == email {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentStore) UpdateGrade(ctx context.Context, id int64, grade int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	enrollment, ok := f.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	enrollment.Grade = grade
	return nil
}

func (f *fakeEnrollmentStore) Delete(ctx context.Context, id int64) error {
	delete(f.enrollments, id)
	return nil
}

type fakeClassStore struct {
	classes map[int64]*models.Class
}

func (f *fakeClassStore) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return class, nil
}

type fakeStudentStore struct {
	students map[int64]*models.Student
}

func (f *fakeStudentStore) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) ValidateGradeWrite(ctx context.Context, role models.Role, callerEmail string, enrollmentID int64) error {
	return nil
}

type denyAllAuthorizer struct{}

func (denyAllAuthorizer) ValidateGradeWrite(ctx context.Context, role models.Role, callerEmail string, enrollmentID int64) error {
	return apperrors.ErrPermissionDenied
}

type recordingEmailService struct {
	gradeUpdates []string
	sendErr      error
}

func (r *recordingEmailService) SendGradeUpdated(toEmail, firstName, lastName string, classNumber int64) error {
	r.gradeUpdates = append(r.gradeUpdates, toEmail)
	return r.sendErr
}

func (r *recordingEmailService) SendAccountCreated(toEmail, firstName, username string) error {
	return nil
}

func newGradeTestService(authorizer gradeAuthorizer, emails *recordingEmailService) (*EnrollmentService, *fakeEnrollmentStore) {
	enrollments := &fakeEnrollmentStore{
		enrollments: map[int64]*models.Enrollment{
			10: {ID: 10, StudentID: 1, ClassID: 5, Grade: 70},
			11: {ID: 11, StudentID: 2, ClassID: 5, Grade: 40},
		},
		owners: map[int64]string{
			1: "msantos@example.com",
			2: "jlee@example.com",
		},
	}
	classes := &fakeClassStore{classes: map[int64]*models.Class{
		5: {ID: 5, Number: 101, CourseID: 1, SemesterID: 1},
	}}
	students := &fakeStudentStore{students: map[int64]*models.Student{
		1: {ID: 1, FirstName: "Maria", LastName: "Santos", Email: "msantos@example.com"},
		2: {ID: 2, FirstName: "Jin", LastName: "Lee", Email: "jlee@example.com"},
	}}
	return NewEnrollmentService(enrollments, classes, students, authorizer, emails), enrollments
}

func TestUpdateGradeNotifiesOnChange(t *testing.T) {
	emails := &recordingEmailService{}
	service, store := newGradeTestService(allowAllAuthorizer{}, emails)

	enrollment, err := service.UpdateGrade(context.Background(), models.RoleAdmin, "admin@example.com", 10, 85)
	require.NoError(t, err)
	assert.Equal(t, 85, enrollment.Grade)
	assert.Equal(t, 85, store.enrollments[10].Grade)
	assert.Equal(t, []string{"msantos@example.com"}, emails.gradeUpdates, "exactly one notification")
}

func TestUpdateGradeSkipsNotificationWhenUnchanged(t *testing.T) {
	emails := &recordingEmailService{}
	service, _ := newGradeTestService(allowAllAuthorizer{}, emails)

	_, err := service.UpdateGrade(context.Background(), models.RoleAdmin, "admin@example.com", 10, 70)
	require.NoError(t, err)
	assert.Empty(t, emails.gradeUpdates, "same grade sends nothing")
}

func TestUpdateGradeSwallowsNotificationFailure(t *testing.T) {
	emails := &recordingEmailService{sendErr: errors.New("smtp down")}
	service, store := newGradeTestService(allowAllAuthorizer{}, emails)

	enrollment, err := service.UpdateGrade(context.Background(), models.RoleAdmin, "admin@example.com", 10, 90)
	require.NoError(t, err, "a failed notification never fails the write")
	assert.Equal(t, 90, enrollment.Grade)
	assert.Equal(t, 90, store.enrollments[10].Grade)
	assert.Len(t, emails.gradeUpdates, 1)
}

func TestUpdateGradeDeniedWritesNothing(t *testing.T) {
	emails := &recordingEmailService{}
	service, store := newGradeTestService(denyAllAuthorizer{}, emails)

	_, err := service.UpdateGrade(context.Background(), models.RoleStudent, "student@example.com", 10, 99)
	assert.True(t, errors.Is(err, apperrors.ErrPermissionDenied))
	assert.Equal(t, 70, store.enrollments[10].Grade, "grade untouched")
	assert.Empty(t, emails.gradeUpdates)
}

func TestUpdateGradeUnknownEnrollment(t *testing.T) {
	emails := &recordingEmailService{}
	service, _ := newGradeTestService(allowAllAuthorizer{}, emails)

	_, err := service.UpdateGrade(context.Background(), models.RoleAdmin, "admin@example.com", 999, 50)
	assert.True(t, errors.Is(err, apperrors.ErrEnrollmentNotFound))
	assert.Empty(t, emails.gradeUpdates)
}

func TestListEnrollmentsScopedByRole(t *testing.T) {
	emails := &recordingEmailService{}
	service, _ := newGradeTestService(allowAllAuthorizer{}, emails)

	all, err := service.ListEnrollments(context.Background(), models.RoleAdmin, "admin@example.com")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := service.ListEnrollments(context.Background(), models.RoleStudent, "msantos@example.com")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, int64(10), own[0].ID)
}

func TestGetEnrollmentHiddenFromOtherStudents(t *testing.T) {
	emails := &recordingEmailService{}
	service, _ := newGradeTestService(allowAllAuthorizer{}, emails)

	enrollment, err := service.GetEnrollment(context.Background(), models.RoleStudent, "msantos@example.com", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), enrollment.ID)

	_, err = service.GetEnrollment(context.Background(), models.RoleStudent, "msantos@example.com", 11)
	assert.True(t, errors.Is(err, apperrors.ErrEnrollmentNotFound), "another student's record is invisible")

	_, err = service.GetEnrollment(context.Background(), models.RoleLecturer, "lect@example.com", 11)
	assert.NoError(t, err)
}

func TestCreateEnrollmentValidatesReferences(t *testing.T) {
	emails := &recordingEmailService{}
	service, _ := newGradeTestService(allowAllAuthorizer{}, emails)

	_, err := service.CreateEnrollment(context.Background(), 999, 5)
	assert.True(t, errors.Is(err, apperrors.ErrStudentNotFound))

	_, err = service.CreateEnrollment(context.Background(), 1, 999)
	assert.True(t, errors.Is(err, apperrors.ErrClassNotFound))

	enrollment, err := service.CreateEnrollment(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, enrollment.Grade, "new enrollments start ungraded")
}
