package dto

// DateLayout is the wire format for date-of-birth fields.
const DateLayout = "2006-01-02"

// CreateCourseRequest carries course creation/update data
type CreateCourseRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// CreateSemesterRequest carries semester creation/update data
type CreateSemesterRequest struct {
	Year      int     `json:"year" binding:"required"`
	Term      string  `json:"semester" binding:"required"`
	CourseIDs []int64 `json:"course"`
}

// UpdateSemesterCoursesRequest carries the replacement course set for the
// partial semester update
type UpdateSemesterCoursesRequest struct {
	CourseIDs []int64 `json:"course" binding:"required"`
}

// CreateLecturerRequest carries lecturer creation/update data
type CreateLecturerRequest struct {
	StaffID   int64  `json:"staffId" binding:"required"`
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Dob       string `json:"dob" binding:"required"`
}

// CreateStudentRequest carries student creation/update data
type CreateStudentRequest struct {
	StudentID int64  `json:"studentId" binding:"required"`
	FirstName string `json:"firstname" binding:"required"`
	LastName  string `json:"lastname" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Dob       string `json:"dob" binding:"required"`
}

// CreateClassRequest carries class creation/update data
type CreateClassRequest struct {
	Number     int64  `json:"number" binding:"required"`
	CourseID   int64  `json:"courseId" binding:"required"`
	SemesterID int64  `json:"semesterId" binding:"required"`
	LecturerID *int64 `json:"lecturerId"`
}

// ClassFilterRequest selects the classes of a course in a semester
type ClassFilterRequest struct {
	CourseID   int64 `json:"courseId" binding:"required"`
	SemesterID int64 `json:"semesterId" binding:"required"`
}

// EnrollmentFilterRequest selects the enrollments of a student
type EnrollmentFilterRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
}

// GradebookFilterRequest selects the gradebook of a class
type GradebookFilterRequest struct {
	ClassID int64 `json:"classId" binding:"required"`
}

// CreateEnrollmentRequest carries enrollment creation data
type CreateEnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required"`
	ClassID   int64 `json:"classId" binding:"required"`
}

// UpdateGradeRequest carries a grade mutation
type UpdateGradeRequest struct {
	Grade int `json:"grade"`
}

// ChangePasswordRequest carries a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ResetPasswordRequest carries an administrative password reset
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// CreateUserRequest carries direct user creation data
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required"`
}
