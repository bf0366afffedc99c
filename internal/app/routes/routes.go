// Package routes wires the HTTP surface: route groups, authentication and
// the role gates for each endpoint.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/gradebook/internal/app/controllers"
	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/middleware"
)

// Controllers bundles everything SetupRouter mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Course     *controllers.CourseController
	Semester   *controllers.SemesterController
	Lecturer   *controllers.LecturerController
	Class      *controllers.ClassController
	Student    *controllers.StudentController
	Enrollment *controllers.EnrollmentController
	Gradebook  *controllers.GradebookController
	Import     *controllers.ImportController
}

// SetupRouter configures all application routes. Record reads are open to
// any authenticated role; record writes are admin-only except for grade
// updates, which the enrollment service authorizes per record.
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", ctrl.Auth.Login)
		auth.POST("/refresh", ctrl.Auth.Refresh)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	adminOnly := authMiddleware.RoleRequired(models.RoleAdmin)
	staffOnly := authMiddleware.RoleRequired(models.RoleAdmin, models.RoleLecturer)

	authenticatedAuth := authenticated.Group("/auth")
	{
		authenticatedAuth.POST("/logout", ctrl.Auth.Logout)
		authenticatedAuth.POST("/change-password", ctrl.Auth.ChangePassword)
		authenticatedAuth.GET("/profile", ctrl.Auth.Profile)
	}

	users := authenticated.Group("/users")
	users.Use(adminOnly)
	{
		users.POST("", ctrl.User.CreateUser)
		users.GET("", ctrl.User.GetAllUsers)
		users.GET("/:id", ctrl.User.GetUserByID)
		users.PUT("/:id", ctrl.User.UpdateUser)
		users.PUT("/:id/password", ctrl.User.ResetPassword)
		users.DELETE("/:id", ctrl.User.DeleteUser)
	}

	courses := authenticated.Group("/courses")
	{
		courses.GET("", ctrl.Course.GetAllCourses)
		courses.GET("/:id", ctrl.Course.GetCourseByID)

		coursesAdmin := courses.Group("")
		coursesAdmin.Use(adminOnly)
		{
			coursesAdmin.POST("", ctrl.Course.CreateCourse)
			coursesAdmin.PUT("/:id", ctrl.Course.UpdateCourse)
			coursesAdmin.DELETE("/:id", ctrl.Course.DeleteCourse)
		}
	}

	semesters := authenticated.Group("/semesters")
	{
		semesters.GET("", ctrl.Semester.GetAllSemesters)
		semesters.GET("/:id", ctrl.Semester.GetSemesterByID)

		semestersAdmin := semesters.Group("")
		semestersAdmin.Use(adminOnly)
		{
			semestersAdmin.POST("", ctrl.Semester.CreateSemester)
			semestersAdmin.PATCH("/:id", ctrl.Semester.UpdateSemesterCourses)
			semestersAdmin.DELETE("/:id", ctrl.Semester.DeleteSemester)
		}
	}

	lecturers := authenticated.Group("/lecturers")
	{
		lecturers.GET("", ctrl.Lecturer.GetAllLecturers)
		lecturers.GET("/:id", ctrl.Lecturer.GetLecturerByID)

		lecturersAdmin := lecturers.Group("")
		lecturersAdmin.Use(adminOnly)
		{
			lecturersAdmin.POST("", ctrl.Lecturer.CreateLecturer)
			lecturersAdmin.PUT("/:id", ctrl.Lecturer.UpdateLecturer)
			lecturersAdmin.DELETE("/:id", ctrl.Lecturer.DeleteLecturer)
		}
	}

	classes := authenticated.Group("/classes")
	{
		// GET /classes?available=true lists the classes the calling
		// student can still enroll in.
		classes.GET("", ctrl.Class.GetAllClasses)
		classes.GET("/:id", ctrl.Class.GetClassByID)
		classes.POST("/filter", ctrl.Class.FilterClasses)

		classesAdmin := classes.Group("")
		classesAdmin.Use(adminOnly)
		{
			classesAdmin.POST("", ctrl.Class.CreateClass)
			classesAdmin.PUT("/:id", ctrl.Class.UpdateClass)
			classesAdmin.DELETE("/:id", ctrl.Class.DeleteClass)
		}
	}

	students := authenticated.Group("/students")
	{
		students.GET("", ctrl.Student.GetAllStudents)
		students.GET("/:id", ctrl.Student.GetStudentByID)

		studentsAdmin := students.Group("")
		studentsAdmin.Use(adminOnly)
		{
			studentsAdmin.POST("", ctrl.Student.CreateStudent)
			studentsAdmin.PUT("/:id", ctrl.Student.UpdateStudent)
			studentsAdmin.DELETE("/:id", ctrl.Student.DeleteStudent)
			studentsAdmin.POST("/import", ctrl.Import.ImportStudents)
		}
	}

	enrollments := authenticated.Group("/enrollments")
	{
		enrollments.GET("", ctrl.Enrollment.GetAllEnrollments)
		enrollments.GET("/:id", ctrl.Enrollment.GetEnrollmentByID)

		// Grade writes pass a per-record check in the service on top of
		// the role gate here.
		enrollmentsStaff := enrollments.Group("")
		enrollmentsStaff.Use(staffOnly)
		{
			enrollmentsStaff.PATCH("/:id", ctrl.Enrollment.UpdateGrade)
		}

		enrollmentsAdmin := enrollments.Group("")
		enrollmentsAdmin.Use(adminOnly)
		{
			enrollmentsAdmin.POST("", ctrl.Enrollment.CreateEnrollment)
			enrollmentsAdmin.POST("/filter", ctrl.Enrollment.FilterEnrollments)
			enrollmentsAdmin.DELETE("/:id", ctrl.Enrollment.DeleteEnrollment)
		}
	}

	gradebook := authenticated.Group("/gradebook")
	{
		gradebook.GET("", ctrl.Gradebook.GetOverview)
		gradebook.POST("/filter", ctrl.Gradebook.Filter)
	}
}
