package dto

// ImportRowStatus is the outcome of one imported row.
type ImportRowStatus string

const (
	// ImportRowEnrolled means the student and their enrollment were created.
	ImportRowEnrolled ImportRowStatus = "ENROLLED"
	// ImportRowStudentOnly means the student was created but the enrollment
	// step failed (unknown class number, duplicate enrollment).
	ImportRowStudentOnly ImportRowStatus = "STUDENT_ONLY"
	// ImportRowSkipped means nothing was created for the row.
	ImportRowSkipped ImportRowStatus = "SKIPPED"
)

// ImportRowResult records the outcome of one row of a bulk import.
type ImportRowResult struct {
	Row    int             `json:"row"`
	Status ImportRowStatus `json:"status"`
	Email  string          `json:"email,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// ImportResponse summarizes a bulk student import.
type ImportResponse struct {
	Message         string            `json:"message"`
	TotalRows       int               `json:"totalRows"`
	StudentsCreated int               `json:"studentsCreated"`
	Enrolled        int               `json:"enrolled"`
	Skipped         int               `json:"skipped"`
	Rows            []ImportRowResult `json:"rows"`
	FileURL         string            `json:"fileUrl,omitempty"`
}
