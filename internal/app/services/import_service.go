package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"

	"github.com/ekurt/gradebook/internal/app/models"
	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/app/repositories"
	"github.com/ekurt/gradebook/internal/db"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
	"github.com/ekurt/gradebook/internal/pkg/filestorage"
	"github.com/ekurt/gradebook/internal/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// importRow is one parsed spreadsheet row of a bulk student import.
type importRow struct {
	Row         int
	StudentID   int64
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	ClassNumber int64
}

// dobLayouts are the date formats accepted in the DOB column. Ambiguous
// slashed or dashed dates are always read month-first.
var dobLayouts = []string{"2006-01-02", "01/02/2006", "1/2/06", "01-02-06"}

// ImportService handles bulk student import from spreadsheet uploads
type ImportService struct {
	pool           *pgxpool.Pool
	studentRepo    *repositories.StudentRepository
	userRepo       *repositories.UserRepository
	classRepo      *repositories.ClassRepository
	enrollmentRepo *repositories.EnrollmentRepository
	provisioner    *AccountProvisioner
	fileStorage    filestorage.FileStorage
	bucketStorage  filestorage.BucketStorage
}

// NewImportService creates a new ImportService. bucketStorage may be nil
// when no object-storage mirror is configured.
func NewImportService(
	pool *pgxpool.Pool,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	classRepo *repositories.ClassRepository,
	enrollmentRepo *repositories.EnrollmentRepository,
	provisioner *AccountProvisioner,
	fileStorage filestorage.FileStorage,
	bucketStorage filestorage.BucketStorage,
) *ImportService {
	return &ImportService{
		pool:           pool,
		studentRepo:    studentRepo,
		userRepo:       userRepo,
		classRepo:      classRepo,
		enrollmentRepo: enrollmentRepo,
		provisioner:    provisioner,
		fileStorage:    fileStorage,
		bucketStorage:  bucketStorage,
	}
}

// ImportStudents parses the uploaded spreadsheet and creates a student, a
// STUDENT user account and a class enrollment per row. A failing row never
// aborts the import: each row's outcome is reported individually. The
// uploaded file is kept in local storage and mirrored to the bucket when
// one is configured.
func (s *ImportService) ImportStudents(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ImportResponse, error) {
	data, err := readUpload(fileHeader)
	if err != nil {
		return nil, err
	}

	rows, parseResults, err := parseImportRows(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	response := &dto.ImportResponse{
		TotalRows: len(rows) + len(parseResults),
		Rows:      parseResults,
	}

	for _, row := range rows {
		result := s.importRow(ctx, row)
		response.Rows = append(response.Rows, result)
	}

	for _, result := range response.Rows {
		switch result.Status {
		case dto.ImportRowEnrolled:
			response.StudentsCreated++
			response.Enrolled++
		case dto.ImportRowStudentOnly:
			response.StudentsCreated++
		case dto.ImportRowSkipped:
			response.Skipped++
		}
	}
	response.Message = fmt.Sprintf("Imported %d of %d rows", response.StudentsCreated, response.TotalRows)

	s.storeUpload(ctx, fileHeader, data, response)
	return response, nil
}

// importRow creates one student with their account, then enrolls them.
// The student and account are one transaction; a failed enrollment leaves
// the created student in place and is reported as such.
func (s *ImportService) importRow(ctx context.Context, row importRow) dto.ImportRowResult {
	student := &models.Student{
		StudentID:   row.StudentID,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Email:       row.Email,
		DateOfBirth: row.DateOfBirth,
	}
	student.Normalize()

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.studentRepo.WithTx(tx).Create(ctx, student); err != nil {
			return err
		}
		provisioner := s.provisioner.WithRepo(s.userRepo.WithTx(tx))
		_, err := provisioner.Provision(ctx, student.FirstName, student.LastName, student.Email, student.DateOfBirth, models.RoleStudent)
		return err
	})
	if err != nil {
		return dto.ImportRowResult{
			Row:    row.Row,
			Status: dto.ImportRowSkipped,
			Email:  row.Email,
			Reason: err.Error(),
		}
	}

	if err := s.enrollRow(ctx, student.ID, row.ClassNumber); err != nil {
		return dto.ImportRowResult{
			Row:    row.Row,
			Status: dto.ImportRowStudentOnly,
			Email:  row.Email,
			Reason: fmt.Sprintf("enrollment failed: %v", err),
		}
	}

	return dto.ImportRowResult{Row: row.Row, Status: dto.ImportRowEnrolled, Email: row.Email}
}

func (s *ImportService) enrollRow(ctx context.Context, studentID, classNumber int64) error {
	class, err := s.classRepo.GetByNumber(ctx, classNumber)
	if err != nil {
		return err
	}
	return s.enrollmentRepo.Create(ctx, &models.Enrollment{StudentID: studentID, ClassID: class.ID})
}

// storeUpload keeps the original spreadsheet locally and mirrors it to the
// bucket. Storage failures do not fail an import that already ran.
func (s *ImportService) storeUpload(ctx context.Context, fileHeader *multipart.FileHeader, data []byte, response *dto.ImportResponse) {
	if _, err := s.fileStorage.SaveFileWithPath(fileHeader, "imports"); err != nil {
		logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to store import file locally")
	}

	if s.bucketStorage == nil {
		return
	}
	key := fmt.Sprintf("imports/%d_%s", time.Now().Unix(), fileHeader.Filename)
	url, err := s.bucketStorage.Upload(ctx, key, data, xlsxContentType)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to mirror import file to bucket")
		return
	}
	response.FileURL = url
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.ErrUnreadableUpload
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, apperrors.ErrUnreadableUpload
	}
	return buf.Bytes(), nil
}

// parseImportRows reads the first sheet of the workbook. The header row
// must carry the ID, Firstname, Lastname, Email, DOB and Class columns in
// any order and any casing. Rows that cannot be parsed come back as
// skipped results rather than an error.
func parseImportRows(r *bytes.Reader) ([]importRow, []dto.ImportRowResult, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, apperrors.ErrUnreadableUpload
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperrors.ErrUnreadableUpload
	}
	cells, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, nil, apperrors.ErrUnreadableUpload
	}
	if len(cells) < 2 {
		return nil, nil, apperrors.NewValidationError("spreadsheet has no data rows")
	}

	columns, err := mapImportColumns(cells[0])
	if err != nil {
		return nil, nil, err
	}

	var rows []importRow
	var skipped []dto.ImportRowResult
	for i, record := range cells[1:] {
		rowNumber := i + 2
		row, err := parseImportRow(rowNumber, record, columns)
		if err != nil {
			skipped = append(skipped, dto.ImportRowResult{
				Row:    rowNumber,
				Status: dto.ImportRowSkipped,
				Reason: err.Error(),
			})
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func mapImportColumns(header []string) (map[string]int, error) {
	required := []string{"id", "firstname", "lastname", "email", "dob", "class"}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("missing required column %q", name))
		}
	}
	return columns, nil
}

func parseImportRow(rowNumber int, record []string, columns map[string]int) (importRow, error) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := importRow{
		Row:       rowNumber,
		FirstName: cell("firstname"),
		LastName:  cell("lastname"),
		Email:     cell("email"),
	}
	for name, value := range map[string]string{
		"id":        cell("id"),
		"firstname": row.FirstName,
		"lastname":  row.LastName,
		"email":     row.Email,
	} {
		if value == "" {
			return importRow{}, fmt.Errorf("missing %s", name)
		}
	}

	studentID, err := strconv.ParseInt(cell("id"), 10, 64)
	if err != nil {
		return importRow{}, fmt.Errorf("invalid student id %q", cell("id"))
	}
	row.StudentID = studentID

	dob, err := parseDOB(cell("dob"))
	if err != nil {
		return importRow{}, err
	}
	row.DateOfBirth = dob

	classNumber, err := strconv.ParseInt(cell("class"), 10, 64)
	if err != nil {
		return importRow{}, fmt.Errorf("invalid class number %q", cell("class"))
	}
	row.ClassNumber = classNumber
	return row, nil
}

func parseDOB(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("missing dob")
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dob %q", value)
}
