package services

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ekurt/gradebook/internal/app/models/dto"
	"github.com/ekurt/gradebook/internal/pkg/apperrors"
)

func buildWorkbook(t *testing.T, header []interface{}, rows [][]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func importHeader() []interface{} {
	return []interface{}{"ID", "Firstname", "Lastname", "Email", "DOB", "Class"}
}

func TestParseImportRows(t *testing.T) {
	rows := [][]interface{}{
		{"1001", "maria", "santos", "msantos@example.com", "1999-03-02", "101"},
		{"1002", "john", "smith", "jsmith@example.com", "2000-11-20", "101"},
	}
	parsed, skipped, err := parseImportRows(buildWorkbook(t, importHeader(), rows))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, parsed, 2)

	assert.Equal(t, int64(1001), parsed[0].StudentID)
	assert.Equal(t, "maria", parsed[0].FirstName)
	assert.Equal(t, "msantos@example.com", parsed[0].Email)
	assert.Equal(t, time.Date(1999, time.March, 2, 0, 0, 0, 0, time.UTC), parsed[0].DateOfBirth)
	assert.Equal(t, int64(101), parsed[0].ClassNumber)
	assert.Equal(t, 2, parsed[0].Row, "data rows start at spreadsheet row 2")
	assert.Equal(t, 3, parsed[1].Row)
}

func TestParseImportRowsSkipsBadRowsAndKeepsRest(t *testing.T) {
	rows := make([][]interface{}, 0, 10)
	for i := 0; i < 10; i++ {
		email := fmt.Sprintf("student%d@example.com", i)
		if i == 4 {
			email = "" // row 6 in the sheet
		}
		rows = append(rows, []interface{}{
			fmt.Sprintf("%d", 2000+i), "first", "last", email, "2001-06-15", "200",
		})
	}

	parsed, skipped, err := parseImportRows(buildWorkbook(t, importHeader(), rows))
	require.NoError(t, err)
	assert.Len(t, parsed, 9, "one bad row never aborts the rest")
	require.Len(t, skipped, 1)
	assert.Equal(t, 6, skipped[0].Row)
	assert.Equal(t, dto.ImportRowSkipped, skipped[0].Status)
	assert.Contains(t, skipped[0].Reason, "email")
}

func TestParseImportRowsColumnOrderAndCase(t *testing.T) {
	header := []interface{}{"class", "EMAIL", "dob", "Lastname", "firstname", "id"}
	rows := [][]interface{}{
		{"300", "a@example.com", "1998-01-31", "lee", "ana", "42"},
	}
	parsed, skipped, err := parseImportRows(buildWorkbook(t, header, rows))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, parsed, 1)
	assert.Equal(t, int64(42), parsed[0].StudentID)
	assert.Equal(t, int64(300), parsed[0].ClassNumber)
	assert.Equal(t, "ana", parsed[0].FirstName)
}

func TestParseImportRowsMissingColumn(t *testing.T) {
	header := []interface{}{"ID", "Firstname", "Lastname", "DOB", "Class"}
	rows := [][]interface{}{
		{"1", "a", "b", "1999-01-01", "101"},
	}
	_, _, err := parseImportRows(buildWorkbook(t, header, rows))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Contains(t, err.Error(), "email")
}

func TestParseImportRowsRejectsGarbage(t *testing.T) {
	_, _, err := parseImportRows(bytes.NewReader([]byte("not a spreadsheet")))
	assert.True(t, errors.Is(err, apperrors.ErrUnreadableUpload))
}

func TestParseImportRowsRejectsEmptySheet(t *testing.T) {
	_, _, err := parseImportRows(buildWorkbook(t, importHeader(), nil))
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestParseDOBLayouts(t *testing.T) {
	want := time.Date(1999, time.March, 2, 0, 0, 0, 0, time.UTC)

	for _, value := range []string{"1999-03-02", "03/02/1999", "3/2/99", "03-02-99"} {
		got, err := parseDOB(value)
		require.NoError(t, err, "parseDOB(%q)", value)
		assert.Equal(t, want, got, "parseDOB(%q)", value)
	}

	_, err := parseDOB("yesterday")
	assert.Error(t, err)
	_, err = parseDOB("")
	assert.Error(t, err)
}

func TestParseDOBReadsSlashedDatesMonthFirst(t *testing.T) {
	got, err := parseDOB("04/07/1999")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1999, time.April, 7, 0, 0, 0, 0, time.UTC), got)
}
