package report

import (
	"fmt"

	"github.com/ekaramchari/hr-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Attendance Report"

var reportHeaders = []string{
	"Emp Code", "Employee Name", "Department",
	"Present", "Absent", "Half Days", "On Leave",
	"Total Hours", "Overtime Hours",
}

// renderXLSX lays the range report out as a single-sheet workbook.
func renderXLSX(resp report.ReportResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", reportSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Attendance Report (%s to %s)", resp.Period.StartDate, resp.Period.EndDate)
	if err := f.SetCellValue(reportSheet, "A1", title); err != nil {
		return nil, err
	}

	for i, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(reportSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range resp.Report {
		dept := "N/A"
		if row.DepartmentName != nil {
			dept = *row.DepartmentName
		}
		values := []interface{}{
			row.EmpCode, row.EmployeeName, dept,
			row.PresentDays, row.AbsentDays, row.HalfDays, row.LeaveDays,
			row.TotalHours, row.OvertimeHours,
		}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+4)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(reportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(reportSheet, "A", "C", 22); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "D", "I", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
