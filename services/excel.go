package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"wiredleaf-api/logger"
	"wiredleaf-api/models"
)

// RowError reports a spreadsheet row that could not be imported.
// Row is the 1-based sheet row number.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParsedSheet is the outcome of reading an import workbook.
type ParsedSheet struct {
	Rows    []models.ConsultationRequest
	RowNums []int
	Errors  []RowError
}

var columnAliases = map[string][]string{
	"name":           {"name", "full name", "client name", "full_name"},
	"email":          {"email", "e-mail", "email address"},
	"phone":          {"phone", "mobile", "phone number", "contact number"},
	"service":        {"service", "service type", "interest"},
	"message":        {"message", "notes", "details", "project details"},
	"preferred_date": {"preferred_date", "preferred date", "date"},
	"preferred_time": {"preferred_time", "preferred time", "time", "time slot"},
}

// ParseConsultationsExcel reads the first sheet of an xlsx workbook with
// flexible header detection. Rows missing name, email or service are
// reported rather than returned.
func ParseConsultationsExcel(r io.Reader) (*ParsedSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data in sheet")
	}

	cols := detectColumns(rows[0])
	logger.Debug("Import sheet %q columns: %v", sheets[0], cols)
	if cols["name"] < 0 || cols["email"] < 0 || cols["service"] < 0 {
		return nil, fmt.Errorf("sheet must have name, email and service columns")
	}

	out := &ParsedSheet{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}

		req := models.ConsultationRequest{
			Name:          extractField(row, cols["name"]),
			Email:         extractField(row, cols["email"]),
			Phone:         extractField(row, cols["phone"]),
			Service:       extractField(row, cols["service"]),
			Message:       extractField(row, cols["message"]),
			PreferredDate: extractField(row, cols["preferred_date"]),
			PreferredTime: extractField(row, cols["preferred_time"]),
		}
		if req.Name == "" || req.Email == "" || req.Service == "" {
			out.Errors = append(out.Errors, RowError{Row: i + 1, Reason: "missing name, email or service"})
			continue
		}
		out.Rows = append(out.Rows, req)
		out.RowNums = append(out.RowNums, i+1)
	}
	return out, nil
}

// detectColumns finds column indices by matching header names.
func detectColumns(headers []string) map[string]int {
	indices := make(map[string]int, len(columnAliases))
	for field := range columnAliases {
		indices[field] = -1
	}
	for i, header := range headers {
		lower := strings.ToLower(strings.TrimSpace(header))
		for field, aliases := range columnAliases {
			for _, alias := range aliases {
				if lower == alias && indices[field] < 0 {
					indices[field] = i
				}
			}
		}
	}
	return indices
}

func extractField(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var exportHeaders = []string{
	"ID", "Name", "Email", "Phone", "Service", "Message",
	"Preferred Date", "Preferred Time", "Status", "Created At",
}

// WriteConsultationsExcel writes cs as a single-sheet workbook.
func WriteConsultationsExcel(w io.Writer, cs []models.Consultation) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Consultations"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, style)
	}

	for i, c := range cs {
		row := []any{
			c.ID, c.Name, c.Email,
			models.StringOr(c.Phone, ""),
			c.Service,
			models.StringOr(c.Message, ""),
			models.StringOr(c.PreferredDate, ""),
			models.StringOr(c.PreferredTime, ""),
			c.Status,
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
