package serviceImp

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the user's check-ins and plan version history into a
// two-sheet workbook.
func (s *AnalyticsSvc) ExportXLSX(userID string) (*bytes.Buffer, error) {
	checkIns, err := s.checkIns.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	versions, err := s.versions.ListByUser(userID, nil, 500)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const checkInSheet = "CheckIns"
	f.SetSheetName("Sheet1", checkInSheet)
	headers := []any{"Date", "Energy", "Mood", "Symptoms"}
	if err := f.SetSheetRow(checkInSheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, ci := range checkIns {
		energy, mood := "", ""
		if ci.Energy != nil {
			energy = fmt.Sprintf("%d", *ci.Energy)
		}
		if ci.Mood != nil {
			mood = fmt.Sprintf("%d", *ci.Mood)
		}
		row := []any{ci.Date.Format("2006-01-02"), energy, mood, strings.Join(ci.Symptoms, ", ")}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(checkInSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const versionSheet = "PlanVersions"
	if _, err := f.NewSheet(versionSheet); err != nil {
		return nil, err
	}
	headers = []any{"Version", "Source", "Created", "Why Changed"}
	if err := f.SetSheetRow(versionSheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, pv := range versions {
		row := []any{pv.Version, pv.Source, pv.CreatedAt.Format("2006-01-02 15:04"), pv.WhyChanged}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(versionSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
