package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"survey_registry/internal/repository"
)

// csvHeader matches the spreadsheet layout field teams already use.
var csvHeader = []string{"Name", "Type", "Woreda", "Kebele", "Phone", "Audio URL"}

// ExportService writes the farmer records as CSV.
type ExportService struct {
	farmers repository.Farmers
}

func NewExportService(farmers repository.Farmers) *ExportService {
	return &ExportService{farmers: farmers}
}

// FarmersCSV streams all records to w and returns the number of data rows
// written (header excluded).
func (s *ExportService) FarmersCSV(ctx context.Context, w io.Writer) (int, error) {
	farmers, err := s.farmers.List(ctx)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return 0, fmt.Errorf("write csv header: %w", err)
	}
	for _, f := range farmers {
		row := []string{f.Name, f.FarmerType, f.Woreda, f.Kebele, f.Phone, f.AudioURL}
		if err := cw.Write(row); err != nil {
			return 0, fmt.Errorf("write csv row for farmer %d: %w", f.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flush csv: %w", err)
	}
	return len(farmers), nil
}
