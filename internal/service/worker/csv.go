package worker

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/worker"
)

// csvHeader is the roster layout shared by export and import. The Site
// column carries the site name on export and is matched back by name,
// case-insensitive, on import.
var csvHeader = []string{"Name", "Email", "Phone", "Site", "Pay Rate", "Status"}

// ExportCSV implements worker.WorkerService.
func (s *workerServiceImpl) ExportCSV(ctx context.Context, w io.Writer) error {
	workers, err := s.workerRepo.List(ctx, worker.Filter{})
	if err != nil {
		return fmt.Errorf("failed to load workers for export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, wk := range workers {
		phone := ""
		if wk.PhoneNumber != nil {
			phone = *wk.PhoneNumber
		}
		siteName := ""
		if wk.SiteName != nil {
			siteName = *wk.SiteName
		}
		status := "active"
		if !wk.IsActive {
			status = "inactive"
		}

		row := []string{
			wk.Name,
			wk.Email,
			phone,
			siteName,
			strconv.FormatFloat(wk.PayRate, 'f', 2, 64),
			status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportCSV implements worker.WorkerService. Rows that fail validation or
// collide with an existing email are skipped and reported; the rest are
// created. A malformed file aborts the whole import.
func (s *workerServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (worker.ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return worker.ImportResult{}, fmt.Errorf("csv file is empty")
	}
	if err != nil {
		return worker.ImportResult{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) < len(csvHeader) {
		return worker.ImportResult{}, fmt.Errorf("csv header must contain columns: %s", strings.Join(csvHeader, ", "))
	}

	siteIDs, err := s.siteNameIndex(ctx)
	if err != nil {
		return worker.ImportResult{}, err
	}

	result := worker.ImportResult{}
	line := 1

	for {
		line++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return worker.ImportResult{}, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		req, reqErr := rowToCreateRequest(row, siteIDs)
		if reqErr != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, reqErr))
			continue
		}

		if _, err := s.CreateWorker(ctx, req); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row[5]), "inactive") {
			if err := s.DeactivateWorker(ctx, req.Email); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: imported but could not deactivate: %v", line, err))
			}
		}
		result.Imported++
	}

	return result, nil
}

func (s *workerServiceImpl) siteNameIndex(ctx context.Context) (map[string]string, error) {
	sites, err := s.siteRepo.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load sites for import: %w", err)
	}

	index := make(map[string]string, len(sites))
	for _, st := range sites {
		index[strings.ToLower(st.Name)] = st.ID
	}
	return index, nil
}

func rowToCreateRequest(row []string, siteIDs map[string]string) (worker.CreateWorkerRequest, error) {
	if len(row) < len(csvHeader) {
		return worker.CreateWorkerRequest{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	req := worker.CreateWorkerRequest{
		Name:  strings.TrimSpace(row[0]),
		Email: strings.TrimSpace(row[1]),
	}

	if phone := strings.TrimSpace(row[2]); phone != "" {
		req.PhoneNumber = &phone
	}

	if siteName := strings.TrimSpace(row[3]); siteName != "" {
		id, ok := siteIDs[strings.ToLower(siteName)]
		if !ok {
			return worker.CreateWorkerRequest{}, fmt.Errorf("unknown site %q", siteName)
		}
		req.SiteID = &id
	}

	if rate := strings.TrimSpace(row[4]); rate != "" {
		payRate, err := strconv.ParseFloat(rate, 64)
		if err != nil {
			return worker.CreateWorkerRequest{}, fmt.Errorf("invalid pay rate %q", rate)
		}
		req.PayRate = payRate
	}

	if err := req.Validate(); err != nil {
		return worker.CreateWorkerRequest{}, err
	}
	return req, nil
}
