package site

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/geoattendance/geoattendance-backend-go/internal/domain/site"
)

var csvHeader = []string{"Name", "Address", "Latitude", "Longitude", "Radius Meters", "Status"}

// ExportCSV implements site.SiteService.
func (s *siteServiceImpl) ExportCSV(ctx context.Context, w io.Writer) error {
	sites, err := s.siteRepo.List(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to load sites for export: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, st := range sites {
		status := "active"
		if !st.IsActive {
			status = "inactive"
		}

		row := []string{
			st.Name,
			st.Address,
			strconv.FormatFloat(st.Latitude, 'f', 6, 64),
			strconv.FormatFloat(st.Longitude, 'f', 6, 64),
			strconv.FormatFloat(st.RadiusMeters, 'f', 0, 64),
			status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportCSV implements site.SiteService. Bad rows are skipped and reported;
// a malformed file aborts the import.
func (s *siteServiceImpl) ImportCSV(ctx context.Context, r io.Reader) (site.ImportResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return site.ImportResult{}, fmt.Errorf("csv file is empty")
	}
	if err != nil {
		return site.ImportResult{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) < len(csvHeader) {
		return site.ImportResult{}, fmt.Errorf("csv header must contain columns: %s", strings.Join(csvHeader, ", "))
	}

	result := site.ImportResult{}
	line := 1

	for {
		line++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return site.ImportResult{}, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		req, reqErr := rowToCreateRequest(row)
		if reqErr != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, reqErr))
			continue
		}

		created, err := s.CreateSite(ctx, req)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if strings.EqualFold(strings.TrimSpace(row[5]), "inactive") {
			inactive := false
			if err := s.UpdateSite(ctx, created.ID, site.UpdateSiteRequest{IsActive: &inactive}); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: imported but could not deactivate: %v", line, err))
			}
		}
		result.Imported++
	}

	return result, nil
}

func rowToCreateRequest(row []string) (site.CreateSiteRequest, error) {
	if len(row) < len(csvHeader) {
		return site.CreateSiteRequest{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(row))
	}

	req := site.CreateSiteRequest{
		Name:    strings.TrimSpace(row[0]),
		Address: strings.TrimSpace(row[1]),
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
	if err != nil {
		return site.CreateSiteRequest{}, fmt.Errorf("invalid latitude %q", row[2])
	}
	req.Latitude = lat

	lng, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
	if err != nil {
		return site.CreateSiteRequest{}, fmt.Errorf("invalid longitude %q", row[3])
	}
	req.Longitude = lng

	radius, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
	if err != nil {
		return site.CreateSiteRequest{}, fmt.Errorf("invalid radius %q", row[4])
	}
	req.RadiusMeters = radius

	if err := req.Validate(); err != nil {
		return site.CreateSiteRequest{}, err
	}
	return req, nil
}
