package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/ehsanhossain/VentureFlow-sub000/pkg/monitoring"
	"github.com/ehsanhossain/VentureFlow-sub000/v1/models"
)

// maxHeaderDistance is the edit-distance cutoff for fuzzy header matching
const maxHeaderDistance = 2

// prospectColumns are the canonical import columns, each with the header
// spellings seen in broker spreadsheets
var prospectColumns = map[string][]string{
	"company_name": {"companyname", "company", "firm", "businessname"},
	"contact_name": {"contactname", "contact", "contactperson", "name"},
	"email":        {"email", "emailaddress", "mail"},
	"phone":        {"phone", "phonenumber", "telephone", "tel"},
	"country_code": {"countrycode", "country"},
	"industry":     {"industry", "sector", "vertical"},
	"revenue":      {"revenue", "turnover", "annualrevenue", "sales"},
	"side":         {"side", "targetside", "type", "role"},
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ImportService ingests prospect spreadsheets. Rows that fail validation are
// reported per row; rows that pass are inserted in a single transaction, so
// a storage failure never leaves a half-written batch.
type ImportService struct {
	db *gorm.DB
}

// NewImportService creates a new import service
func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

// ImportProspects parses an uploaded spreadsheet and inserts the valid rows
// as prospects under a fresh batch. The batch record is written even when
// every row fails, so the caller always gets a per-row error report.
func (s *ImportService) ImportProspects(ctx context.Context, fileName string, content []byte, createdBy string) (*models.ImportBatchResponse, error) {
	start := time.Now()

	format := detectFormat(fileName)
	if format == "" {
		return nil, fmt.Errorf("unsupported file format: %s", fileName)
	}

	rows, err := parseRows(format, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s file: %w", format, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}

	mapping, err := matchHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	batchID := "imp_" + uuid.New().String()
	prospects, rowErrors := buildProspects(rows[1:], mapping, batchID)

	batch := models.ImportBatch{
		BatchID:      batchID,
		FileName:     fileName,
		Format:       format,
		Status:       models.ImportStatusCompleted,
		TotalRows:    len(rows) - 1,
		InsertedRows: len(prospects),
		Errors:       rowErrors,
		CreatedBy:    createdBy,
	}
	if len(prospects) == 0 {
		batch.Status = models.ImportStatusFailed
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(prospects) > 0 {
			if err := tx.CreateInBatches(prospects, 200).Error; err != nil {
				return fmt.Errorf("failed to insert prospects: %w", err)
			}
		}
		if err := tx.Create(&batch).Error; err != nil {
			return fmt.Errorf("failed to record import batch: %w", err)
		}
		return nil
	})
	if err != nil {
		monitoring.RecordBusinessEvent(ctx, "prospect_import", false)
		return nil, err
	}

	monitoring.RecordImportDuration(ctx, format, time.Since(start))
	monitoring.RecordBusinessEvent(ctx, "prospect_import", batch.Status == models.ImportStatusCompleted)
	slog.Info("prospect import finished",
		"batchId", batch.BatchID,
		"fileName", fileName,
		"totalRows", batch.TotalRows,
		"insertedRows", batch.InsertedRows,
		"errorCount", len(rowErrors))

	return batchResponse(&batch), nil
}

// GetBatch returns one import batch report
func (s *ImportService) GetBatch(ctx context.Context, batchID string) (*models.ImportBatchResponse, error) {
	var batch models.ImportBatch
	if err := s.db.WithContext(ctx).First(&batch, "batch_id = ?", batchID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch import batch: %w", err)
	}
	return batchResponse(&batch), nil
}

// ListBatches returns recent import batches, newest first
func (s *ImportService) ListBatches(ctx context.Context) ([]models.ImportBatchResponse, error) {
	var batches []models.ImportBatch
	if err := s.db.WithContext(ctx).Order("created_at DESC").Limit(models.MaxPageSize).Find(&batches).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch import batches: %w", err)
	}
	out := make([]models.ImportBatchResponse, len(batches))
	for i := range batches {
		out[i] = *batchResponse(&batches[i])
	}
	return out, nil
}

// ListProspects returns the prospects inserted by one batch
func (s *ImportService) ListProspects(ctx context.Context, batchID string) ([]models.Prospect, error) {
	var prospects []models.Prospect
	if err := s.db.WithContext(ctx).Where("batch_id = ?", batchID).Order("created_at ASC").Find(&prospects).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch prospects: %w", err)
	}
	return prospects, nil
}

func batchResponse(batch *models.ImportBatch) *models.ImportBatchResponse {
	return &models.ImportBatchResponse{
		BatchID:      batch.BatchID,
		FileName:     batch.FileName,
		Format:       batch.Format,
		Status:       string(batch.Status),
		TotalRows:    batch.TotalRows,
		InsertedRows: batch.InsertedRows,
		Errors:       batch.Errors,
		CreatedAt:    batch.CreatedAt.Format(time.RFC3339),
	}
}

func detectFormat(fileName string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(fileName), ".xlsx"):
		return "xlsx"
	case strings.HasSuffix(strings.ToLower(fileName), ".csv"):
		return "csv"
	}
	return ""
}

// parseRows reads the first sheet of an xlsx file or the whole csv file into
// a uniform row slice, header row first
func parseRows(format string, content []byte) ([][]string, error) {
	if format == "csv" {
		reader := csv.NewReader(bytes.NewReader(content))
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		var rows [][]string
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			rows = append(rows, record)
		}
		return rows, nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// matchHeaders maps spreadsheet column indexes onto canonical prospect
// columns. Matching is fuzzy: headers are normalized to lowercase
// alphanumerics, then compared against the known spellings by exact match
// first and bounded edit distance second.
func matchHeaders(header []string) (map[string]int, error) {
	mapping := make(map[string]int)
	for idx, raw := range header {
		normalized := normalizeHeader(raw)
		if normalized == "" {
			continue
		}
		if column, ok := matchColumn(normalized); ok {
			if _, dup := mapping[column]; !dup {
				mapping[column] = idx
			}
		}
	}
	if _, ok := mapping["company_name"]; !ok {
		return nil, fmt.Errorf("no column matching company name found in header")
	}
	return mapping, nil
}

func matchColumn(normalized string) (string, bool) {
	for column, spellings := range prospectColumns {
		for _, spelling := range spellings {
			if normalized == spelling {
				return column, true
			}
		}
	}
	best := ""
	bestDistance := maxHeaderDistance + 1
	for column, spellings := range prospectColumns {
		for _, spelling := range spellings {
			if d := levenshtein.ComputeDistance(normalized, spelling); d < bestDistance {
				best = column
				bestDistance = d
			}
		}
	}
	return best, best != ""
}

func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// buildProspects validates each data row and converts the valid ones into
// prospect records. Row numbers in errors are 1-based spreadsheet rows, so
// the first data row is row 2.
func buildProspects(rows [][]string, mapping map[string]int, batchID string) ([]models.Prospect, models.RowErrors) {
	var prospects []models.Prospect
	var rowErrors models.RowErrors

	for i, row := range rows {
		rowNum := i + 2
		cell := func(column string) string {
			idx, ok := mapping[column]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		companyName := cell("company_name")
		if companyName == "" {
			rowErrors = append(rowErrors, models.RowError{Row: rowNum, Column: "company_name", Message: "company name is required"})
			continue
		}

		email := cell("email")
		if email != "" && !emailPattern.MatchString(email) {
			rowErrors = append(rowErrors, models.RowError{Row: rowNum, Column: "email", Message: "invalid email address"})
			continue
		}

		revenue := 0.0
		if raw := cell("revenue"); raw != "" {
			parsed, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil {
				rowErrors = append(rowErrors, models.RowError{Row: rowNum, Column: "revenue", Message: "revenue is not numeric"})
				continue
			}
			revenue = parsed
		}

		side := strings.ToLower(cell("side"))
		if normalized, ok := sharingSide(side); ok {
			side = normalized
		} else {
			side = string(models.EntityTypeSeller)
		}

		prospects = append(prospects, models.Prospect{
			ProspectID:   "pro_" + uuid.New().String(),
			CompanyName:  companyName,
			ContactName:  cell("contact_name"),
			Email:        email,
			Phone:        cell("phone"),
			CountryCode:  strings.ToUpper(cell("country_code")),
			Industry:     cell("industry"),
			RevenueValue: revenue,
			TargetSide:   side,
			BatchID:      batchID,
		})
	}

	return prospects, rowErrors
}

// sharingSide normalizes the free-text side column onto buyer/seller
func sharingSide(raw string) (string, bool) {
	switch raw {
	case "buyer", "buy", "investor", "acquirer":
		return string(models.EntityTypeBuyer), true
	case "seller", "sell", "target", "divestor":
		return string(models.EntityTypeSeller), true
	}
	return "", false
}
