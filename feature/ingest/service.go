package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"dex-ingest/core/dex"
	"dex-ingest/core/storage"
	"dex-ingest/feature/ingest/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by lookups when persistence is disabled.
var ErrNoDatabase = errors.New("persistence is disabled")

// ErrNoStorage is returned by raw-file retrieval when archiving is disabled.
var ErrNoStorage = errors.New("raw archiving is disabled")

// Service handles audit file ingestion.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	parser *dex.Parser
}

// NewService creates a new ingest service. Both the storage client and the
// database are optional; a nil client skips archiving and a nil db skips
// persistence.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		parser: dex.New(),
	}
}

// rawObjectName is the archive key for an ingest identifier.
func rawObjectName(id string) string {
	return fmt.Sprintf("raw/%s.dex", id)
}

// EnsureBucket creates the archive bucket when it does not exist yet, so
// a fresh storage backend works without manual setup. No-op without a
// storage client.
func (s *Service) EnsureBucket(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Archive bucket created", zap.String("bucket", s.bucket))
	return nil
}

// Migrate creates the persistence tables. No-op without a database.
func (s *Service) Migrate() error {
	if s.db == nil {
		return nil
	}
	return s.db.AutoMigrate(&models.AuditFile{}, &models.SelectionRow{}, &models.ParseIssue{})
}

// Ingest parses a raw audit transmission, archives the raw bytes, and
// persists the outcome. Parse failures are not errors here: the failed
// outcome is still archived, persisted, and returned. The returned error
// covers infrastructure problems only.
func (s *Service) Ingest(ctx context.Context, content []byte, label string) (*models.IngestReport, error) {
	id := uuid.NewString()
	result := s.parser.Parse(string(content), label)

	report := &models.IngestReport{
		ID:     id,
		Result: result,
	}

	if s.client != nil {
		objectName := rawObjectName(id)
		_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(content), int64(len(content)), minio.PutObjectOptions{
			ContentType: "text/plain",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to archive raw file: %w", err)
		}
		report.Archived = true
		s.logger.Debug("Raw file archived",
			zap.String("id", id),
			zap.String("object", objectName),
		)
	}

	if s.db != nil {
		if err := s.persist(report); err != nil {
			return nil, fmt.Errorf("failed to persist parse outcome: %w", err)
		}
		report.Persisted = true
	}

	return report, nil
}

// persist writes the parse outcome in one transaction. Rows and issues are
// created flat rather than as GORM associations so the write pattern stays
// predictable.
func (s *Service) persist(report *models.IngestReport) error {
	result := report.Result

	file := models.AuditFile{
		ID:          report.ID,
		Label:       result.Label,
		Success:     result.Success,
		RecordCount: result.RecordCount,
		PatternType: result.Grid.PatternType,
		Confidence:  result.Grid.Confidence,
	}
	if report.Archived {
		file.RawObject = rawObjectName(report.ID)
	}

	rows := make([]models.SelectionRow, 0, len(result.Selections))
	for _, sel := range result.Selections {
		rows = append(rows, models.SelectionRow{
			AuditFileID:    report.ID,
			Selection:      sel.Selection,
			Price:          sel.Price,
			Capacity:       sel.Capacity,
			UnitsSold:      sel.UnitsSold,
			Revenue:        sel.Revenue,
			TestVends:      sel.TestVends,
			FreeVends:      sel.FreeVends,
			CashSales:      sel.CashSales,
			CashlessSales:  sel.CashlessSales,
			DiscountCount:  sel.DiscountCount,
			DiscountAmount: sel.DiscountAmount,
			LastSaleDate:   sel.LastSaleDate,
			LastSaleTime:   sel.LastSaleTime,
			GridRow:        sel.Row,
			GridColumn:     sel.Column,
		})
	}

	issues := make([]models.ParseIssue, 0, len(result.Errors))
	for _, e := range result.Errors {
		issues = append(issues, models.ParseIssue{
			AuditFileID: report.ID,
			Line:        e.Line,
			Category:    e.Category,
			Field:       e.Field,
			Message:     e.Message,
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(issues) > 0 {
			if err := tx.Create(&issues).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRaw streams the archived raw transmission for an ingest identifier.
// The caller owns the returned reader.
func (s *Service) GetRaw(ctx context.Context, id string) (io.ReadCloser, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return s.client.GetObject(ctx, s.bucket, rawObjectName(id), minio.GetObjectOptions{})
}

// GetFile returns a persisted audit file with its selections and issues.
func (s *Service) GetFile(ctx context.Context, id string) (*models.FileDetail, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}

	var detail models.FileDetail
	if err := s.db.WithContext(ctx).First(&detail.File, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("audit_file_id = ?", id).Order("id").Find(&detail.Selections).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("audit_file_id = ?", id).Order("id").Find(&detail.Issues).Error; err != nil {
		return nil, err
	}

	return &detail, nil
}
