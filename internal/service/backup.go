package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"querybridge/internal/model"
	"querybridge/internal/repository"
	"querybridge/internal/storage"
)

const presignExpiry = 15 * time.Minute

// BackupListResult is the service-level DTO for paginated backups.
type BackupListResult struct {
	Items []model.Backup `json:"data"`
	Total int            `json:"total"`
}

// BackupDetail is a backup record plus a temporary download link for its manifest.
type BackupDetail struct {
	model.Backup
	ManifestURL string `json:"manifest_url"`
}

// BackupService runs the end-to-end backup flow and manages the backup ledger.
type BackupService interface {
	// Run collects export descriptors from both backends, plans the relational tables,
	// writes the manifest to object storage and records the run. If recording fails the
	// manifest object is removed again.
	Run(ctx context.Context) (*model.BackupManifest, error)

	// List returns backups using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*BackupListResult, error)

	// Get returns a single backup with a presigned manifest URL.
	Get(ctx context.Context, id string) (*BackupDetail, error)

	// Manifest streams the stored manifest of a backup.
	Manifest(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error)

	// Delete removes the manifest object first, then the ledger row.
	Delete(ctx context.Context, id string) error
}

type backupService struct {
	dispatcher Dispatcher
	catalog    repository.CatalogRepository
	repo       repository.BackupRepository
	store      storage.Storage
	log        *zap.Logger
	now        func() time.Time
}

// NewBackupService constructs a new BackupService.
func NewBackupService(d Dispatcher, catalog repository.CatalogRepository, repo repository.BackupRepository, store storage.Storage, log *zap.Logger) BackupService {
	if log == nil {
		log = zap.NewNop()
	}
	return &backupService{
		dispatcher: d,
		catalog:    catalog,
		repo:       repo,
		store:      store,
		log:        log.With(zap.String("component", "backup")),
		now:        time.Now,
	}
}

func manifestKey(id string) string {
	return path.Join("backups", id+".json")
}

func (s *backupService) Run(ctx context.Context) (*model.BackupManifest, error) {
	id := uuid.New().String()
	log := s.log.With(zap.String("backup_id", id))

	res, err := s.dispatcher.Route(ctx, &model.QueryAnalysis{
		OriginalText:  "backup postgres to mongodb",
		TargetBackend: model.BackendBoth,
		Operation:     model.OpBackup,
	})
	if err != nil {
		return nil, fmt.Errorf("collect export descriptors: %w", err)
	}

	manifest := &model.BackupManifest{
		ID:        id,
		Status:    model.BackupStatusSuccess,
		CreatedAt: s.now().UTC(),
		Exports:   res.Data,
		Plan:      []model.TablePlan{},
	}

	var rowTotal int64
	tables, err := s.catalog.Tables(ctx)
	var deps map[string][]string
	if err == nil {
		deps, err = s.catalog.Dependencies(ctx)
	}
	if err != nil {
		log.Warn("schema inventory failed, continuing with descriptors only",
			zap.String("event", "backup_inventory_failed"),
			zap.Error(err),
		)
		manifest.Status = model.BackupStatusPartialSuccess
		manifest.InventoryError = err.Error()
	} else {
		manifest.Plan = PlanTables(tables, deps)
		for _, t := range tables {
			rowTotal += t.RowEstimate
		}
	}

	key := manifestKey(id)
	if _, err := storage.PutJSON(ctx, s.store, key, manifest, map[string]string{"backup-status": manifest.Status}); err != nil {
		return nil, fmt.Errorf("upload manifest: %w", err)
	}

	_, err = s.repo.Create(ctx, &model.Backup{
		ID:          id,
		Status:      manifest.Status,
		ManifestKey: key,
		TableCount:  len(manifest.Plan),
		RowEstimate: rowTotal,
		CreatedAt:   manifest.CreatedAt,
	})
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	log.Info("backup recorded",
		zap.String("event", "backup_completed"),
		zap.String("status", manifest.Status),
		zap.Int("tables", len(manifest.Plan)),
		zap.Int64("row_estimate", rowTotal),
	)
	return manifest, nil
}

// List returns paginated backups without exposing repository types.
func (s *backupService) List(ctx context.Context, limit, offset int) (*BackupListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &BackupListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *backupService) find(ctx context.Context, id string) (*model.Backup, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *backupService) Get(ctx context.Context, id string) (*BackupDetail, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	u, err := s.store.PresignGet(ctx, b.ManifestKey, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign manifest: %w", err)
	}
	return &BackupDetail{Backup: *b, ManifestURL: u}, nil
}

func (s *backupService) Manifest(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	b, err := s.find(ctx, id)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, b.ManifestKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

func (s *backupService) Delete(ctx context.Context, id string) error {
	b, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, b.ManifestKey); err != nil {
		return fmt.Errorf("delete manifest: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
