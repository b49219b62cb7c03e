// Package admin implements the administrator dashboard and farmer management.
package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/apperr"
	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository"
)

const (
	msgFarmerNotFound = "Farmer not found"
	msgAdminTarget    = "Administrator accounts cannot be modified"

	// DefaultSnapshotLimit bounds ListSnapshots when the caller passes no limit.
	DefaultSnapshotLimit = 30
)

// Exporter publishes a snapshot outside the database, e.g. to a spreadsheet.
type Exporter interface {
	ExportSnapshot(ctx context.Context, snapshot models.DashboardSnapshot) error
}

// Service exposes the administrator operations.
type Service struct {
	stores   repository.Stores
	exporter Exporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new admin service. exporter may be nil.
func NewService(stores repository.Stores, exporter Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		stores:   stores,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Dashboard counts farmers and records across every farm.
func (s *Service) Dashboard(ctx context.Context) (models.Dashboard, error) {
	var (
		dash models.Dashboard
		err  error
	)

	if dash.TotalFarmers, err = s.stores.Accounts.CountByRole(ctx, models.RoleFarmer); err != nil {
		return models.Dashboard{}, apperr.Internal("count farmers", err)
	}
	if dash.TotalMilk, err = s.stores.Milk.SumQuantity(ctx); err != nil {
		return models.Dashboard{}, apperr.Internal("sum milk", err)
	}
	if dash.TotalBreeds, err = s.stores.Breeds.Count(ctx); err != nil {
		return models.Dashboard{}, apperr.Internal("count breeds", err)
	}
	if dash.TotalFeeds, err = s.stores.Feeds.Count(ctx); err != nil {
		return models.Dashboard{}, apperr.Internal("count feeds", err)
	}
	if dash.TotalHealth, err = s.stores.Health.Count(ctx); err != nil {
		return models.Dashboard{}, apperr.Internal("count health records", err)
	}

	return dash, nil
}

// ListFarmers returns every farmer account, oldest first.
func (s *Service) ListFarmers(ctx context.Context) ([]models.Account, error) {
	farmers, err := s.stores.Accounts.ListByRole(ctx, models.RoleFarmer)
	if err != nil {
		return nil, apperr.Internal("list farmers", err)
	}
	if farmers == nil {
		farmers = []models.Account{}
	}
	return farmers, nil
}

// ToggleBlock flips the blocked flag of a farmer and returns the updated account.
func (s *Service) ToggleBlock(ctx context.Context, id string) (models.Account, error) {
	farmer, err := s.farmer(ctx, id)
	if err != nil {
		return models.Account{}, err
	}

	farmer.Blocked = !farmer.Blocked
	if err := s.stores.Accounts.SetBlocked(ctx, farmer.ID, farmer.Blocked); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Account{}, apperr.NotFound(msgFarmerNotFound)
		}
		return models.Account{}, apperr.Internal("update farmer", err)
	}

	s.logger.Info("farmer block toggled",
		zap.String("account_id", farmer.ID.Hex()),
		zap.Bool("blocked", farmer.Blocked),
	)
	return farmer, nil
}

// DeleteFarmer removes a farmer's records and then the account itself. A
// failure part way leaves the account in place so the call can be retried.
func (s *Service) DeleteFarmer(ctx context.Context, id string) error {
	farmer, err := s.farmer(ctx, id)
	if err != nil {
		return err
	}

	cascade := []struct {
		name string
		fn   func(context.Context, primitive.ObjectID) (int64, error)
	}{
		{"milk", s.stores.Milk.DeleteByOwner},
		{"feeds", s.stores.Feeds.DeleteByOwner},
		{"breeds", s.stores.Breeds.DeleteByOwner},
		{"health", s.stores.Health.DeleteByOwner},
	}

	fields := []zap.Field{zap.String("account_id", farmer.ID.Hex())}
	for _, step := range cascade {
		n, err := step.fn(ctx, farmer.ID)
		if err != nil {
			return apperr.Internal(fmt.Sprintf("delete %s records", step.name), err)
		}
		fields = append(fields, zap.Int64(step.name, n))
	}

	if err := s.stores.Accounts.Delete(ctx, farmer.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound(msgFarmerNotFound)
		}
		return apperr.Internal("delete farmer", err)
	}

	s.logger.Info("farmer deleted", fields...)
	return nil
}

// Snapshot records the current dashboard and exports it when an exporter is configured.
func (s *Service) Snapshot(ctx context.Context) (models.DashboardSnapshot, error) {
	dash, err := s.Dashboard(ctx)
	if err != nil {
		return models.DashboardSnapshot{}, err
	}

	snapshot := models.DashboardSnapshot{
		ID:        primitive.NewObjectID(),
		TakenAt:   s.now().UTC(),
		Dashboard: dash,
	}
	if err := s.stores.Snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		return models.DashboardSnapshot{}, apperr.Internal("save snapshot", err)
	}

	if s.exporter != nil {
		if err := s.exporter.ExportSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn("snapshot export failed", zap.String("snapshot_id", snapshot.ID.Hex()), zap.Error(err))
		}
	}

	return snapshot, nil
}

// ListSnapshots returns up to limit snapshots, newest first.
func (s *Service) ListSnapshots(ctx context.Context, limit int64) ([]models.DashboardSnapshot, error) {
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}
	snapshots, err := s.stores.Snapshots.LatestSnapshots(ctx, limit)
	if err != nil {
		return nil, apperr.Internal("list snapshots", err)
	}
	if snapshots == nil {
		snapshots = []models.DashboardSnapshot{}
	}
	return snapshots, nil
}

// farmer loads a non-admin account. Malformed ids read as unknown.
func (s *Service) farmer(ctx context.Context, id string) (models.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Account{}, apperr.NotFound(msgFarmerNotFound)
	}

	account, err := s.stores.Accounts.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Account{}, apperr.NotFound(msgFarmerNotFound)
		}
		return models.Account{}, apperr.Internal("load farmer", err)
	}

	if account.Role == models.RoleAdmin {
		return models.Account{}, apperr.Forbidden(msgAdminTarget)
	}
	return account, nil
}
