package repository

import (
	"context"
	"database/sql"
	stderrors "errors"

	"beacon-attendance/core/database"
	"beacon-attendance/core/logger"
	"beacon-attendance/modules/beacon/entity"
)

type BeaconRepository struct {
	DB database.Database
}

func NewBeaconRepository(db database.Database) *BeaconRepository {
	return &BeaconRepository{DB: db}
}

type BeaconRepositoryInterface interface {
	List(ctx context.Context) ([]entity.Beacon, error)
	GetByID(ctx context.Context, id string) (*entity.Beacon, error)
	Create(ctx context.Context, beacon *entity.Beacon) error
	Update(ctx context.Context, beacon *entity.Beacon) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

const beaconColumns = `id, major, minor, location, name, last_used, created_at`

func (r *BeaconRepository) List(ctx context.Context) ([]entity.Beacon, error) {
	beacons := []entity.Beacon{}
	query := `SELECT ` + beaconColumns + ` FROM beacons ORDER BY location, id`
	if err := r.DB.SelectContext(ctx, &beacons, query); err != nil {
		logger.Error("BeaconRepository:List", err)
		return nil, err
	}
	return beacons, nil
}

func (r *BeaconRepository) GetByID(ctx context.Context, id string) (*entity.Beacon, error) {
	var beacon entity.Beacon
	query := `SELECT ` + beaconColumns + ` FROM beacons WHERE id = $1`
	if err := r.DB.GetContext(ctx, &beacon, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("BeaconRepository:GetByID", err)
		return nil, err
	}
	return &beacon, nil
}

func (r *BeaconRepository) Create(ctx context.Context, beacon *entity.Beacon) error {
	query := `
		INSERT INTO beacons (id, major, minor, location, name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.DB.GetContext(ctx, &beacon.CreatedAt, query,
		beacon.ID, beacon.Major, beacon.Minor, beacon.Location, beacon.Name)
	if err != nil {
		logger.Error("BeaconRepository:Create", err)
		return err
	}
	return nil
}

// Update overwrites the mutable fields and stamps last_used.
func (r *BeaconRepository) Update(ctx context.Context, beacon *entity.Beacon) (bool, error) {
	query := `
		UPDATE beacons
		SET major = $2, minor = $3, location = $4, name = $5, last_used = now()
		WHERE id = $1
		RETURNING last_used
	`
	err := r.DB.GetContext(ctx, &beacon.LastUsed, query,
		beacon.ID, beacon.Major, beacon.Minor, beacon.Location, beacon.Name)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error("BeaconRepository:Update", err)
		return false, err
	}
	return true, nil
}

func (r *BeaconRepository) Delete(ctx context.Context, id string) (bool, error) {
	var deleted string
	err := r.DB.GetContext(ctx, &deleted, `DELETE FROM beacons WHERE id = $1 RETURNING id`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error("BeaconRepository:Delete", err)
		return false, err
	}
	return true, nil
}
