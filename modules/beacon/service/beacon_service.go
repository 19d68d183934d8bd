package service

import (
	"context"
	"strings"
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/modules/beacon/dto"
	"beacon-attendance/modules/beacon/entity"
	"beacon-attendance/modules/beacon/repository"
)

type BeaconServiceInterface interface {
	Lookup(ctx context.Context, id string) (*entity.Beacon, *errors.AppError)
	List(ctx context.Context) ([]*dto.BeaconResponse, *errors.AppError)
	Get(ctx context.Context, id string) (*dto.BeaconResponse, *errors.AppError)
	Create(ctx context.Context, req *dto.CreateBeaconRequest) (*dto.BeaconResponse, *errors.AppError)
	Update(ctx context.Context, id string, req *dto.UpdateBeaconRequest) (*dto.BeaconResponse, *errors.AppError)
	Delete(ctx context.Context, id string) *errors.AppError
}

type BeaconService struct {
	repo repository.BeaconRepositoryInterface
	loc  *time.Location
}

func NewBeaconService(repo repository.BeaconRepositoryInterface, loc *time.Location) *BeaconService {
	if loc == nil {
		loc = time.UTC
	}
	return &BeaconService{repo: repo, loc: loc}
}

// Lookup resolves a beacon id to its registry entry.
func (s *BeaconService) Lookup(ctx context.Context, id string) (*entity.Beacon, *errors.AppError) {
	beacon, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to get beacon", err)
	}
	if beacon == nil {
		return nil, errors.New(errors.ErrBeaconNotFound, "beacon %q not found", id)
	}
	return beacon, nil
}

func (s *BeaconService) List(ctx context.Context) ([]*dto.BeaconResponse, *errors.AppError) {
	beacons, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "failed to list beacons", err)
	}
	return dto.ToBeaconResponses(beacons, s.loc), nil
}

func (s *BeaconService) Get(ctx context.Context, id string) (*dto.BeaconResponse, *errors.AppError) {
	beacon, appErr := s.Lookup(ctx, id)
	if appErr != nil {
		return nil, appErr
	}
	return dto.ToBeaconResponse(beacon, s.loc), nil
}

func (s *BeaconService) Create(ctx context.Context, req *dto.CreateBeaconRequest) (*dto.BeaconResponse, *errors.AppError) {
	beacon := &entity.Beacon{
		ID:       strings.TrimSpace(req.ID),
		Major:    req.Major,
		Minor:    req.Minor,
		Location: strings.TrimSpace(req.Location),
		Name:     req.Name,
	}
	if err := s.repo.Create(ctx, beacon); err != nil {
		if database.IsUniqueViolation(err, database.ConstraintBeaconsPkey) {
			return nil, errors.New(errors.ErrAlreadyExists, "beacon %q already exists", beacon.ID)
		}
		logger.Error("BeaconService:Create", err)
		return nil, errors.NewAppError(errors.ErrCreateFailed, "failed to create beacon", err)
	}
	return dto.ToBeaconResponse(beacon, s.loc), nil
}

func (s *BeaconService) Update(ctx context.Context, id string, req *dto.UpdateBeaconRequest) (*dto.BeaconResponse, *errors.AppError) {
	beacon, appErr := s.Lookup(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	if req.Major != nil {
		beacon.Major = *req.Major
	}
	if req.Minor != nil {
		beacon.Minor = *req.Minor
	}
	if req.Location != nil {
		location := strings.TrimSpace(*req.Location)
		if location == "" {
			return nil, errors.New(errors.ErrInvalidInput, "location must not be empty")
		}
		beacon.Location = location
	}
	if req.Name != nil {
		beacon.Name = req.Name
	}

	ok, err := s.repo.Update(ctx, beacon)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUpdateFailed, "failed to update beacon", err)
	}
	if !ok {
		return nil, errors.New(errors.ErrBeaconNotFound, "beacon %q not found", id)
	}
	return dto.ToBeaconResponse(beacon, s.loc), nil
}

// Delete removes a beacon. Meetings bound to it keep existing with no beacon.
func (s *BeaconService) Delete(ctx context.Context, id string) *errors.AppError {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return errors.NewAppError(errors.ErrDeleteFailed, "failed to delete beacon", err)
	}
	if !ok {
		return errors.New(errors.ErrBeaconNotFound, "beacon %q not found", id)
	}
	return nil
}
