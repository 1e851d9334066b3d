package service

import (
	"context"
	"time"

	"github.com/kjh/spacebook/internal/model"
	"github.com/kjh/spacebook/internal/repository"
)

// SpaceInput carries the admin-supplied fields for creating or
// updating a space listing.
type SpaceInput struct {
	Name         string
	Description  string
	ImageURL     string
	SpaceType    string
	PricePerHour int
	Location     string
	Capacity     int
	SpaceStatus  string
}

// SpaceService manages the catalog: admin CRUD on listings plus the
// public search and detail views. It works on the concrete repository
// because nearly every method is a thin pass-through.
type SpaceService struct {
	spaces *repository.SpaceRepo
}

func NewSpaceService(spaces *repository.SpaceRepo) *SpaceService {
	return &SpaceService{spaces: spaces}
}

// Create registers a new listing owned by the calling admin. New
// spaces always start OPEN.
func (s *SpaceService) Create(ctx context.Context, ownerID uint64, in SpaceInput) (model.Space, error) {
	if !model.ValidSpaceType(in.SpaceType) || in.PricePerHour < 0 || in.Capacity < 1 {
		return model.Space{}, repository.ErrInvalidSpaceInput
	}
	id, err := s.spaces.Create(ctx, model.Space{
		Name:         in.Name,
		Description:  in.Description,
		ImageURL:     in.ImageURL,
		SpaceType:    in.SpaceType,
		PricePerHour: in.PricePerHour,
		Location:     in.Location,
		Capacity:     in.Capacity,
		OwnerID:      ownerID,
	})
	if err != nil {
		return model.Space{}, err
	}
	return s.spaces.GetByID(ctx, id)
}

// Update replaces the mutable fields of a listing the caller owns.
// Price changes only affect future bookings; existing reservations
// keep the total they were priced at.
func (s *SpaceService) Update(ctx context.Context, ownerID, spaceID uint64, in SpaceInput) (model.Space, error) {
	if !model.ValidSpaceType(in.SpaceType) || in.PricePerHour < 0 || in.Capacity < 1 {
		return model.Space{}, repository.ErrInvalidSpaceInput
	}
	if in.SpaceStatus != model.SpaceStatusOpen && in.SpaceStatus != model.SpaceStatusClosed {
		return model.Space{}, repository.ErrInvalidSpaceInput
	}
	cur, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return model.Space{}, err
	}
	if cur.OwnerID != ownerID {
		return model.Space{}, repository.ErrNotOwner
	}
	cur.Name = in.Name
	cur.Description = in.Description
	cur.ImageURL = in.ImageURL
	cur.SpaceType = in.SpaceType
	cur.PricePerHour = in.PricePerHour
	cur.Location = in.Location
	cur.Capacity = in.Capacity
	cur.SpaceStatus = in.SpaceStatus
	if err := s.spaces.Update(ctx, cur); err != nil {
		return model.Space{}, err
	}
	return s.spaces.GetByID(ctx, spaceID)
}

// Delete soft-deletes a listing the caller owns. Existing
// reservations keep their space reference.
func (s *SpaceService) Delete(ctx context.Context, ownerID, spaceID uint64) error {
	cur, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		return err
	}
	if cur.OwnerID != ownerID {
		return repository.ErrNotOwner
	}
	return s.spaces.SoftDelete(ctx, spaceID, time.Now().UTC())
}

// Detail returns a single public listing. Only OPEN, non-deleted
// spaces are visible here; a CLOSED space reads as not found.
func (s *SpaceService) Detail(ctx context.Context, spaceID uint64) (model.Space, error) {
	return s.spaces.GetOpenByID(ctx, spaceID)
}

// Search pages through OPEN listings matching the filter. A price
// range with min above max is rejected rather than silently matching
// nothing.
func (s *SpaceService) Search(ctx context.Context, f repository.SearchFilter, page, size int) ([]model.Space, int, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, 0, repository.ErrInvalidPriceRange
	}
	if f.SpaceType != nil && *f.SpaceType != "" && !model.ValidSpaceType(*f.SpaceType) {
		return nil, 0, repository.ErrInvalidSpaceInput
	}
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return s.spaces.Search(ctx, f, size, (page-1)*size)
}

// MySpaces pages through the admin's own non-deleted listings,
// open and closed alike.
func (s *SpaceService) MySpaces(ctx context.Context, ownerID uint64, page, size int) ([]model.Space, int, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}
	return s.spaces.ListByOwner(ctx, ownerID, size, (page-1)*size)
}
