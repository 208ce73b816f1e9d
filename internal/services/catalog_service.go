package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gotravel/gotravel-backend/internal/cache"
	"github.com/gotravel/gotravel-backend/internal/models"
)

const (
	cacheKeyDestinations = "catalog:destinations"
	cacheKeyPackages     = "catalog:packages:" // + destination id
	cacheKeyAddOns       = "catalog:addons:"   // + destination id
)

// CatalogStore is the persistence surface for the public catalog.
type CatalogStore interface {
	Create(input *models.DestinationInput) (*models.Destination, error)
	Update(id string, input *models.DestinationInput) (*models.Destination, error)
	GetByID(id string) (*models.Destination, error)
	GetBySlug(slug string) (*models.Destination, error)
	ListActive() ([]models.Destination, error)
}

// PackageCatalogStore extends package lookups with catalog listings and writes.
type PackageCatalogStore interface {
	Create(input *models.PackageInput) (*models.TravelPackage, error)
	Update(id string, input *models.PackageInput) (*models.TravelPackage, error)
	GetByID(id string) (*models.TravelPackage, error)
	ListByDestination(destinationID string) ([]models.TravelPackage, error)
	ListActive() ([]models.TravelPackage, error)
}

// AddOnCatalogStore provides add-on catalog listings.
type AddOnCatalogStore interface {
	GetByID(id string) (*models.FITAddOn, error)
	ListByDestination(destinationID string) ([]models.FITAddOn, error)
}

// CatalogService serves the public browse surface with a read-through cache
// in front of the hot listing queries. Writes go straight to the database and
// invalidate the affected keys.
type CatalogService struct {
	destinations CatalogStore
	packages     PackageCatalogStore
	addons       AddOnCatalogStore
	cache        *cache.Cache
	logger       *logrus.Logger
}

// NewCatalogService creates a new CatalogService. The cache may be nil; all
// reads then go to the database.
func NewCatalogService(
	destinations CatalogStore,
	packages PackageCatalogStore,
	addons AddOnCatalogStore,
	c *cache.Cache,
	logger *logrus.Logger,
) *CatalogService {
	return &CatalogService{
		destinations: destinations,
		packages:     packages,
		addons:       addons,
		cache:        c,
		logger:       logger,
	}
}

// ListDestinations retrieves all active destinations, featured first
func (s *CatalogService) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	if s.cache != nil {
		var cached []models.Destination
		if err := s.cache.Get(ctx, cacheKeyDestinations, &cached); err == nil {
			return cached, nil
		}
	}

	destinations, err := s.destinations.ListActive()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKeyDestinations, destinations)
	}

	return destinations, nil
}

// GetDestination retrieves a destination by ID
func (s *CatalogService) GetDestination(id string) (*models.Destination, error) {
	return s.destinations.GetByID(id)
}

// GetDestinationBySlug retrieves a destination by its URL slug
func (s *CatalogService) GetDestinationBySlug(slug string) (*models.Destination, error) {
	return s.destinations.GetBySlug(slug)
}

// CreateDestination creates a destination (admin) and invalidates the listing
func (s *CatalogService) CreateDestination(ctx context.Context, input *models.DestinationInput) (*models.Destination, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	destination, err := s.destinations.Create(input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyDestinations)
	s.logger.WithFields(logrus.Fields{
		"destination_id": destination.ID,
		"slug":           destination.Slug,
	}).Info("Destination created")

	return destination, nil
}

// UpdateDestination updates a destination (admin) and invalidates the listing
func (s *CatalogService) UpdateDestination(ctx context.Context, id string, input *models.DestinationInput) (*models.Destination, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	destination, err := s.destinations.Update(id, input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyDestinations, cacheKeyPackages+id, cacheKeyAddOns+id)

	return destination, nil
}

// ListPackages retrieves active packages for a destination
func (s *CatalogService) ListPackages(ctx context.Context, destinationID string) ([]models.TravelPackage, error) {
	key := cacheKeyPackages + destinationID

	if s.cache != nil {
		var cached []models.TravelPackage
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	packages, err := s.packages.ListByDestination(destinationID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, packages)
	}

	return packages, nil
}

// ListAllPackages retrieves every active package
func (s *CatalogService) ListAllPackages() ([]models.TravelPackage, error) {
	return s.packages.ListActive()
}

// GetPackage retrieves a package by ID
func (s *CatalogService) GetPackage(id string) (*models.TravelPackage, error) {
	return s.packages.GetByID(id)
}

// CreatePackage creates a package (admin) and invalidates the destination's listing
func (s *CatalogService) CreatePackage(ctx context.Context, input *models.PackageInput) (*models.TravelPackage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.packages.Create(input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyPackages+pkg.DestinationID)
	s.logger.WithFields(logrus.Fields{
		"package_id":     pkg.ID,
		"destination_id": pkg.DestinationID,
	}).Info("Package created")

	return pkg, nil
}

// UpdatePackage updates a package (admin) and invalidates the destination's listing
func (s *CatalogService) UpdatePackage(ctx context.Context, id string, input *models.PackageInput) (*models.TravelPackage, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	pkg, err := s.packages.Update(id, input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cacheKeyPackages+pkg.DestinationID)

	return pkg, nil
}

// ListAddOns retrieves available add-ons for a destination
func (s *CatalogService) ListAddOns(ctx context.Context, destinationID string) ([]models.FITAddOn, error) {
	key := cacheKeyAddOns + destinationID

	if s.cache != nil {
		var cached []models.FITAddOn
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	addons, err := s.addons.ListByDestination(destinationID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, addons)
	}

	return addons, nil
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, keys...)
	}
}
