package listings

import (
	"context"

	"wheelhouse/internal/listing"
)

// Store captures the persistence needs for listing workflows.
type Store interface {
	SearchListings(ctx context.Context, f listing.Filter) ([]listing.Row, listing.Page, error)
	SearchListingsInBounds(ctx context.Context, f listing.Filter, g listing.GeoQuery) ([]listing.Row, error)
	ListingByID(ctx context.Context, id int64) (listing.Row, error)
	CreateListing(ctx context.Context, hostID int64, cols listing.Columns) (listing.Row, error)
	UpdateListing(ctx context.Context, id, hostID int64, cols listing.Columns) (listing.Row, error)
	PublishListing(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error)
	SoftDeleteListing(ctx context.Context, id, hostID int64) error
}

// Service coordinates listing-related operations.
type Service interface {
	Search(ctx context.Context, params listing.Params) ([]listing.Row, listing.Page, error)
	SearchInBounds(ctx context.Context, params listing.Params) ([]listing.Row, error)
	Get(ctx context.Context, id int64) (listing.Row, error)
	Create(ctx context.Context, hostID int64, payload listing.Payload) (listing.Row, error)
	HostCreate(ctx context.Context, hostID int64, payload listing.Payload) (listing.Row, error)
	Update(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error)
	Publish(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error)
	Delete(ctx context.Context, id, hostID int64) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Search(ctx context.Context, params listing.Params) ([]listing.Row, listing.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, listing.Page{}, err
	}
	return s.store.SearchListings(ctx, listing.ParseFilter(params))
}

func (s *service) SearchInBounds(ctx context.Context, params listing.Params) ([]listing.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	geo, err := listing.ParseBounds(params)
	if err != nil {
		return nil, err
	}
	return s.store.SearchListingsInBounds(ctx, listing.ParseFilter(params), geo)
}

func (s *service) Get(ctx context.Context, id int64) (listing.Row, error) {
	if err := ctx.Err(); err != nil {
		return listing.Row{}, err
	}
	return s.store.ListingByID(ctx, id)
}

func (s *service) Create(ctx context.Context, hostID int64, payload listing.Payload) (listing.Row, error) {
	if err := ctx.Err(); err != nil {
		return listing.Row{}, err
	}
	cols, err := listing.ReconcileForCreate(payload)
	if err != nil {
		return listing.Row{}, err
	}
	return s.store.CreateListing(ctx, hostID, cols)
}

func (s *service) HostCreate(ctx context.Context, hostID int64, payload listing.Payload) (listing.Row, error) {
	if err := ctx.Err(); err != nil {
		return listing.Row{}, err
	}
	cols, err := listing.ReconcileForHostCreate(payload)
	if err != nil {
		return listing.Row{}, err
	}
	return s.store.CreateListing(ctx, hostID, cols)
}

func (s *service) Update(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error) {
	if err := ctx.Err(); err != nil {
		return listing.Row{}, err
	}
	cols, err := listing.ReconcileForUpdate(payload)
	if err != nil {
		return listing.Row{}, err
	}
	return s.store.UpdateListing(ctx, id, hostID, cols)
}

func (s *service) Publish(ctx context.Context, id, hostID int64, payload listing.Payload) (listing.Row, error) {
	if err := ctx.Err(); err != nil {
		return listing.Row{}, err
	}
	return s.store.PublishListing(ctx, id, hostID, payload)
}

func (s *service) Delete(ctx context.Context, id, hostID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.SoftDeleteListing(ctx, id, hostID)
}
