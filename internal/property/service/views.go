package service

import (
	"context"
	"slices"

	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/transport"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ListWithCoverImages returns one summary per property that has a cover
// image. Properties without a cover are left out.
func (s *Service) ListWithCoverImages(ctx context.Context) ([]transport.PropertyWithCoverResponse, error) {
	props, err := s.repo.ListProperties(ctx, repository.PropertyFilter{})
	if err != nil {
		return nil, err
	}

	covers, err := s.coverURLs(ctx, propertyIDs(props))
	if err != nil {
		return nil, err
	}

	result := make([]transport.PropertyWithCoverResponse, 0, len(props))
	for _, p := range props {
		url, ok := covers[p.ID]
		if !ok {
			continue
		}
		result = append(result, transport.PropertyWithCoverResponse{
			PropertySummary: toPropertySummary(p),
			CoverImageURL:   url,
		})
	}
	return result, nil
}

// GetDetail returns a property with all of its images and the names of its
// property type, country and business type.
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (transport.PropertyDetailResponse, error) {
	p, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return transport.PropertyDetailResponse{}, err
	}

	var (
		images                              []repository.PropertyImage
		propertyType, country, businessType repository.Lookup
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		images, err = s.repo.ListImages(gctx, []uuid.UUID{p.ID}, false)
		return err
	})
	g.Go(func() error {
		var err error
		propertyType, err = s.repo.GetLookup(gctx, repository.LookupPropertyType, p.PropertyTypeID)
		return err
	})
	g.Go(func() error {
		var err error
		country, err = s.repo.GetLookup(gctx, repository.LookupCountry, p.CountryID)
		return err
	})
	g.Go(func() error {
		var err error
		businessType, err = s.repo.GetLookup(gctx, repository.LookupBusinessType, p.BusinessTypeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.PropertyDetailResponse{}, err
	}

	sortImages(images)
	imageResponses := make([]transport.ImageResponse, 0, len(images))
	for _, img := range images {
		imageResponses = append(imageResponses, toImageResponse(img))
	}

	return transport.PropertyDetailResponse{
		PropertyResponse: toPropertyResponse(p),
		PropertyType:     propertyType.Value,
		Country:          country.Value,
		BusinessType:     businessType.Value,
		Images:           imageResponses,
	}, nil
}

// ListWithSubscriptions returns every property with its most recent
// subscription and cover image. Either may be null.
func (s *Service) ListWithSubscriptions(ctx context.Context) ([]transport.PropertyWithSubscriptionResponse, error) {
	props, err := s.repo.ListProperties(ctx, repository.PropertyFilter{})
	if err != nil {
		return nil, err
	}
	ids := propertyIDs(props)

	var (
		covers map[uuid.UUID]string
		subs   map[uuid.UUID]repository.Subscription
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		covers, err = s.coverURLs(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		subs, err = s.repo.LatestSubscriptions(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]transport.PropertyWithSubscriptionResponse, 0, len(props))
	for _, p := range props {
		item := transport.PropertyWithSubscriptionResponse{PropertySummary: toPropertySummary(p)}
		if url, ok := covers[p.ID]; ok {
			item.CoverImageURL = &url
		}
		if sub, ok := subs[p.ID]; ok {
			typeID := sub.SubscriptionTypeID.String()
			start, end := sub.StartDate, sub.EndDate
			item.SubscriptionTypeID = &typeID
			item.StartDate = &start
			item.EndDate = &end
		}
		result = append(result, item)
	}
	return result, nil
}

// coverURLs maps each property to its cover image URL. When legacy data holds
// several covers the earliest one wins.
func (s *Service) coverURLs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	images, err := s.repo.ListImages(ctx, ids, true)
	if err != nil {
		return nil, err
	}
	sortImages(images)

	covers := make(map[uuid.UUID]string, len(images))
	for _, img := range images {
		if !img.IsCover {
			continue
		}
		if _, seen := covers[img.PropertyID]; !seen {
			covers[img.PropertyID] = img.ImageURL
		}
	}
	return covers, nil
}

// sortImages orders cover images first, then by insertion time.
func sortImages(images []repository.PropertyImage) {
	slices.SortStableFunc(images, func(a, b repository.PropertyImage) int {
		if a.IsCover != b.IsCover {
			if a.IsCover {
				return -1
			}
			return 1
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

func propertyIDs(props []repository.Property) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.ID)
	}
	return ids
}
