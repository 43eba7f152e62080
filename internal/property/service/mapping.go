package service

import (
	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/internal/property/transport"
)

func toLookupResponse(l repository.Lookup) transport.LookupResponse {
	resp := transport.LookupResponse{ID: l.ID.String(), CreatedAt: l.CreatedAt}
	if l.Kind == repository.LookupCountry {
		resp.Name = l.Value
	} else {
		resp.Type = l.Value
	}
	return resp
}

func toSubscriptionTypeResponse(st repository.SubscriptionType) transport.SubscriptionTypeResponse {
	return transport.SubscriptionTypeResponse{
		ID:           st.ID.String(),
		Type:         st.Type,
		Price:        st.Price,
		DurationDays: st.DurationDays,
		IsActive:     st.IsActive,
		CreatedAt:    st.CreatedAt,
	}
}

func toPropertyResponse(p repository.Property) transport.PropertyResponse {
	facilities := p.Facilities
	if facilities == nil {
		facilities = map[string]interface{}{}
	}
	return transport.PropertyResponse{
		ID:             p.ID.String(),
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		PropertyTypeID: p.PropertyTypeID.String(),
		CountryID:      p.CountryID.String(),
		BusinessTypeID: p.BusinessTypeID.String(),
		City:           p.City,
		ZipCode:        p.ZipCode,
		Address:        p.Address,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Facilities:     facilities,
		CreatedBy:      p.CreatedBy.String(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		IsActive:       p.IsActive,
		IsFeatured:     p.IsFeatured,
		IsPrioritized:  p.IsPrioritized,
	}
}

func toPropertySummary(p repository.Property) transport.PropertySummary {
	return transport.PropertySummary{
		ID:             p.ID.String(),
		Title:          p.Title,
		Price:          p.Price,
		City:           p.City,
		Address:        p.Address,
		PropertyTypeID: p.PropertyTypeID.String(),
		CountryID:      p.CountryID.String(),
		BusinessTypeID: p.BusinessTypeID.String(),
		IsFeatured:     p.IsFeatured,
		IsPrioritized:  p.IsPrioritized,
		CreatedAt:      p.CreatedAt,
	}
}

func toImageResponse(img repository.PropertyImage) transport.ImageResponse {
	return transport.ImageResponse{
		ID:         img.ID.String(),
		PropertyID: img.PropertyID.String(),
		ImageURL:   img.ImageURL,
		IsCover:    img.IsCover,
		CreatedAt:  img.CreatedAt,
	}
}

func toSubscriptionResponse(sub repository.Subscription) transport.SubscriptionResponse {
	return transport.SubscriptionResponse{
		ID:                 sub.ID.String(),
		UserID:             sub.UserID.String(),
		PropertyID:         sub.PropertyID.String(),
		SubscriptionTypeID: sub.SubscriptionTypeID.String(),
		StartDate:          sub.StartDate,
		EndDate:            sub.EndDate,
		IsActive:           sub.IsActive,
	}
}
