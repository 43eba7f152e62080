package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/fxavier/prime-properties-api/internal/adapters/storage"
	"github.com/fxavier/prime-properties-api/internal/property/repository"
	"github.com/fxavier/prime-properties-api/platform/apperr"

	"github.com/google/uuid"
)

// fakeRepo is an in-memory property store that enforces the same foreign key,
// uniqueness and single-cover rules as the schema.
type fakeRepo struct {
	mu            sync.Mutex
	clock         time.Time
	lookups       map[repository.LookupKind]map[uuid.UUID]repository.Lookup
	subTypes      map[uuid.UUID]repository.SubscriptionType
	properties    map[uuid.UUID]repository.Property
	images        []repository.PropertyImage
	subscriptions []repository.Subscription
	addImageErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		lookups: map[repository.LookupKind]map[uuid.UUID]repository.Lookup{
			repository.LookupPropertyType: {},
			repository.LookupCountry:      {},
			repository.LookupBusinessType: {},
		},
		subTypes:   map[uuid.UUID]repository.SubscriptionType{},
		properties: map[uuid.UUID]repository.Property{},
	}
}

// tick advances the fake clock so insertion order is observable.
func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) CreateLookup(_ context.Context, kind repository.LookupKind, value string) (repository.Lookup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lookups[kind] {
		if l.Value == value {
			return repository.Lookup{}, apperr.Conflict(kind.Label() + " already exists")
		}
	}
	l := repository.Lookup{ID: uuid.New(), Kind: kind, Value: value, CreatedAt: f.tick()}
	f.lookups[kind][l.ID] = l
	return l, nil
}

func (f *fakeRepo) GetLookup(_ context.Context, kind repository.LookupKind, id uuid.UUID) (repository.Lookup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lookups[kind][id]
	if !ok {
		return repository.Lookup{}, apperr.NotFound(kind.Label() + " not found")
	}
	return l, nil
}

func (f *fakeRepo) ListLookups(_ context.Context, kind repository.LookupKind) ([]repository.Lookup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]repository.Lookup, 0)
	for _, l := range f.lookups[kind] {
		items = append(items, l)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Value < items[j].Value })
	return items, nil
}

func (f *fakeRepo) DeleteLookup(_ context.Context, kind repository.LookupKind, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lookups[kind][id]; !ok {
		return apperr.NotFound(kind.Label() + " not found")
	}
	for _, p := range f.properties {
		if lookupRef(kind, p) == id {
			return apperr.Conflict(kind.Label() + " is in use")
		}
	}
	delete(f.lookups[kind], id)
	return nil
}

func lookupRef(kind repository.LookupKind, p repository.Property) uuid.UUID {
	switch kind {
	case repository.LookupPropertyType:
		return p.PropertyTypeID
	case repository.LookupCountry:
		return p.CountryID
	default:
		return p.BusinessTypeID
	}
}

func (f *fakeRepo) CreateSubscriptionType(_ context.Context, params repository.CreateSubscriptionTypeParams) (repository.SubscriptionType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := repository.SubscriptionType{
		ID:           uuid.New(),
		Type:         params.Type,
		Price:        params.Price,
		DurationDays: params.DurationDays,
		IsActive:     params.IsActive,
		CreatedAt:    f.tick(),
	}
	f.subTypes[st.ID] = st
	return st, nil
}

func (f *fakeRepo) GetSubscriptionType(_ context.Context, id uuid.UUID) (repository.SubscriptionType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.subTypes[id]
	if !ok {
		return repository.SubscriptionType{}, apperr.NotFound("subscription type not found")
	}
	return st, nil
}

func (f *fakeRepo) ListSubscriptionTypes(context.Context) ([]repository.SubscriptionType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]repository.SubscriptionType, 0)
	for _, st := range f.subTypes {
		items = append(items, st)
	}
	return items, nil
}

func (f *fakeRepo) checkRefs(typeID, countryID, businessID uuid.UUID) error {
	if _, ok := f.lookups[repository.LookupPropertyType][typeID]; !ok {
		return apperr.ForeignKey("property_type_id references a record that does not exist")
	}
	if _, ok := f.lookups[repository.LookupCountry][countryID]; !ok {
		return apperr.ForeignKey("country_id references a record that does not exist")
	}
	if _, ok := f.lookups[repository.LookupBusinessType][businessID]; !ok {
		return apperr.ForeignKey("business_type_id references a record that does not exist")
	}
	return nil
}

func (f *fakeRepo) CreateProperty(_ context.Context, params repository.CreatePropertyParams) (repository.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkRefs(params.PropertyTypeID, params.CountryID, params.BusinessTypeID); err != nil {
		return repository.Property{}, err
	}
	now := f.tick()
	facilities := params.Facilities
	if facilities == nil {
		facilities = map[string]interface{}{}
	}
	p := repository.Property{
		ID:             uuid.New(),
		Title:          params.Title,
		Description:    params.Description,
		Price:          params.Price,
		PropertyTypeID: params.PropertyTypeID,
		CountryID:      params.CountryID,
		BusinessTypeID: params.BusinessTypeID,
		City:           params.City,
		ZipCode:        params.ZipCode,
		Address:        params.Address,
		Latitude:       params.Latitude,
		Longitude:      params.Longitude,
		Facilities:     facilities,
		CreatedBy:      params.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
		IsActive:       params.IsActive,
		IsFeatured:     params.IsFeatured,
		IsPrioritized:  params.IsPrioritized,
	}
	f.properties[p.ID] = p
	return p, nil
}

func (f *fakeRepo) GetProperty(_ context.Context, id uuid.UUID) (repository.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[id]
	if !ok {
		return repository.Property{}, apperr.NotFound("property not found")
	}
	return p, nil
}

func (f *fakeRepo) UpdateProperty(_ context.Context, params repository.UpdatePropertyParams) (repository.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.properties[params.ID]
	if !ok {
		return repository.Property{}, apperr.NotFound("property not found")
	}
	if params.Title != nil {
		p.Title = *params.Title
	}
	if params.Price != nil {
		p.Price = *params.Price
	}
	if params.City != nil {
		p.City = *params.City
	}
	if params.CountryID != nil {
		p.CountryID = *params.CountryID
	}
	if params.Latitude != nil {
		p.Latitude = *params.Latitude
	}
	if params.Longitude != nil {
		p.Longitude = *params.Longitude
	}
	if err := f.checkRefs(p.PropertyTypeID, p.CountryID, p.BusinessTypeID); err != nil {
		return repository.Property{}, err
	}
	p.UpdatedAt = f.tick()
	f.properties[p.ID] = p
	return p, nil
}

func (f *fakeRepo) ListProperties(_ context.Context, filter repository.PropertyFilter) ([]repository.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]repository.Property, 0)
	for _, p := range f.properties {
		if filter.PropertyTypeID != nil && p.PropertyTypeID != *filter.PropertyTypeID {
			continue
		}
		if filter.BusinessTypeID != nil && p.BusinessTypeID != *filter.BusinessTypeID {
			continue
		}
		if filter.CreatedBy != nil && p.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.City != nil && p.City != *filter.City {
			continue
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (f *fakeRepo) AddImage(_ context.Context, params repository.CreateImageParams) (repository.PropertyImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addImageErr != nil {
		return repository.PropertyImage{}, f.addImageErr
	}
	if _, ok := f.properties[params.PropertyID]; !ok {
		return repository.PropertyImage{}, apperr.NotFound("property not found")
	}
	if params.IsCover {
		for i := range f.images {
			if f.images[i].PropertyID == params.PropertyID {
				f.images[i].IsCover = false
			}
		}
	}
	img := repository.PropertyImage{
		ID:         uuid.New(),
		PropertyID: params.PropertyID,
		ImageURL:   params.ImageURL,
		IsCover:    params.IsCover,
		CreatedAt:  f.tick(),
	}
	f.images = append(f.images, img)
	return img, nil
}

// insertImage bypasses AddImage to seed rows that predate the single-cover rule.
func (f *fakeRepo) insertImage(propertyID uuid.UUID, url string, isCover bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images = append(f.images, repository.PropertyImage{
		ID: uuid.New(), PropertyID: propertyID, ImageURL: url, IsCover: isCover, CreatedAt: f.tick(),
	})
}

func (f *fakeRepo) ListImages(_ context.Context, propertyIDs []uuid.UUID, coverOnly bool) ([]repository.PropertyImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(propertyIDs))
	for _, id := range propertyIDs {
		wanted[id] = true
	}
	// Reverse insertion order so the service has to sort.
	items := make([]repository.PropertyImage, 0)
	for i := len(f.images) - 1; i >= 0; i-- {
		img := f.images[i]
		if wanted[img.PropertyID] && (img.IsCover || !coverOnly) {
			items = append(items, img)
		}
	}
	return items, nil
}

func (f *fakeRepo) CreateSubscription(_ context.Context, params repository.CreateSubscriptionParams) (repository.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.subscriptions {
		if f.subscriptions[i].PropertyID == params.PropertyID {
			f.subscriptions[i].IsActive = false
		}
	}
	sub := repository.Subscription{
		ID:                 uuid.New(),
		UserID:             params.UserID,
		PropertyID:         params.PropertyID,
		SubscriptionTypeID: params.SubscriptionTypeID,
		StartDate:          params.StartDate,
		EndDate:            params.EndDate,
		IsActive:           true,
		CreatedAt:          f.tick(),
	}
	f.subscriptions = append(f.subscriptions, sub)
	return sub, nil
}

func (f *fakeRepo) LatestSubscriptions(_ context.Context, propertyIDs []uuid.UUID) (map[uuid.UUID]repository.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[uuid.UUID]repository.Subscription)
	for _, id := range propertyIDs {
		for _, sub := range f.subscriptions {
			if sub.PropertyID != id {
				continue
			}
			if cur, ok := result[id]; !ok || sub.StartDate.After(cur.StartDate) {
				result[id] = sub
			}
		}
	}
	return result, nil
}

func (f *fakeRepo) imageCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.images)
}

func (f *fakeRepo) propertyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.properties)
}

type fakeUploader struct {
	mu       sync.Mutex
	err      error
	block    bool
	uploads  []storage.UploadInput
	bodies   [][]byte
	deleted  []string
	maxBytes int64
}

func (u *fakeUploader) Upload(ctx context.Context, in storage.UploadInput) (storage.Object, error) {
	if u.block {
		<-ctx.Done()
		return storage.Object{}, errors.Join(storage.ErrTransient, ctx.Err())
	}
	if u.err != nil {
		return storage.Object{}, u.err
	}
	body, err := io.ReadAll(in.Reader)
	if err != nil {
		return storage.Object{}, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.uploads = append(u.uploads, in)
	u.bodies = append(u.bodies, body)
	key := in.Folder + "/" + in.FileName
	return storage.Object{Key: key, URL: "https://cdn.example.com/property-images/" + key}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) MaxFileSize() int64 {
	if u.maxBytes == 0 {
		return 1 << 20
	}
	return u.maxBytes
}
