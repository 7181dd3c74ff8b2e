package services_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"calendarvault/internal/gateway/app/dto"
	"calendarvault/internal/gateway/app/services"
	"calendarvault/internal/gateway/domain/entities"
	"calendarvault/internal/gateway/ports/cache"
	portservices "calendarvault/internal/gateway/ports/services"
	"calendarvault/internal/gateway/resilience"
	calendarv1 "calendarvault/pkg/api/calendar/v1"
)

const (
	calendarID = "0123456789abcdef0123456789ABCDEF"
	ownerID    = "user-1"
)

var (
	errDatabase = errors.New("database is down")
	errRedis    = errors.New("redis is down")
	fixedIV     = []byte("abcdefghijkl")
	fixedNow    = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

type ivReader struct{}

func (ivReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = fixedIV[i%len(fixedIV)]
	}
	return len(p), nil
}

type mockCalendarClient struct {
	mock.Mock
}

func (m *mockCalendarClient) CreateCalendar(ctx context.Context, req *calendarv1.CreateCalendarRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *mockCalendarClient) GetCalendar(ctx context.Context, id string, iv []byte) ([]byte, error) {
	args := m.Called(ctx, id, iv)
	if body := args.Get(0); body != nil {
		return body.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCalendarClient) Close() error {
	return m.Called().Error(0)
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*entities.Calendar, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*entities.Calendar), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) Upsert(ctx context.Context, c *entities.Calendar) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetIV(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if iv := args.Get(0); iv != nil {
		return iv.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCache) SetIV(ctx context.Context, id string, iv []byte) error {
	return m.Called(ctx, id, iv).Error(0)
}

func (m *mockCache) DeleteIV(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

type fixture struct {
	client *mockCalendarClient
	repo   *mockRepository
	cache  *mockCache
}

func newFixture(t *testing.T, breaker resilience.CircuitBreakerConfig) (*fixture, func() *services.CalendarServiceImpl) {
	t.Helper()
	f := &fixture{client: &mockCalendarClient{}, repo: &mockRepository{}, cache: &mockCache{}}
	t.Cleanup(func() {
		f.client.AssertExpectations(t)
		f.repo.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})
	return f, func() *services.CalendarServiceImpl {
		svc := services.NewCalendarService(f.client, f.repo, f.cache, breaker,
			services.WithRandom(ivReader{}),
			services.WithClock(func() time.Time { return fixedNow }))
		return svc.(*services.CalendarServiceImpl)
	}
}

func defaultBreaker() resilience.CircuitBreakerConfig {
	return resilience.DefaultCircuitBreakerConfig()
}

func publishRequest() *dto.PublishCalendarRequest {
	date := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	expires := date.Add(30 * 24 * time.Hour)
	return &dto.PublishCalendarRequest{
		Timezone: "Asia/Tbilisi",
		Entities: []dto.CalendarEntity{{
			DocumentID:       "doc-1",
			NotificationID:   "n-1",
			DocumentTitle:    "Passport",
			NotificationDate: &date,
			ExpiresAt:        &expires,
		}},
	}
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("new calendar", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		req := publishRequest()

		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
		f.repo.On("Upsert", ctx, &entities.Calendar{
			ID: calendarID, UserID: ownerID, IV: fixedIV, Timezone: "Asia/Tbilisi", UpdatedAt: fixedNow,
		}).Return(nil)
		f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
		f.client.On("CreateCalendar", ctx, mock.MatchedBy(func(r *calendarv1.CreateCalendarRequest) bool {
			return r.CalendarID == calendarID &&
				bytes.Equal(r.CalendarIV, fixedIV) &&
				r.Timezone == "Asia/Tbilisi" &&
				len(r.CalendarEntities) == 1 &&
				r.CalendarEntities[0].DocumentTitle == "Passport" &&
				r.CalendarEntities[0].NotificationDate.AsTime().Equal(*req.Entities[0].NotificationDate) &&
				r.CalendarEntities[0].ExpiresAt != nil
		})).Return(nil)
		f.cache.On("SetIV", ctx, calendarID, fixedIV).Return(nil)

		resp, err := build().Publish(ctx, ownerID, calendarID, req)
		require.NoError(t, err)
		assert.Equal(t, calendarID, resp.CalendarID)
		assert.Equal(t, fixedNow, resp.UpdatedAt)
		assert.Equal(t, "/api/v1/calendars/"+calendarID+"/ics", resp.ICSPath)
	})

	t.Run("registry is written before the document", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		var order []string

		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
		f.repo.On("Upsert", ctx, mock.Anything).Run(func(mock.Arguments) { order = append(order, "registry") }).Return(nil)
		f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
		f.client.On("CreateCalendar", ctx, mock.Anything).Run(func(mock.Arguments) { order = append(order, "document") }).Return(nil)
		f.cache.On("SetIV", ctx, calendarID, fixedIV).Return(nil)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.NoError(t, err)
		assert.Equal(t, []string{"registry", "document"}, order)
	})

	t.Run("republish by owner", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())

		f.repo.On("FindByID", ctx, calendarID).Return(&entities.Calendar{ID: calendarID, UserID: ownerID, IV: []byte("oldoldoldold")}, nil)
		f.repo.On("Upsert", ctx, mock.MatchedBy(func(c *entities.Calendar) bool {
			return bytes.Equal(c.IV, fixedIV)
		})).Return(nil)
		f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
		f.client.On("CreateCalendar", ctx, mock.Anything).Return(nil)
		f.cache.On("SetIV", ctx, calendarID, fixedIV).Return(nil)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.NoError(t, err)
	})

	t.Run("foreign calendar", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(&entities.Calendar{ID: calendarID, UserID: "intruder"}, nil)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrCalendarForbidden)
		f.client.AssertNotCalled(t, "CreateCalendar", mock.Anything, mock.Anything)
	})

	t.Run("lost race for a new id", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
		f.repo.On("Upsert", ctx, mock.Anything).Return(entities.ErrCalendarForbidden)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrCalendarForbidden)
		f.client.AssertNotCalled(t, "CreateCalendar", mock.Anything, mock.Anything)
	})

	t.Run("invalid id", func(t *testing.T) {
		_, build := newFixture(t, defaultBreaker())
		_, err := build().Publish(ctx, ownerID, "../etc/passwd", publishRequest())
		require.ErrorIs(t, err, entities.ErrInvalidCalendarID)
	})

	t.Run("missing user", func(t *testing.T) {
		_, build := newFixture(t, defaultBreaker())
		_, err := build().Publish(ctx, "", calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrUnauthorized)
	})

	t.Run("missing timezone", func(t *testing.T) {
		_, build := newFixture(t, defaultBreaker())
		req := publishRequest()
		req.Timezone = ""
		_, err := build().Publish(ctx, ownerID, calendarID, req)
		require.ErrorIs(t, err, entities.ErrInvalidRequest)
	})

	t.Run("missing notification date", func(t *testing.T) {
		_, build := newFixture(t, defaultBreaker())
		req := publishRequest()
		req.Entities[0].NotificationDate = nil
		_, err := build().Publish(ctx, ownerID, calendarID, req)
		require.ErrorIs(t, err, entities.ErrInvalidRequest)
	})

	t.Run("registry lookup failure", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(nil, errDatabase)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, errDatabase)
	})

	t.Run("random source failure", func(t *testing.T) {
		f, _ := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)

		svc := services.NewCalendarService(f.client, f.repo, f.cache, defaultBreaker(),
			services.WithRandom(bytes.NewReader([]byte("short"))))
		_, err := svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), services.ErrorGenerateIV)
	})

	t.Run("rejected new calendar is removed from registry", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
		f.repo.On("Upsert", ctx, mock.Anything).Return(nil)
		f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
		f.client.On("CreateCalendar", ctx, mock.Anything).Return(status.Error(codes.InvalidArgument, "unknown time zone"))
		f.repo.On("Delete", ctx, calendarID, ownerID).Return(nil)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrInvalidRequest)
	})

	t.Run("rejected republish restores previous iv", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		previous := &entities.Calendar{ID: calendarID, UserID: ownerID, IV: []byte("oldoldoldold"), Timezone: "UTC"}

		f.repo.On("FindByID", ctx, calendarID).Return(previous, nil)
		f.repo.On("Upsert", ctx, mock.MatchedBy(func(c *entities.Calendar) bool {
			return bytes.Equal(c.IV, fixedIV)
		})).Return(nil).Once()
		f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
		f.client.On("CreateCalendar", ctx, mock.Anything).Return(status.Error(codes.Unavailable, "down"))
		f.repo.On("Upsert", ctx, previous).Return(nil).Once()

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrServiceUnavailable)
	})

	t.Run("failed restore is reported by the original error", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
		f.repo.On("Upsert", ctx, mock.Anything).Return(nil)
		f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
		f.client.On("CreateCalendar", ctx, mock.Anything).Return(status.Error(codes.InvalidArgument, "bad"))
		f.repo.On("Delete", ctx, calendarID, ownerID).Return(errDatabase)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrInvalidRequest)
		assert.NotErrorIs(t, err, errDatabase)
	})

	t.Run("registry write failure leaves document untouched", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
		f.repo.On("Upsert", ctx, mock.Anything).Return(errDatabase)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, errDatabase)
		f.client.AssertNotCalled(t, "CreateCalendar", mock.Anything, mock.Anything)
	})

	t.Run("cache write failure is not fatal", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
		f.repo.On("Upsert", ctx, mock.Anything).Return(nil)
		f.client.On("CreateCalendar", ctx, mock.Anything).Return(nil)
		f.cache.On("SetIV", ctx, calendarID, fixedIV).Return(errRedis)
		f.cache.On("DeleteIV", ctx, calendarID).Return(errRedis)

		_, err := build().Publish(ctx, ownerID, calendarID, publishRequest())
		require.NoError(t, err)
	})
}

func TestPublishCircuitBreaker(t *testing.T) {
	ctx := context.Background()
	f, build := newFixture(t, resilience.CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Hour, SuccessThreshold: 1})
	svc := build()

	f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)
	f.repo.On("Upsert", ctx, mock.Anything).Return(nil)
	f.repo.On("Delete", ctx, calendarID, ownerID).Return(nil)
	f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
	f.client.On("CreateCalendar", ctx, mock.Anything).Return(status.Error(codes.Unavailable, "down")).Twice()

	for range 2 {
		_, err := svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrServiceUnavailable)
	}

	_, err := svc.Publish(ctx, ownerID, calendarID, publishRequest())
	require.ErrorIs(t, err, entities.ErrServiceUnavailable)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	body := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")

	t.Run("iv from cache", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.cache.On("GetIV", ctx, calendarID).Return(fixedIV, nil)
		f.client.On("GetCalendar", ctx, calendarID, fixedIV).Return(body, nil)

		got, err := build().Download(ctx, calendarID)
		require.NoError(t, err)
		assert.Equal(t, body, got)
	})

	t.Run("iv from registry is cached", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.cache.On("GetIV", ctx, calendarID).Return(nil, nil)
		f.repo.On("FindByID", ctx, calendarID).Return(&entities.Calendar{ID: calendarID, IV: fixedIV}, nil)
		f.cache.On("SetIV", ctx, calendarID, fixedIV).Return(nil)
		f.client.On("GetCalendar", ctx, calendarID, fixedIV).Return(body, nil)

		got, err := build().Download(ctx, calendarID)
		require.NoError(t, err)
		assert.Equal(t, body, got)
	})

	t.Run("cache failure falls back to registry", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.cache.On("GetIV", ctx, calendarID).Return(nil, errRedis)
		f.repo.On("FindByID", ctx, calendarID).Return(&entities.Calendar{ID: calendarID, IV: fixedIV}, nil)
		f.cache.On("SetIV", ctx, calendarID, fixedIV).Return(nil)
		f.client.On("GetCalendar", ctx, calendarID, fixedIV).Return(body, nil)

		_, err := build().Download(ctx, calendarID)
		require.NoError(t, err)
	})

	t.Run("corrupt cached iv", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.cache.On("GetIV", ctx, calendarID).Return(nil, cache.ErrCorruptIV)
		f.cache.On("DeleteIV", ctx, calendarID).Return(nil)
		f.repo.On("FindByID", ctx, calendarID).Return(&entities.Calendar{ID: calendarID, IV: fixedIV}, nil)
		f.cache.On("SetIV", ctx, calendarID, fixedIV).Return(nil)
		f.client.On("GetCalendar", ctx, calendarID, fixedIV).Return(body, nil)

		_, err := build().Download(ctx, calendarID)
		require.NoError(t, err)
	})

	t.Run("unknown calendar", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.cache.On("GetIV", ctx, calendarID).Return(nil, nil)
		f.repo.On("FindByID", ctx, calendarID).Return(nil, entities.ErrCalendarNotFound)

		_, err := build().Download(ctx, calendarID)
		require.ErrorIs(t, err, entities.ErrCalendarNotFound)
	})

	t.Run("document missing in calendar service", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.cache.On("GetIV", ctx, calendarID).Return(fixedIV, nil)
		f.client.On("GetCalendar", ctx, calendarID, fixedIV).Return(nil, status.Error(codes.NotFound, "calendar not found"))

		_, err := build().Download(ctx, calendarID)
		require.ErrorIs(t, err, entities.ErrCalendarNotFound)
	})

	t.Run("decryption failure stays internal", func(t *testing.T) {
		f, build := newFixture(t, defaultBreaker())
		f.cache.On("GetIV", ctx, calendarID).Return(fixedIV, nil)
		f.client.On("GetCalendar", ctx, calendarID, fixedIV).Return(nil, status.Error(codes.Internal, "internal error"))

		_, err := build().Download(ctx, calendarID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrCalendarNotFound)
		assert.NotErrorIs(t, err, entities.ErrServiceUnavailable)
		assert.Equal(t, codes.Internal, status.Code(err))
	})

	t.Run("invalid id", func(t *testing.T) {
		_, build := newFixture(t, defaultBreaker())
		_, err := build().Download(ctx, "short")
		require.ErrorIs(t, err, entities.ErrInvalidCalendarID)
	})
}

// documentStore ведет себя как сервис календарей: документ читается только тем nonce,
// которым он был записан.
type documentStore struct {
	mu        sync.Mutex
	ivs       map[string][]byte
	createErr error
}

func (d *documentStore) CreateCalendar(_ context.Context, req *calendarv1.CreateCalendarRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.createErr != nil {
		return d.createErr
	}
	d.ivs[req.CalendarID] = bytes.Clone(req.CalendarIV)
	return nil
}

func (d *documentStore) GetCalendar(_ context.Context, id string, iv []byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	stored, ok := d.ivs[id]
	switch {
	case !ok:
		return nil, status.Error(codes.NotFound, "calendar not found")
	case !bytes.Equal(stored, iv):
		return nil, status.Error(codes.Internal, "internal error")
	}
	return []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"), nil
}

func (d *documentStore) Close() error { return nil }

type registry struct {
	mu        sync.Mutex
	rows      map[string]entities.Calendar
	upsertErr error
}

func (r *registry) FindByID(_ context.Context, id string) (*entities.Calendar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, entities.ErrCalendarNotFound
	}
	return &row, nil
}

func (r *registry) Upsert(_ context.Context, c *entities.Calendar) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if row, ok := r.rows[c.ID]; ok && row.UserID != c.UserID {
		return entities.ErrCalendarForbidden
	}
	r.rows[c.ID] = *c
	return nil
}

func (r *registry) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[id]; ok && row.UserID == userID {
		delete(r.rows, id)
	}
	return nil
}

type memoryCache struct {
	mu  sync.Mutex
	ivs map[string][]byte
}

func (m *memoryCache) GetIV(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ivs[id], nil
}

func (m *memoryCache) SetIV(_ context.Context, id string, iv []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ivs[id] = bytes.Clone(iv)
	return nil
}

func (m *memoryCache) DeleteIV(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.ivs, id)
	return nil
}

func (m *memoryCache) Close() error { return nil }

type sequentialIVs struct {
	next byte
}

func (s *sequentialIVs) Read(p []byte) (int, error) {
	s.next++
	for i := range p {
		p[i] = s.next
	}
	return len(p), nil
}

func TestFailedPublishKeepsCalendarReadable(t *testing.T) {
	ctx := context.Background()

	newService := func() (portservices.CalendarService, *documentStore, *registry) {
		store := &documentStore{ivs: map[string][]byte{}}
		reg := &registry{rows: map[string]entities.Calendar{}}
		svc := services.NewCalendarService(store, reg, &memoryCache{ivs: map[string][]byte{}}, defaultBreaker(),
			services.WithRandom(&sequentialIVs{}))
		return svc, store, reg
	}

	t.Run("registry write fails on republish", func(t *testing.T) {
		svc, _, reg := newService()
		_, err := svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.NoError(t, err)

		reg.upsertErr = errDatabase
		_, err = svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, errDatabase)

		_, err = svc.Download(ctx, calendarID)
		require.NoError(t, err)
	})

	t.Run("calendar service rejects republish", func(t *testing.T) {
		svc, store, _ := newService()
		_, err := svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.NoError(t, err)

		store.createErr = status.Error(codes.InvalidArgument, "unknown time zone")
		_, err = svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrInvalidRequest)

		_, err = svc.Download(ctx, calendarID)
		require.NoError(t, err)
	})

	t.Run("calendar service rejects first publish", func(t *testing.T) {
		svc, store, reg := newService()
		store.createErr = status.Error(codes.InvalidArgument, "unknown time zone")

		_, err := svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrInvalidRequest)
		assert.Empty(t, reg.rows)

		_, err = svc.Download(ctx, calendarID)
		require.ErrorIs(t, err, entities.ErrCalendarNotFound)
	})

	t.Run("second user loses the race for a new id", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.Publish(ctx, ownerID, calendarID, publishRequest())
		require.NoError(t, err)

		_, err = svc.Publish(ctx, "user-2", calendarID, publishRequest())
		require.ErrorIs(t, err, entities.ErrCalendarForbidden)

		_, err = svc.Download(ctx, calendarID)
		require.NoError(t, err)
	})
}
