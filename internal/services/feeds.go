// Package services provides business logic
package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"spacescope/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Feed sources, also used as archive keys
const (
	SourceApod  = "apod"
	SourceDonki = "donki"
	SourceNeo   = "neo"
)

var (
	// ErrArchiveDisabled is returned when no archive is configured
	ErrArchiveDisabled = errors.New("feed archive is disabled")
	// ErrLocationUnavailable is returned by a Locator that cannot locate
	ErrLocationUnavailable = errors.New("location unavailable")

	errEmptyFeed = errors.New("feed returned no records")
)

// NasaFeeds is the NASA side of the feed gateway
type NasaFeeds interface {
	FetchAPOD(ctx context.Context) (domain.Apod, error)
	FetchNotifications(ctx context.Context) ([]domain.Notification, error)
	FetchNeoFeed(ctx context.Context, date string) ([]domain.NearEarthObject, error)
}

// AtmosphereFeed fetches local sky conditions
type AtmosphereFeed interface {
	FetchAtmosphere(ctx context.Context, lat, lon float64) (domain.Atmosphere, error)
}

// SnapshotsKept bounds the archive per source
const SnapshotsKept = 500

// Archive persists live feed payloads
type Archive interface {
	Write(ctx context.Context, source string, payload json.RawMessage) error
	GetLatest(ctx context.Context, source string) (*domain.FeedSnapshot, error)
	Prune(ctx context.Context, source string, keep int) (int64, error)
}

// Locator provides a best-effort current position
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// FixedLocator always reports the same position
type FixedLocator struct {
	Lat, Lon float64
}

// Locate returns the fixed position
func (l FixedLocator) Locate(ctx context.Context) (float64, float64, error) {
	return l.Lat, l.Lon, nil
}

// NoLocation is a Locator for callers that denied or lack geolocation
type NoLocation struct{}

// Locate always fails with ErrLocationUnavailable
func (NoLocation) Locate(ctx context.Context) (float64, float64, error) {
	return 0, 0, ErrLocationUnavailable
}

// FeedService fetches feeds and substitutes fallback data on failure
type FeedService struct {
	nasa    NasaFeeds
	meteo   AtmosphereFeed
	archive Archive
	loc     *time.Location
	logger  *zap.Logger
	now     func() time.Time
}

// NewFeedService creates a feed service. archive may be nil.
func NewFeedService(nasa NasaFeeds, meteo AtmosphereFeed, archive Archive, loc *time.Location, logger *zap.Logger) *FeedService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{
		nasa:    nasa,
		meteo:   meteo,
		archive: archive,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
	}
}

// Today returns the current calendar date in the configured time zone
func (s *FeedService) Today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// PictureOfDay fetches APOD. It has no fallback; errors are returned.
func (s *FeedService) PictureOfDay(ctx context.Context) (domain.Apod, error) {
	return s.nasa.FetchAPOD(ctx)
}

// SpaceWeather returns DONKI notifications, or the fallback bulletins when
// the feed fails or is empty. It never fails.
func (s *FeedService) SpaceWeather(ctx context.Context) []domain.Notification {
	notes, err := s.liveNotifications(ctx)
	if err != nil {
		s.logger.Warn("DONKI feed unavailable, using fallback", zap.Error(err))
		return domain.FallbackNotifications(s.now())
	}
	return notes
}

// NearEarthObjects returns the NEOs for date (today when empty), or the
// demo record when the feed fails or has nothing for that day
func (s *FeedService) NearEarthObjects(ctx context.Context, date string) []domain.NearEarthObject {
	if date == "" {
		date = s.Today()
	}
	neos, err := s.liveNearEarthObjects(ctx, date)
	if err != nil {
		s.logger.Warn("NEO feed unavailable, using fallback", zap.String("date", date), zap.Error(err))
		return domain.FallbackNearEarthObjects()
	}
	return neos
}

// LocalAtmosphere locates the caller and fetches local sky conditions.
// Location or fetch failures yield ok == false.
func (s *FeedService) LocalAtmosphere(ctx context.Context, locator Locator) (*domain.Atmosphere, bool) {
	lat, lon, err := locator.Locate(ctx)
	if err != nil {
		s.logger.Debug("geolocation unavailable", zap.Error(err))
		return nil, false
	}
	atm, err := s.meteo.FetchAtmosphere(ctx, lat, lon)
	if err != nil {
		s.logger.Warn("local atmosphere fetch failed", zap.Error(err))
		return nil, false
	}
	return &atm, true
}

// Dashboard fetches APOD, notifications and today's NEOs concurrently
func (s *FeedService) Dashboard(ctx context.Context) domain.Dashboard {
	d := domain.Dashboard{Date: s.Today()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		apod, err := s.PictureOfDay(gctx)
		if err != nil {
			s.logger.Warn("APOD fetch failed", zap.Error(err))
			d.ApodError = err.Error()
			return nil
		}
		d.Apod = &apod
		return nil
	})
	g.Go(func() error {
		d.Notifications = s.SpaceWeather(gctx)
		return nil
	})
	g.Go(func() error {
		d.NearEarth = s.NearEarthObjects(gctx, d.Date)
		return nil
	})
	_ = g.Wait()

	return d
}

// FindEntity resolves id against the curated catalog and today's NEOs
func (s *FeedService) FindEntity(ctx context.Context, id string) (domain.Entity, bool) {
	if e, ok := domain.FindEntity(id, nil); ok {
		return e, true
	}
	return domain.FindEntity(id, s.NearEarthObjects(ctx, ""))
}

// Refresh fetches the named sources live and archives them. It returns the
// sources that produced live data. Only Refresh writes to the archive.
func (s *FeedService) Refresh(ctx context.Context, sources []string) []string {
	refreshed := []string{}
	for _, source := range sources {
		var (
			v   interface{}
			err error
		)
		switch source {
		case SourceApod:
			v, err = s.PictureOfDay(ctx)
		case SourceDonki:
			v, err = s.liveNotifications(ctx)
		case SourceNeo:
			v, err = s.liveNearEarthObjects(ctx, s.Today())
		default:
			continue
		}
		if err != nil {
			s.logger.Warn("feed refresh failed", zap.String("source", source), zap.Error(err))
			continue
		}
		s.store(ctx, source, v)
		refreshed = append(refreshed, source)
	}
	return refreshed
}

// Archived returns the newest archived snapshot of source
func (s *FeedService) Archived(ctx context.Context, source string) (*domain.FeedSnapshot, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.archive.GetLatest(ctx, source)
}

func (s *FeedService) liveNotifications(ctx context.Context) ([]domain.Notification, error) {
	notes, err := s.nasa.FetchNotifications(ctx)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, errEmptyFeed
	}
	return notes, nil
}

func (s *FeedService) liveNearEarthObjects(ctx context.Context, date string) ([]domain.NearEarthObject, error) {
	neos, err := s.nasa.FetchNeoFeed(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(neos) == 0 {
		return nil, errEmptyFeed
	}
	return neos, nil
}

func (s *FeedService) store(ctx context.Context, source string, v interface{}) {
	if s.archive == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encoding snapshot", zap.String("source", source), zap.Error(err))
		return
	}
	if err := s.archive.Write(ctx, source, payload); err != nil {
		s.logger.Warn("archiving snapshot failed", zap.String("source", source), zap.Error(err))
		return
	}
	if n, err := s.archive.Prune(ctx, source, SnapshotsKept); err != nil {
		s.logger.Warn("pruning snapshots failed", zap.String("source", source), zap.Error(err))
	} else if n > 0 {
		s.logger.Debug("pruned snapshots", zap.String("source", source), zap.Int64("deleted", n))
	}
}
