package finder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tamirciBul/internal/finder/geo"
	"tamirciBul/internal/models"
)

// Config holds the finder defaults.
type Config struct {
	DefaultCenter   models.GeoPoint
	DefaultRadiusKm float64
	PageSize        int
	FetchTimeout    time.Duration
}

// Orchestrator owns the pair {current filter state, current result set} and
// refreshes the set through the directory whenever an input changes.
//
// Every outgoing fetch is tagged with a monotonically increasing sequence
// number; a response whose tag is no longer the newest is discarded, so
// overlapping fetches can never publish stale results. The previous fetch's
// context is cancelled as soon as a newer one is issued.
type Orchestrator struct {
	dir    Directory
	bus    Notifier
	logger Logger
	cfg    Config

	mu      sync.Mutex
	state   models.FilterState
	items   []models.ServiceRecord
	page    models.ResultPage
	loading bool
	seq     uint64
	cancel  context.CancelFunc
	dropped uint64
}

// New creates an orchestrator seeded with the configured default center.
func New(dir Directory, bus Notifier, logger Logger, cfg Config) *Orchestrator {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if cfg.DefaultRadiusKm <= 0 {
		cfg.DefaultRadiusKm = 10
	}
	return &Orchestrator{
		dir:    dir,
		bus:    bus,
		logger: logger,
		cfg:    cfg,
		state: models.FilterState{
			Center:   cfg.DefaultCenter,
			RadiusKm: cfg.DefaultRadiusKm,
			SortBy:   models.SortByDistance,
		},
	}
}

// SetFilters replaces the filter state and refreshes the result set. Zero
// radius means "keep the configured default". The previous visible set stays
// in place when the fetch fails.
func (o *Orchestrator) SetFilters(ctx context.Context, state models.FilterState) error {
	if state.RadiusKm == 0 {
		state.RadiusKm = o.cfg.DefaultRadiusKm
	}
	if state.SortBy == "" {
		state.SortBy = models.SortByDistance
	}
	if (state.Center == models.GeoPoint{}) {
		state.Center = o.currentCenter()
	}
	if err := state.Validate(); err != nil {
		return err
	}
	if err := geo.Validate(state.Center.Latitude, state.Center.Longitude); err != nil {
		return err
	}

	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
	return o.refresh(ctx)
}

// SetCenter records a geolocation fix. A later fix after the default-center
// fallback is an ordinary center change and triggers a refresh like any
// other filter input.
func (o *Orchestrator) SetCenter(ctx context.Context, center models.GeoPoint) error {
	if err := geo.Validate(center.Latitude, center.Longitude); err != nil {
		return err
	}
	o.mu.Lock()
	o.state.Center = center
	o.mu.Unlock()
	return o.refresh(ctx)
}

// UseDefaultCenter falls back to the configured center, for when geolocation
// is denied, unavailable or never resolves.
func (o *Orchestrator) UseDefaultCenter(ctx context.Context) error {
	return o.SetCenter(ctx, o.cfg.DefaultCenter)
}

// SetSort changes the ranking mode. Ranking is purely client-side, so no
// fetch is issued.
func (o *Orchestrator) SetSort(sortBy string) error {
	switch sortBy {
	case models.SortByDistance, models.SortByRating:
	default:
		return fmt.Errorf("%w: unknown sort %q", models.ErrInvalidFilterState, sortBy)
	}
	o.mu.Lock()
	o.state.SortBy = sortBy
	o.mu.Unlock()
	return nil
}

// Refresh re-fetches page 1 for the current filter state in replace mode.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	return o.refresh(ctx)
}

func (o *Orchestrator) refresh(ctx context.Context) error {
	o.mu.Lock()
	seq, fctx, cancel := o.beginFetchLocked(ctx)
	st := o.state
	q := o.queryLocked(1)
	o.mu.Unlock()

	page, err := o.dir.Search(fctx, q)
	cancel()

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.seq {
		o.dropped++
		o.logger.Infof("finder: dropped stale response for seq %d (current %d)", seq, o.seq)
		return models.ErrStaleResponse
	}
	o.loading = false
	if err != nil {
		o.logger.Errorf("finder: refresh failed: %v", err)
		o.notifyError("Search failed", "Could not refresh results, showing the last known set.")
		return fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
	}

	return o.swapLocked(Merge(nil, page, MergeReplace), page, st)
}

// LoadMore fetches the next page and appends its novel records. It is a
// no-op while a fetch is in flight or when no pages remain.
func (o *Orchestrator) LoadMore(ctx context.Context) error {
	o.mu.Lock()
	if o.loading || !o.page.HasMore() {
		o.mu.Unlock()
		return nil
	}
	seq, fctx, cancel := o.beginFetchLocked(ctx)
	st := o.state
	q := o.queryLocked(o.page.CurrentPage + 1)
	o.mu.Unlock()

	page, err := o.dir.Search(fctx, q)
	cancel()

	o.mu.Lock()
	defer o.mu.Unlock()
	if seq != o.seq {
		o.dropped++
		o.logger.Infof("finder: dropped stale page for seq %d (current %d)", seq, o.seq)
		return models.ErrStaleResponse
	}
	o.loading = false
	if err != nil {
		o.logger.Errorf("finder: load more failed: %v", err)
		o.notifyError("Loading failed", "Could not load more results.")
		return fmt.Errorf("%w: %v", models.ErrFetchFailed, err)
	}

	return o.swapLocked(Merge(o.items, page, MergeAppend), page, st)
}

// beginFetchLocked claims the next sequence number and cancels whatever
// fetch was still in flight. Caller holds o.mu.
func (o *Orchestrator) beginFetchLocked(ctx context.Context) (uint64, context.Context, context.CancelFunc) {
	o.seq++
	if o.cancel != nil {
		o.cancel()
	}
	fctx, cancel := context.WithTimeout(ctx, o.cfg.FetchTimeout)
	o.cancel = cancel
	o.loading = true
	return o.seq, fctx, cancel
}

// swapLocked finishes the client-side half of the pipeline and publishes the
// new visible set. Caller holds o.mu.
func (o *Orchestrator) swapLocked(merged []models.ServiceRecord, page models.ResultPage, st models.FilterState) error {
	filtered, err := Apply(merged, st)
	if err != nil {
		return err
	}
	o.items = Annotate(filtered, st.Center)
	o.page = page
	return nil
}

func (o *Orchestrator) queryLocked(page int) models.SearchQuery {
	q := models.SearchQuery{
		Category: o.state.Category,
		Search:   o.state.SearchText,
		City:     o.state.City,
		Page:     page,
		PerPage:  o.cfg.PageSize,
	}
	if q.Category == models.CategoryAll {
		q.Category = ""
	}
	// city selection and radius selection are mutually exclusive modes
	if q.City == "" {
		center := o.state.Center
		q.Center = &center
		q.RadiusKm = o.state.RadiusKm
	}
	return q
}

// Results returns the visible set ranked by the current sort mode, plus the
// last pagination envelope.
func (o *Orchestrator) Results() ([]models.ServiceRecord, models.ResultPage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Rank(o.items, o.state.SortBy), o.page
}

// State returns a snapshot of the current filter state.
func (o *Orchestrator) State() models.FilterState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Loading reports whether a fetch is in flight.
func (o *Orchestrator) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// DroppedStale returns how many responses were discarded as stale.
func (o *Orchestrator) DroppedStale() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dropped
}

func (o *Orchestrator) currentCenter() models.GeoPoint {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Center
}

func (o *Orchestrator) notifyError(title, message string) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(models.Notification{
		Kind:      models.NotifyError,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	})
}
