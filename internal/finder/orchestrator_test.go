package finder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tamirciBul/internal/models"
)

type testLogger struct{}

func (testLogger) Infof(string, ...interface{})  {}
func (testLogger) Errorf(string, ...interface{}) {}

type stubBus struct {
	mu     sync.Mutex
	events []models.Notification
}

func (s *stubBus) Publish(n models.Notification) {
	s.mu.Lock()
	s.events = append(s.events, n)
	s.mu.Unlock()
}

func (s *stubBus) kinds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Kind)
	}
	return out
}

type stubDirectory struct {
	mu      sync.Mutex
	calls   []models.SearchQuery
	respond func(call int, q models.SearchQuery) (models.ResultPage, error)
}

func (s *stubDirectory) Search(ctx context.Context, q models.SearchQuery) (models.ResultPage, error) {
	s.mu.Lock()
	s.calls = append(s.calls, q)
	call := len(s.calls)
	respond := s.respond
	s.mu.Unlock()
	return respond(call, q)
}

func (s *stubDirectory) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func testConfig() Config {
	return Config{
		DefaultCenter:   testCenter,
		DefaultRadiusKm: 10,
		PageSize:        2,
		FetchTimeout:    time.Second,
	}
}

// records without a location pass every place predicate, which keeps these
// tests about orchestration rather than geometry
func rec(id string) models.ServiceRecord {
	return models.ServiceRecord{ID: id, Category: models.CategoryPlumbing, DisplayName: "svc " + id}
}

func TestRefreshReplacesResultSet(t *testing.T) {
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		return page([]models.ServiceRecord{rec("1"), rec("2")}, 1, 1), nil
	}}
	o := New(dir, &stubBus{}, testLogger{}, testConfig())

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	got, envelope := o.Results()
	if !sameIDs(got, "1", "2") {
		t.Fatalf("unexpected result set: %v", ids(got))
	}
	if envelope.HasMore() {
		t.Fatalf("single page must not report more")
	}
}

func TestStaleResponseSuppression(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		if call == 1 {
			close(started)
			<-release
			return page([]models.ServiceRecord{rec("stale")}, 1, 1), nil
		}
		return page([]models.ServiceRecord{rec("fresh")}, 1, 1), nil
	}}
	o := New(dir, &stubBus{}, testLogger{}, testConfig())

	errCh := make(chan error, 1)
	stateA := models.FilterState{Category: models.CategoryPlumbing, Center: testCenter, RadiusKm: 10}
	go func() { errCh <- o.SetFilters(context.Background(), stateA) }()
	<-started

	stateB := models.FilterState{Category: models.CategoryPlumbing, SearchText: "svc", Center: testCenter, RadiusKm: 25}
	if err := o.SetFilters(context.Background(), stateB); err != nil {
		t.Fatalf("second SetFilters error: %v", err)
	}

	close(release)
	if err := <-errCh; !errors.Is(err, models.ErrStaleResponse) {
		t.Fatalf("expected stale response signal, got %v", err)
	}

	got, _ := o.Results()
	if !sameIDs(got, "fresh") {
		t.Fatalf("visible set must reflect the newest filter state, got %v", ids(got))
	}
	if o.DroppedStale() != 1 {
		t.Fatalf("expected 1 dropped response, got %d", o.DroppedStale())
	}
}

func TestLoadMoreAppendsAndDedupes(t *testing.T) {
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		if q.Page == 1 {
			return page([]models.ServiceRecord{rec("1"), rec("2")}, 1, 2), nil
		}
		return page([]models.ServiceRecord{rec("2"), rec("3")}, 2, 2), nil
	}}
	o := New(dir, &stubBus{}, testLogger{}, testConfig())

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if err := o.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore error: %v", err)
	}
	got, envelope := o.Results()
	if !sameIDs(got, "1", "2", "3") {
		t.Fatalf("expected deduplicated union, got %v", ids(got))
	}
	if envelope.HasMore() {
		t.Fatalf("page 2 of 2 must not report more")
	}

	// exhausted: further LoadMore must not issue a request
	before := dir.callCount()
	if err := o.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore after last page error: %v", err)
	}
	if dir.callCount() != before {
		t.Fatalf("LoadMore on last page issued a request")
	}
	after, _ := o.Results()
	if !sameIDs(after, "1", "2", "3") {
		t.Fatalf("result set changed on no-op LoadMore: %v", ids(after))
	}
}

func TestLoadMoreNoOpWhileLoading(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		if call == 1 {
			close(started)
			<-release
		}
		return page([]models.ServiceRecord{rec("1")}, 1, 2), nil
	}}
	o := New(dir, &stubBus{}, testLogger{}, testConfig())

	done := make(chan struct{})
	go func() {
		_ = o.Refresh(context.Background())
		close(done)
	}()
	<-started

	if err := o.LoadMore(context.Background()); err != nil {
		t.Fatalf("LoadMore while loading must be a silent no-op, got %v", err)
	}
	if dir.callCount() != 1 {
		t.Fatalf("LoadMore double-submitted while loading")
	}
	close(release)
	<-done
}

func TestFetchFailureKeepsVisibleSet(t *testing.T) {
	bus := &stubBus{}
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		if call == 1 {
			return page([]models.ServiceRecord{rec("keep")}, 1, 1), nil
		}
		return models.ResultPage{}, errors.New("boom")
	}}
	o := New(dir, bus, testLogger{}, testConfig())

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh error: %v", err)
	}
	err := o.Refresh(context.Background())
	if !errors.Is(err, models.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
	got, _ := o.Results()
	if !sameIDs(got, "keep") {
		t.Fatalf("failed refresh must keep the last good set, got %v", ids(got))
	}
	kinds := bus.kinds()
	if len(kinds) != 1 || kinds[0] != models.NotifyError {
		t.Fatalf("expected one error notification, got %v", kinds)
	}
}

func TestCenterChangeRefetches(t *testing.T) {
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		return page([]models.ServiceRecord{rec("1")}, 1, 1), nil
	}}
	o := New(dir, &stubBus{}, testLogger{}, testConfig())

	if err := o.SetCenter(context.Background(), models.GeoPoint{Latitude: 41.0082, Longitude: 28.9784}); err != nil {
		t.Fatalf("SetCenter error: %v", err)
	}
	if dir.callCount() != 1 {
		t.Fatalf("geolocation fix must trigger a refetch")
	}
	st := o.State()
	if st.Center.Latitude != 41.0082 {
		t.Fatalf("center not updated: %+v", st.Center)
	}

	if err := o.SetCenter(context.Background(), models.GeoPoint{Latitude: 95, Longitude: 0}); !errors.Is(err, models.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestQueryOmitsRadiusWhenCitySet(t *testing.T) {
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		return models.ResultPage{CurrentPage: 1, LastPage: 1}, nil
	}}
	o := New(dir, &stubBus{}, testLogger{}, testConfig())

	st := models.FilterState{City: "Ankara", Center: testCenter, RadiusKm: 10}
	if err := o.SetFilters(context.Background(), st); err != nil {
		t.Fatalf("SetFilters error: %v", err)
	}
	q := dir.calls[0]
	if q.City != "Ankara" || q.Center != nil || q.RadiusKm != 0 {
		t.Fatalf("city queries must not carry center/radius: %+v", q)
	}
}

func TestSetSortRanksWithoutRefetch(t *testing.T) {
	r1 := rec("near")
	r1.Location = pt(40.9917, 29.0303)
	r2 := rec("best")
	r2.Location = pt(41.0255, 28.9744)
	r2.Rating = rating(4.9)
	dir := &stubDirectory{respond: func(call int, q models.SearchQuery) (models.ResultPage, error) {
		return page([]models.ServiceRecord{r2, r1}, 1, 1), nil
	}}
	o := New(dir, &stubBus{}, testLogger{}, testConfig())

	if err := o.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	got, _ := o.Results()
	if !sameIDs(got, "near", "best") {
		t.Fatalf("default distance ranking wrong: %v", ids(got))
	}

	if err := o.SetSort(models.SortByRating); err != nil {
		t.Fatalf("SetSort error: %v", err)
	}
	got, _ = o.Results()
	if !sameIDs(got, "best", "near") {
		t.Fatalf("rating ranking wrong: %v", ids(got))
	}
	if dir.callCount() != 1 {
		t.Fatalf("sort change must not refetch")
	}
}
