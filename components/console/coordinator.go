package console

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CoordinatorOptions configures a Coordinator.
type CoordinatorOptions struct {
	Registry *Registry
	// Source serves every section without a registry override.
	Source DataSource
	// OnUnauthorized runs once per generation when any slice fails with 401.
	OnUnauthorized func(ctx context.Context)
	Hook           EventHook
	Telemetry      Telemetry
	Logger         *zap.Logger
	Now            func() time.Time
}

type fetchKey struct {
	section SectionID
	token   string
}

type sliceResult struct {
	data SliceData
	err  error
}

// Coordinator loads section slices for the current (section, token) pair.
// Every key change or refresh starts a new generation; results from older
// generations are discarded when they arrive. In-flight requests are never
// cancelled, only ignored.
type Coordinator struct {
	mu         sync.Mutex
	started    bool
	closed     bool
	key        fetchKey
	generation uint64
	loading    bool
	done       chan struct{}
	stores     map[SectionID]SectionData

	registry       *Registry
	source         DataSource
	onUnauthorized func(ctx context.Context)
	hook           EventHook
	telemetry      Telemetry
	logger         *zap.Logger
	now            func() time.Time

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCoordinator builds a coordinator with safe defaults.
func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Source == nil {
		opts.Source = unavailableSource{}
	}
	if opts.Hook == nil {
		opts.Hook = noopEventHook{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	base, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	close(done)
	return &Coordinator{
		done:           done,
		stores:         map[SectionID]SectionData{},
		registry:       opts.Registry,
		source:         opts.Source,
		onUnauthorized: opts.OnUnauthorized,
		hook:           opts.Hook,
		telemetry:      normalizeTelemetry(opts.Telemetry),
		logger:         normalizeLogger(opts.Logger, "coordinator"),
		now:            opts.Now,
		base:           base,
		cancel:         cancel,
	}
}

// Sync makes (section, token) the current key. A new key starts a new
// generation and, when a token is present, a fetch of every slice of the
// section. Repeating the current key is a no-op. The returned channel closes
// once the generation's fetch has been applied or discarded.
func (c *Coordinator) Sync(section SectionID, token string) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := fetchKey{section: section, token: token}
	if c.started && key == c.key {
		return c.done
	}
	if c.started && key.token != c.key.token {
		c.stores = map[SectionID]SectionData{}
	}
	c.started = true
	c.key = key
	c.generation++
	return c.launchLocked()
}

// Refresh starts a new generation for the current key, keeping applied data
// until the new results land.
func (c *Coordinator) Refresh() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return c.done
	}
	c.generation++
	return c.launchLocked()
}

// Generation returns the current generation.
func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Snapshot returns the applied data for a section. Sections that were never
// loaded report empty collections.
func (c *Coordinator) Snapshot(section SectionID) SectionData {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.stores[section]
	if !ok {
		data = SectionData{Section: section}
	}
	data = cloneSectionData(data)
	data.Loading = c.loading && c.key.section == section
	return data
}

// Close cancels the base context of outstanding fetches and waits for them.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	c.generation++
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}

func (c *Coordinator) launchLocked() <-chan struct{} {
	gen := c.generation
	key := c.key
	done := make(chan struct{})
	c.done = done

	def, ok := c.registry.Definition(key.section)
	if c.closed || key.token == "" || !ok || len(def.Slices) == 0 {
		c.loading = false
		close(done)
		return done
	}
	source := c.source
	if override, ok := c.registry.Source(key.section); ok {
		source = override
	}
	c.loading = true
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer close(done)
		c.fetch(gen, key, def, source)
	}()
	return done
}

func (c *Coordinator) fetch(gen uint64, key fetchKey, def SectionDefinition, source DataSource) {
	results := make([]sliceResult, len(def.Slices))
	eg, egCtx := errgroup.WithContext(c.base)
	for i, slice := range def.Slices {
		eg.Go(func() error {
			data, err := source.Fetch(egCtx, FetchRequest{
				Section: key.section,
				Slice:   slice,
				Token:   key.token,
			})
			results[i] = sliceResult{data: data, err: err}
			// siblings keep running; failures are applied per slice
			return nil
		})
	}
	_ = eg.Wait()
	c.apply(gen, key, def, results)
}

func (c *Coordinator) apply(gen uint64, key fetchKey, def SectionDefinition, results []sliceResult) {
	c.mu.Lock()
	if gen != c.generation {
		current := c.generation
		c.mu.Unlock()
		c.logger.Debug("discarding stale response",
			zap.String("section", string(key.section)),
			zap.Uint64("generation", gen),
			zap.Uint64("current", current),
			zap.Error(ErrStaleResponse),
		)
		c.telemetry.Record(c.base, "console.fetch.stale", map[string]any{
			"section":    string(key.section),
			"generation": gen,
		})
		return
	}

	next := cloneSectionData(c.stores[key.section])
	next.Section = key.section
	unauthorized := false
	failures := 0
	for i, slice := range def.Slices {
		res := results[i]
		if res.err != nil {
			failures++
			failure := &FetchFailure{Section: key.section, Slice: slice.Name, Err: res.err}
			next.Errors[slice.Name] = res.err.Error()
			unauthorized = unauthorized || IsUnauthorized(res.err)
			if !errors.Is(res.err, context.Canceled) {
				c.logger.Warn("slice fetch failed", zap.Error(failure))
			}
			continue
		}
		delete(next.Errors, slice.Name)
		switch slice.Kind {
		case SliceAggregate:
			next.Aggregates[slice.Name] = res.data.Aggregate
		default:
			next.Records[slice.Name] = sortRecords(res.data.Records, slice.SortBy)
		}
	}
	next.Generation = gen
	next.UpdatedAt = c.now()
	c.stores[key.section] = next
	c.loading = false
	c.mu.Unlock()

	c.telemetry.Record(c.base, "console.fetch.applied", map[string]any{
		"section":    string(key.section),
		"generation": gen,
		"slices":     len(def.Slices),
		"failures":   failures,
	})
	if err := c.hook.ConsoleUpdated(c.base, Event{
		Kind:          EventData,
		Section:       key.section,
		Generation:    gen,
		Authenticated: key.token != "",
	}); err != nil {
		c.logger.Warn("event hook failed", zap.Error(err))
	}
	if unauthorized && c.onUnauthorized != nil {
		c.onUnauthorized(c.base)
	}
}

func cloneSectionData(in SectionData) SectionData {
	out := in
	out.Records = make(map[string][]Record, len(in.Records))
	for k, v := range in.Records {
		out.Records[k] = cloneRecords(v)
	}
	out.Aggregates = make(map[string]Aggregate, len(in.Aggregates))
	for k, v := range in.Aggregates {
		out.Aggregates[k] = Aggregate(cloneMap(v))
	}
	out.Errors = make(map[string]string, len(in.Errors))
	for k, v := range in.Errors {
		out.Errors[k] = v
	}
	return out
}

var monthOrder = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

func monthRank(value string) (int, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if len(value) < 3 {
		return 0, false
	}
	rank, ok := monthOrder[value[:3]]
	return rank, ok
}

// sortRecords orders records by a field. Month names sort by calendar order.
func sortRecords(records []Record, field string) []Record {
	if field == "" || len(records) < 2 {
		return records
	}
	out := cloneRecords(records)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Text(field), out[j].Text(field)
		ra, okA := monthRank(a)
		rb, okB := monthRank(b)
		if okA && okB {
			return ra < rb
		}
		return a < b
	})
	return out
}

type unavailableSource struct{}

func (unavailableSource) Fetch(context.Context, FetchRequest) (SliceData, error) {
	return SliceData{}, errors.New("console: no data source configured")
}
