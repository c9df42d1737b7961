// Package orchestrate drives the progressive three-tier load: critical
// first-paint data, then the core metric sets, then supplementary detail.
// Every request is individually fault-tolerant; a failed source degrades
// to nil instead of aborting its tier.
package orchestrate

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"HealthPulse/internal/cache"
	"HealthPulse/internal/delta"
	"HealthPulse/internal/metrics"
	"HealthPulse/internal/model"
	"HealthPulse/internal/reconcile"
	"HealthPulse/internal/session"
)

// TierHook observes tier completions; the daemon uses it to record and
// notify once the final tier lands.
type TierHook func(tier int, snap Snapshot)

// Loader owns the shared snapshot state and the generation counter that
// keeps a superseded load from overwriting a newer one.
type Loader struct {
	cache  *cache.Cache
	store  *session.Store // optional; nil disables last-refresh persistence
	now    func() time.Time
	onTier TierHook

	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

// NewLoader creates a Loader over the given cache. store may be nil.
func NewLoader(c *cache.Cache, store *session.Store) *Loader {
	return &Loader{cache: c, store: store, now: time.Now}
}

// SetTierHook registers the tier-completion observer. Call before LoadAll.
func (l *Loader) SetTierHook(fn TierHook) { l.onTier = fn }

// Snapshot returns a copy of the current aggregate state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// LoadAll runs a full load cycle. It returns once tier 1 has settled so
// the caller can render immediately; tiers 2 and 3 continue in the
// background and update the shared snapshot as they land. Individual
// source failures are silent; only a cancelled context surfaces as an
// error.
func (l *Loader) LoadAll(ctx context.Context, forceRefresh bool) (Snapshot, error) {
	l.mu.Lock()
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	today := l.now().Format("2006-01-02")
	log.Printf("[INFO] load cycle %d starting (force=%v)", gen, forceRefresh)

	t1 := l.loadTier1(ctx, forceRefresh)
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	l.apply(gen, 1, today, func(s *Snapshot) {
		s.Dashboard = t1.dashboard
		s.TrainingToday = t1.trainingToday
		s.TrainingHistory = t1.history
	})

	go l.loadRemainingTiers(ctx, gen, today, forceRefresh)

	return l.Snapshot(), nil
}

func (l *Loader) loadRemainingTiers(ctx context.Context, gen uint64, today string, forceRefresh bool) {
	t2 := l.loadTier2(ctx, forceRefresh)
	if ctx.Err() != nil {
		return
	}
	l.apply(gen, 2, today, func(s *Snapshot) {
		s.SleepGroups = t2.sleepGroups
		s.Readiness = t2.readiness
		s.Activity = t2.activity
		s.Spo2 = t2.spo2
	})

	t3 := l.loadTier3(ctx, forceRefresh, today)
	if ctx.Err() != nil {
		return
	}
	applied := l.apply(gen, 3, today, func(s *Snapshot) {
		s.TrainingWeekly = t3.weekly
		s.Stress = t3.stress
		s.HeartRateDetail = t3.heartRate
		s.SleepDebt = t3.sleepDebt
		s.Trends = t3.trends
	})

	if applied && l.store != nil {
		if err := l.store.MarkRefreshed(l.now()); err != nil {
			log.Printf("[WARN] persist last-refresh timestamp: %v", err)
		}
	}
	if applied {
		log.Printf("[INFO] load cycle %d complete", gen)
	}
}

// apply mutates the shared snapshot and recomputes derived state, but only
// when gen is still the latest load cycle. A superseded cycle's results
// are discarded so a slow fetch can never overwrite newer data.
func (l *Loader) apply(gen uint64, tier int, today string, mutate func(*Snapshot)) bool {
	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		log.Printf("[INFO] load cycle %d superseded, discarding tier %d results", gen, tier)
		return false
	}
	if l.snap.Generation != gen {
		l.snap = Snapshot{Generation: gen, Date: today}
	}
	l.snap.Tier = tier
	l.snap.LoadedAt = l.now()
	mutate(&l.snap)
	l.derive(&l.snap)
	snap := l.snap
	hook := l.onTier
	l.mu.Unlock()

	if hook != nil {
		hook(tier, snap)
	}
	return true
}

type tier1Result struct {
	dashboard     *model.DashboardToday
	trainingToday *model.TrainingDaily
	history       []model.TrainingDaily
}

func (l *Loader) loadTier1(ctx context.Context, force bool) tier1Result {
	var res tier1Result
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		res.dashboard = fetchJSON[model.DashboardToday](ctx, l.cache, "/api/v1/dashboard/today", nil, force)
	}()
	go func() {
		defer wg.Done()
		res.trainingToday = fetchJSON[model.TrainingDaily](ctx, l.cache, "/api/v1/training/today", nil, force)
	}()
	go func() {
		defer wg.Done()
		if env := fetchJSON[model.TrainingHistory](ctx, l.cache, "/api/v1/training/history",
			map[string]string{"days": "7"}, force); env != nil {
			res.history = env.Records
		}
	}()
	wg.Wait()
	return res
}

type tier2Result struct {
	sleepGroups []model.DaySleepGroup
	readiness   *model.ReadinessDaily
	activity    *model.ActivityDaily
	spo2        *model.Spo2Daily
}

func (l *Loader) loadTier2(ctx context.Context, force bool) tier2Result {
	var res tier2Result
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		if env := fetchJSON[model.GroupedSleepResponse](ctx, l.cache, "/api/v1/oura/sleep/grouped",
			map[string]string{"days": "30"}, force); env != nil {
			res.sleepGroups = env.Records
		}
	}()
	go func() {
		defer wg.Done()
		res.readiness = firstRecord(fetchJSON[model.RecordsEnvelope[model.ReadinessDaily]](
			ctx, l.cache, "/api/v1/oura/readiness", map[string]string{"days": "2"}, force))
	}()
	go func() {
		defer wg.Done()
		res.activity = firstRecord(fetchJSON[model.RecordsEnvelope[model.ActivityDaily]](
			ctx, l.cache, "/api/v1/oura/activity", map[string]string{"days": "2"}, force))
	}()
	go func() {
		defer wg.Done()
		res.spo2 = firstRecord(fetchJSON[model.RecordsEnvelope[model.Spo2Daily]](
			ctx, l.cache, "/api/v1/oura/spo2", map[string]string{"days": "2"}, force))
	}()
	wg.Wait()
	return res
}

type tier3Result struct {
	weekly    *model.TrainingWeekly
	stress    *model.StressDaily
	heartRate []model.HeartRateSample
	sleepDebt *model.SleepDebt
	trends    json.RawMessage
}

func (l *Loader) loadTier3(ctx context.Context, force bool, today string) tier3Result {
	var res tier3Result
	var wg sync.WaitGroup

	wg.Add(5)
	go func() {
		defer wg.Done()
		res.weekly = fetchJSON[model.TrainingWeekly](ctx, l.cache, "/api/v1/training/weekly", nil, force)
	}()
	go func() {
		defer wg.Done()
		res.stress = firstRecord(fetchJSON[model.RecordsEnvelope[model.StressDaily]](
			ctx, l.cache, "/api/v1/oura/stress", map[string]string{"days": "2"}, force))
	}()
	go func() {
		defer wg.Done()
		if env := fetchJSON[model.RecordsEnvelope[model.HeartRateSample]](ctx, l.cache,
			"/api/v1/oura/heartrate-detail", map[string]string{"day": today}, force); env != nil {
			res.heartRate = env.Records
		}
	}()
	go func() {
		defer wg.Done()
		res.sleepDebt = fetchJSON[model.SleepDebt](ctx, l.cache, "/api/v1/oura/sleep-debt", nil, force)
	}()
	go func() {
		defer wg.Done()
		if body, err := l.cache.Get(ctx, "/api/v1/trends/overview", map[string]string{"days": "30"}, force); err == nil {
			res.trends = json.RawMessage(body)
		} else {
			log.Printf("[WARN] fetch /api/v1/trends/overview: %v", err)
		}
	}()
	wg.Wait()
	return res
}

// derive recomputes everything downstream of the raw payloads. Runs under
// the loader mutex; all computation here is synchronous and allocation
// only, no I/O.
func (l *Loader) derive(s *Snapshot) {
	if s.SleepGroups != nil {
		s.Sleep = reconcile.Reconcile(s.Date, reconcile.Flatten(s.SleepGroups))
	}
	s.SleepAssessment = metrics.AssessSleep(s.Sleep)
	s.ActivityAssessment = metrics.AssessActivity(s.Activity)

	s.SessionEstimates = nil
	if s.TrainingToday != nil {
		for i := range s.TrainingToday.Sessions {
			s.SessionEstimates = append(s.SessionEstimates,
				metrics.SessionEstimates(&s.TrainingToday.Sessions[i]))
		}
		// Backend-computed flags take precedence, like native cardio load.
		if s.TrainingToday.Flags == nil {
			s.TrainingToday.Flags = metrics.DailyFlags(
				s.TrainingToday.Zone2Min, s.TrainingToday.HiMin, s.TrainingHistory)
		}
	}

	if s.Dashboard != nil {
		s.Deltas = delta.Compute(s.Dashboard.OuraToday, s.Dashboard.OuraYesterday)
	}

	// Local sleep-debt estimate when the backend endpoint had nothing.
	if s.SleepDebt == nil && s.SleepGroups != nil {
		nights := make([]metrics.Night, 0, len(s.SleepGroups))
		for _, g := range s.SleepGroups {
			nights = append(nights, metrics.Night{Day: g.Day, DurationSec: g.TotalDuration})
		}
		s.SleepDebt = metrics.SleepDebtEstimate(nights, s.Date)
	}

	s.Alert = delta.Alert(l.alertInput(s))
}

// alertInput gathers the freshest available value for each ladder rung:
// tier-2 records win over the tier-1 dashboard summary.
func (l *Loader) alertInput(s *Snapshot) delta.AlertInput {
	var in delta.AlertInput

	if s.Readiness != nil {
		in.TemperatureDeviation = s.Readiness.TemperatureDeviation
		in.ReadinessScore = s.Readiness.Score
	}
	if s.Sleep != nil && s.Sleep.Main != nil {
		if in.TemperatureDeviation == nil {
			in.TemperatureDeviation = s.Sleep.Main.TemperatureDeviation
		}
		in.AverageHRV = s.Sleep.Main.AverageHRV
		deep := secToMin(s.Sleep.Main.DeepSleepDuration)
		in.DeepSleepMin = &deep
	}
	if s.Dashboard != nil && s.Dashboard.OuraToday != nil {
		o := s.Dashboard.OuraToday
		if in.AverageHRV == nil && o.AverageHRV != nil {
			hrv := float64(*o.AverageHRV)
			in.AverageHRV = &hrv
		}
		if in.ReadinessScore == nil {
			in.ReadinessScore = o.ReadinessScore
		}
		if in.DeepSleepMin == nil {
			in.DeepSleepMin = o.DeepSleepMin
		}
	}
	return in
}

// fetchJSON is the per-request guard: any failure logs a warning and
// degrades to nil so sibling requests in the tier are unaffected.
func fetchJSON[T any](ctx context.Context, c *cache.Cache, path string, params map[string]string, force bool) *T {
	body, err := c.Get(ctx, path, params, force)
	if err != nil {
		log.Printf("[WARN] fetch %s: %v", path, err)
		return nil
	}
	if len(body) == 0 || string(body) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		log.Printf("[WARN] decode %s: %v", path, err)
		return nil
	}
	return &v
}

func firstRecord[T any](env *model.RecordsEnvelope[T]) *T {
	if env == nil || len(env.Records) == 0 {
		return nil
	}
	return &env.Records[0]
}

func secToMin(sec int) int {
	return int(float64(sec)/60 + 0.5)
}
