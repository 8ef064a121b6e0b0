package service

import (
	"context"
	"time"

	"github.com/fittrackhq/fittrack-backend/internal/domain"
)

// In-memory store fakes shared by the service tests. They implement the
// store interfaces from stores.go with just enough behavior to drive the
// engines.

type fakeUserStore struct {
	users map[int64]domain.User
}

func (f *fakeUserStore) GetByID(id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserStore) GetAll() ([]domain.User, error) {
	var all []domain.User
	// Deterministic order: ascending id, like the real repository.
	for id := int64(1); int64(len(all)) < int64(len(f.users)); id++ {
		if u, ok := f.users[id]; ok {
			all = append(all, u)
		}
	}
	return all, nil
}

type fakeMetricStore struct {
	days         []domain.DaySummary
	weights      []domain.WeightEntry
	workoutCount int
	oldestWeight *domain.WeightEntry

	daysErr error
}

func (f *fakeMetricStore) DailyCalorieTotals(userID int64, since time.Time) ([]domain.DaySummary, error) {
	if f.daysErr != nil {
		return nil, f.daysErr
	}
	return f.days, nil
}

func (f *fakeMetricStore) WeightEntriesInWindow(userID int64, since time.Time) ([]domain.WeightEntry, error) {
	return f.weights, nil
}

func (f *fakeMetricStore) CountWorkoutsInWindow(userID int64, since time.Time) (int, error) {
	return f.workoutCount, nil
}

func (f *fakeMetricStore) GetOldestWeightEntry(userID int64) (*domain.WeightEntry, error) {
	return f.oldestWeight, nil
}

type fakeAchievementStore struct {
	existing  map[string]bool
	created   []domain.Achievement
	createErr error
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{existing: map[string]bool{}}
}

func (f *fakeAchievementStore) ExistsByUserAndName(userID int64, name string) (bool, error) {
	return f.existing[name], nil
}

func (f *fakeAchievementStore) CreateBatch(achievements []domain.Achievement) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, a := range achievements {
		f.existing[a.Name] = true
	}
	f.created = append(f.created, achievements...)
	return nil
}

type fakePlanStore struct {
	plans     []domain.GeneratedPlan
	createErr error
}

func (f *fakePlanStore) Create(p *domain.GeneratedPlan) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.plans = append(f.plans, *p)
	return int64(len(f.plans)), nil
}

// fakeGenerator replies with queued responses in call order; a nil error
// and empty string entry simulates nothing having been queued.
type queuedReply struct {
	text string
	err  error
}

type fakeGenerator struct {
	replies []queuedReply
	prompts []string
	calls   int
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.calls >= len(f.replies) {
		return "", nil
	}
	reply := f.replies[f.calls]
	f.calls++
	return reply.text, reply.err
}

// fixedNow pins the service clocks so window boundaries are deterministic.
var fixedNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
