package database_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroraskincare/clinic-booking/internal/adapters/database"
	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	"github.com/auroraskincare/clinic-booking/internal/domain/repositories"
)

// fakeRepository counts calls so the tests can tell which lookups were
// served from the session index.
type fakeRepository struct {
	appointments   []*entities.Appointment
	slotTakenCalls int
	listCalls      int
}

func (f *fakeRepository) Exists(ctx context.Context, date, timeOfDay, nic string) (bool, error) {
	for _, a := range f.appointments {
		if a.Date == date && a.Time == timeOfDay && a.Patient.NIC == nic {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) SlotTaken(ctx context.Context, date, timeOfDay, dermatologist string) (bool, error) {
	f.slotTakenCalls++
	for _, a := range f.appointments {
		if a.SameSlot(date, timeOfDay, dermatologist) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Save(ctx context.Context, appointment *entities.Appointment) (repositories.SaveOutcome, error) {
	f.appointments = append(f.appointments, appointment)
	return repositories.SaveOutcome{Status: repositories.SaveStatusSaved, ID: appointment.ID}, nil
}

func (f *fakeRepository) LastID(ctx context.Context) (int, bool, error) {
	return len(f.appointments), len(f.appointments) > 0, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) Search(ctx context.Context, term string) ([]*entities.Appointment, error) {
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	return nil
}

func (f *fakeRepository) ListByDate(ctx context.Context, date string) ([]*entities.Appointment, error) {
	f.listCalls++
	var matches []*entities.Appointment
	for _, a := range f.appointments {
		if a.Date == date {
			matches = append(matches, a)
		}
	}
	// Stored 24-hour HH:mm sorts lexically, matching the adapter's
	// ORDER BY time.
	sort.Slice(matches, func(i, j int) bool { return matches[i].Time < matches[j].Time })
	return matches, nil
}

func TestSessionIndex_SlotTakenServedFromIndexAfterSave(t *testing.T) {
	inner := &fakeRepository{}
	repo := database.NewSessionIndexedRepository(inner)
	ctx := context.Background()

	appointment := &entities.Appointment{
		ID: "1", Date: "2025-03-03", Time: "10:00", Dermatologist: "Dr. Ariyathunga",
	}
	_, err := repo.Save(ctx, appointment)
	require.NoError(t, err)

	taken, err := repo.SlotTaken(ctx, "2025-03-03", "10:00", "Dr. Ariyathunga")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.Zero(t, inner.slotTakenCalls, "positive probe should not reach the store")
}

func TestSessionIndex_SlotTakenMissFallsThrough(t *testing.T) {
	inner := &fakeRepository{
		appointments: []*entities.Appointment{
			{ID: "1", Date: "2025-03-03", Time: "10:00", Dermatologist: "Dr. Ariyathunga"},
		},
	}
	repo := database.NewSessionIndexedRepository(inner)

	// The index knows nothing about rows persisted by earlier sessions;
	// the store stays the source of truth.
	taken, err := repo.SlotTaken(context.Background(), "2025-03-03", "10:00", "Dr. Ariyathunga")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.Equal(t, 1, inner.slotTakenCalls)
}

func TestSessionIndex_ListByDateCachedPerSession(t *testing.T) {
	inner := &fakeRepository{
		appointments: []*entities.Appointment{
			{ID: "1", Date: "2025-03-03", Time: "10:00", Dermatologist: "Dr. Ariyathunga"},
		},
	}
	repo := database.NewSessionIndexedRepository(inner)
	ctx := context.Background()

	first, err := repo.ListByDate(ctx, "2025-03-03")
	require.NoError(t, err)
	second, err := repo.ListByDate(ctx, "2025-03-03")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.listCalls, "second day view should hit the index")
}

func TestSessionIndex_SaveRefreshesDayViewInTimeOrder(t *testing.T) {
	inner := &fakeRepository{
		appointments: []*entities.Appointment{
			{ID: "1", Date: "2025-03-03", Time: "10:30", Dermatologist: "Dr. Ariyathunga"},
		},
	}
	repo := database.NewSessionIndexedRepository(inner)
	ctx := context.Background()

	_, err := repo.ListByDate(ctx, "2025-03-03")
	require.NoError(t, err)

	// A booking earlier in the day lands mid-session.
	_, err = repo.Save(ctx, &entities.Appointment{
		ID: "2", Date: "2025-03-03", Time: "10:00", Dermatologist: "Dr. Jayaweera",
	})
	require.NoError(t, err)

	appointments, err := repo.ListByDate(ctx, "2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls, "save must mark the cached day stale")
	require.Len(t, appointments, 2)
	assert.Equal(t, "10:00", appointments[0].Time)
	assert.Equal(t, "10:30", appointments[1].Time)
}

func TestSessionIndex_UpdateInvalidatesIndex(t *testing.T) {
	inner := &fakeRepository{
		appointments: []*entities.Appointment{
			{ID: "1", Date: "2025-03-03", Time: "10:00", Dermatologist: "Dr. Ariyathunga"},
		},
	}
	repo := database.NewSessionIndexedRepository(inner)
	ctx := context.Background()

	_, err := repo.ListByDate(ctx, "2025-03-03")
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, inner.appointments[0]))

	_, err = repo.ListByDate(ctx, "2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls, "update must drop the cached day")
}
