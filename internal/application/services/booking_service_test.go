package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/auroraskincare/clinic-booking/internal/application/services"
	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	"github.com/auroraskincare/clinic-booking/internal/domain/repositories"
	apperrors "github.com/auroraskincare/clinic-booking/pkg/errors"
)

// Mocks

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Exists(ctx context.Context, date, timeOfDay, nic string) (bool, error) {
	args := m.Called(ctx, date, timeOfDay, nic)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) SlotTaken(ctx context.Context, date, timeOfDay, dermatologist string) (bool, error) {
	args := m.Called(ctx, date, timeOfDay, dermatologist)
	return args.Bool(0), args.Error(1)
}

func (m *MockAppointmentRepository) Save(ctx context.Context, appointment *entities.Appointment) (repositories.SaveOutcome, error) {
	args := m.Called(ctx, appointment)
	return args.Get(0).(repositories.SaveOutcome), args.Error(1)
}

func (m *MockAppointmentRepository) LastID(ctx context.Context) (int, bool, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Search(ctx context.Context, term string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) ListByDate(ctx context.Context, date string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func validAppointment() *entities.Appointment {
	return &entities.Appointment{
		ID: "1",
		Patient: entities.Patient{
			NIC:   "123456789V",
			Name:  "Nimal Perera",
			Email: "nimal@example.com",
			Phone: "0771234567",
		},
		Date:          "2025-03-03",
		Time:          "10:00",
		Dermatologist: "Dr. Ariyathunga",
		Treatments:    []string{"Acne Treatment"},
	}
}

// Tests

func TestBookingService_Book(t *testing.T) {
	t.Run("books and prices the appointment", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

		appointment := validAppointment()

		repo.On("SlotTaken", mock.Anything, "2025-03-03", "10:00", "Dr. Ariyathunga").Return(false, nil)
		repo.On("Save", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.TotalCost.StringFixed(2) == "3318.75"
		})).Return(repositories.SaveOutcome{Status: repositories.SaveStatusSaved, ID: "1"}, nil)

		outcome, err := svc.Book(context.Background(), appointment)

		require.NoError(t, err)
		assert.Equal(t, repositories.SaveStatusSaved, outcome.Status)
		assert.Equal(t, "1", outcome.ID)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an invalid patient before touching the store", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

		appointment := validAppointment()
		appointment.Patient.Phone = "077123" // too short

		_, err := svc.Book(context.Background(), appointment)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		repo.AssertNotCalled(t, "Save")
		repo.AssertNotCalled(t, "SlotTaken")
	})

	t.Run("refuses a taken slot", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

		repo.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		_, err := svc.Book(context.Background(), validAppointment())

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("propagates a duplicate outcome", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

		repo.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(repositories.SaveOutcome{Status: repositories.SaveStatusDuplicate}, nil)

		outcome, err := svc.Book(context.Background(), validAppointment())

		require.NoError(t, err)
		assert.Equal(t, repositories.SaveStatusDuplicate, outcome.Status)
	})
}

func TestBookingService_NextID(t *testing.T) {
	t.Run("increments the last id", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

		repo.On("LastID", mock.Anything).Return(41, true, nil)

		id, err := svc.NextID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "42", id)
	})

	t.Run("starts at one for an empty table", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

		repo.On("LastID", mock.Anything).Return(0, false, nil)

		id, err := svc.NextID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "1", id)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		repo := new(MockAppointmentRepository)
		svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

		repo.On("LastID", mock.Anything).Return(0, false, errors.New("connection refused"))

		_, err := svc.NextID(context.Background())
		assert.Error(t, err)
	})
}

func TestBookingService_Recalculate(t *testing.T) {
	svc := services.NewBookingService(new(MockAppointmentRepository), services.NewPricingService(defaultClinic()), zerolog.Nop())

	appointment := validAppointment()
	appointment.Treatments = []string{"Acne Treatment", "Mole Removal"}

	svc.Recalculate(appointment)
	assert.Equal(t, "7265.00", appointment.TotalCost.StringFixed(2))

	appointment.Treatments = nil
	svc.Recalculate(appointment)
	assert.Equal(t, "500.00", appointment.TotalCost.StringFixed(2))
}

func TestBookingService_Update(t *testing.T) {
	repo := new(MockAppointmentRepository)
	svc := services.NewBookingService(repo, services.NewPricingService(defaultClinic()), zerolog.Nop())

	appointment := validAppointment()
	appointment.Treatments = []string{"Laser Treatment"}

	repo.On("Update", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
		// 500 + 12500 + 312.50
		return a.TotalCost.StringFixed(2) == "13312.50"
	})).Return(nil)

	require.NoError(t, svc.Update(context.Background(), appointment))
	repo.AssertExpectations(t)
}
