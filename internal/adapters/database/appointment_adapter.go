package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/auroraskincare/clinic-booking/internal/domain/entities"
	"github.com/auroraskincare/clinic-booking/internal/domain/repositories"
	"github.com/auroraskincare/clinic-booking/internal/infrastructure/clients/postgres"
	apperrors "github.com/auroraskincare/clinic-booking/pkg/errors"
)

const appointmentsTable = "appointments"

var digitsOnly = regexp.MustCompile(`^\d+$`)

var appointmentColumns = []interface{}{
	"id", "date", "time", "dermatologist",
	"patient_nic", "patient_name", "patient_email", "patient_phone",
	"treatments", "total_cost",
}

// AppointmentAdapter implements the AppointmentRepository interface
// against the appointments table.
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) *AppointmentAdapter {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// EnsureSchema creates the appointments table if it does not exist yet.
func (a *AppointmentAdapter) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS appointments (
			id            SERIAL PRIMARY KEY,
			date          TEXT NOT NULL,
			time          TEXT NOT NULL,
			dermatologist TEXT NOT NULL,
			patient_nic   TEXT NOT NULL,
			patient_name  TEXT NOT NULL,
			patient_email TEXT NOT NULL,
			patient_phone TEXT NOT NULL,
			treatments    TEXT NOT NULL DEFAULT '',
			total_cost    NUMERIC(12,2) NOT NULL DEFAULT 0
		)`

	if _, err := a.client.DB().ExecContext(ctx, ddl); err != nil {
		return apperrors.NewInternalError("failed to create appointments table", err)
	}
	return nil
}

// Exists reports whether the patient already holds an appointment at the
// given date and time. Note the key is the patient NIC, not the
// dermatologist; slot conflicts use SlotTaken instead.
func (a *AppointmentAdapter) Exists(ctx context.Context, date, timeOfDay, nic string) (bool, error) {
	return a.countMatches(ctx, goqu.Ex{
		"date":        date,
		"time":        timeOfDay,
		"patient_nic": nic,
	})
}

// SlotTaken reports whether the dermatologist is already booked for the
// given date and time.
func (a *AppointmentAdapter) SlotTaken(ctx context.Context, date, timeOfDay, dermatologist string) (bool, error) {
	return a.countMatches(ctx, goqu.Ex{
		"date":          date,
		"time":          timeOfDay,
		"dermatologist": dermatologist,
	})
}

func (a *AppointmentAdapter) countMatches(ctx context.Context, where goqu.Ex) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From(appointmentsTable).
		Where(where).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to count appointments", err)
	}
	return count > 0, nil
}

// Save inserts the appointment unless the patient already has one at the
// same date and time. Duplicates are skipped without touching the table
// and reported through the outcome, never silently.
func (a *AppointmentAdapter) Save(ctx context.Context, appointment *entities.Appointment) (repositories.SaveOutcome, error) {
	exists, err := a.Exists(ctx, appointment.Date, appointment.Time, appointment.Patient.NIC)
	if err != nil {
		return repositories.SaveOutcome{}, err
	}
	if exists {
		log.Warn().
			Str("patient_name", appointment.Patient.Name).
			Str("date", appointment.Date).
			Str("time", appointment.Time).
			Msg("appointment already exists, skipping insert")
		return repositories.SaveOutcome{Status: repositories.SaveStatusDuplicate}, nil
	}

	record := goqu.Record{
		"date":          appointment.Date,
		"time":          appointment.Time,
		"dermatologist": appointment.Dermatologist,
		"patient_nic":   appointment.Patient.NIC,
		"patient_name":  appointment.Patient.Name,
		"patient_email": appointment.Patient.Email,
		"patient_phone": appointment.Patient.Phone,
		"treatments":    entities.JoinTreatments(appointment.Treatments),
		"total_cost":    appointment.TotalCost.StringFixed(2),
	}

	query, args, err := a.db.Insert(appointmentsTable).
		Rows(record).
		Returning("id").
		ToSQL()
	if err != nil {
		return repositories.SaveOutcome{}, apperrors.NewInternalError("failed to build insert query", err)
	}

	var id int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return repositories.SaveOutcome{}, apperrors.NewInternalError("failed to save appointment", err)
	}

	assigned := strconv.FormatInt(id, 10)
	appointment.ID = assigned
	log.Info().Str("appointment_id", assigned).Msg("appointment saved")

	return repositories.SaveOutcome{Status: repositories.SaveStatusSaved, ID: assigned}, nil
}

// LastID returns the highest assigned appointment id, or false when the
// table is empty.
func (a *AppointmentAdapter) LastID(ctx context.Context) (int, bool, error) {
	query, args, err := a.db.Select("id").
		From(appointmentsTable).
		Order(goqu.I("id").Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, apperrors.NewInternalError("failed to build last id query", err)
	}

	var id int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, apperrors.NewInternalError("failed to read last appointment id", err)
	}
	return id, true, nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment, err := scanAppointment(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}
	return appointment, nil
}

// Search dispatches on the shape of term: all digits is an exact id
// lookup, a date literal is an exact date match, anything else matches
// the patient name case-insensitively as a substring.
func (a *AppointmentAdapter) Search(ctx context.Context, term string) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).From(appointmentsTable)

	switch {
	case digitsOnly.MatchString(term):
		ds = ds.Where(goqu.Ex{"id": term})
	case isDateLiteral(term):
		ds = ds.Where(goqu.Ex{"date": term}).Order(goqu.I("time").Asc())
	default:
		ds = ds.Where(goqu.C("patient_name").ILike("%" + term + "%")).Order(goqu.I("id").Asc())
	}

	return a.queryAppointments(ctx, ds)
}

// ListByDate returns all appointments on a calendar date ordered by time.
func (a *AppointmentAdapter) ListByDate(ctx context.Context, date string) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(goqu.Ex{"date": date}).
		Order(goqu.I("time").Asc())

	return a.queryAppointments(ctx, ds)
}

// Update overwrites every column of the row matching the appointment's
// id. Callers are expected to have reloaded the appointment at the start
// of the edit session so no stale in-memory field leaks back.
func (a *AppointmentAdapter) Update(ctx context.Context, appointment *entities.Appointment) error {
	record := goqu.Record{
		"date":          appointment.Date,
		"time":          appointment.Time,
		"dermatologist": appointment.Dermatologist,
		"patient_nic":   appointment.Patient.NIC,
		"patient_name":  appointment.Patient.Name,
		"patient_email": appointment.Patient.Email,
		"patient_phone": appointment.Patient.Phone,
		"treatments":    entities.JoinTreatments(appointment.Treatments),
		"total_cost":    appointment.TotalCost.StringFixed(2),
	}

	query, args, err := a.db.Update(appointmentsTable).
		Set(record).
		Where(goqu.Ex{"id": appointment.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", appointment.ID))
	}

	log.Info().Str("appointment_id", appointment.ID).Msg("appointment updated")
	return nil
}

func (a *AppointmentAdapter) queryAppointments(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Appointment, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate appointments", err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*entities.Appointment, error) {
	var (
		appointment entities.Appointment
		id          int64
		treatments  sql.NullString
		totalCost   sql.NullString
	)

	err := row.Scan(
		&id,
		&appointment.Date,
		&appointment.Time,
		&appointment.Dermatologist,
		&appointment.Patient.NIC,
		&appointment.Patient.Name,
		&appointment.Patient.Email,
		&appointment.Patient.Phone,
		&treatments,
		&totalCost,
	)
	if err != nil {
		return nil, err
	}

	appointment.ID = strconv.FormatInt(id, 10)
	appointment.Treatments = entities.SplitTreatments(treatments.String)
	appointment.TotalCost = parseTotalCost(totalCost)

	return &appointment, nil
}

// parseTotalCost defaults to zero for blank or malformed values so a
// damaged row still loads instead of failing the whole lookup.
func parseTotalCost(raw sql.NullString) decimal.Decimal {
	if !raw.Valid || raw.String == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw.String)
	if err != nil {
		log.Warn().Str("total_cost", raw.String).Msg("malformed total cost, defaulting to zero")
		return decimal.Zero
	}
	return value
}

func isDateLiteral(term string) bool {
	_, err := time.Parse("2006-01-02", term)
	return err == nil
}
