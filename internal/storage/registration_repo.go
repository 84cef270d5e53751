package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"klinik-ai/internal/privacy"
)

// RegistrationRepo reads visit registrations, denormalizing party names.
// It implements CollectionStore.
type RegistrationRepo struct {
	db *gorm.DB
}

// NewRegistrationRepo creates a new RegistrationRepo.
func NewRegistrationRepo(db *gorm.DB) *RegistrationRepo {
	return &RegistrationRepo{db: db}
}

func (r *RegistrationRepo) Name() string { return CollectionRegistrations }

func (r *RegistrationRepo) HasDateField() bool { return true }

type registrationRow struct {
	Registration
	PatientName string
	DoctorName  string
}

func (r *RegistrationRepo) baseQuery(ctx context.Context, owner Ownership) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("registrations").
		Select("registrations.*, patients.name AS patient_name, doctors.name AS doctor_name").
		Joins("JOIN patients ON patients.id = registrations.patient_id").
		Joins("JOIN doctors ON doctors.id = registrations.doctor_id")

	switch owner.Role {
	case privacy.RolePatient:
		query = query.Where("registrations.patient_id = ?", owner.UserID)
	case privacy.RoleDoctor:
		query = query.Where("registrations.doctor_id = ?", owner.UserID)
	case privacy.RoleAdmin:
	}
	return query
}

func (r *RegistrationRepo) GetByIDs(ctx context.Context, ids []int64, owner Ownership) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []registrationRow
	if err := r.baseQuery(ctx, owner).Where("registrations.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	return registrationRecords(rows), nil
}

func (r *RegistrationRepo) FindByDateRange(ctx context.Context, q RangeQuery) ([]Record, error) {
	query := r.baseQuery(ctx, q.Owner)
	if q.From != nil {
		query = query.Where("registrations.registration_date >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("registrations.registration_date <= ?", *q.To)
	}
	query = query.Order("registrations.registration_date " + sortDirection(q.Sort))
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []registrationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query registrations by date: %w", err)
	}
	return registrationRecords(rows), nil
}

func (r *RegistrationRepo) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&Registration{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list registration ids: %w", err)
	}
	return ids, nil
}

func registrationRecords(rows []registrationRow) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		date := row.RegistrationDate
		records = append(records, Record{
			ID: row.ID,
			EmbedText: fmt.Sprintf("Pendaftaran pasien %s ke dokter %s poli %s tanggal %s nomor antrian %d status %s keluhan %s",
				row.PatientName, row.DoctorName, row.Poli, date.Format(dateLayout), row.QueueNumber, row.Status, row.Complaint),
			Date: timePtr(date),
			Fields: map[string]any{
				"patient_name":      row.PatientName,
				"doctor_name":       row.DoctorName,
				"poli":              row.Poli,
				"registration_date": date.Format(dateLayout),
				"queue_number":      row.QueueNumber,
				"status":            row.Status,
				"complaint":         row.Complaint,
			},
			PatientID: row.PatientID,
			DoctorID:  row.DoctorID,
		})
	}
	return records
}

// sortDirection whitelists the ORDER BY direction; anything but "asc" sorts
// newest first.
func sortDirection(sort string) string {
	if sort == "asc" {
		return "ASC"
	}
	return "DESC"
}

func timePtr(t time.Time) *time.Time {
	return &t
}
