package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"klinik-ai/internal/privacy"
)

// ExaminationRepo reads clinical examination outcomes, denormalizing the
// patient and doctor names. It implements CollectionStore.
type ExaminationRepo struct {
	db *gorm.DB
}

// NewExaminationRepo creates a new ExaminationRepo.
func NewExaminationRepo(db *gorm.DB) *ExaminationRepo {
	return &ExaminationRepo{db: db}
}

func (r *ExaminationRepo) Name() string { return CollectionExaminations }

func (r *ExaminationRepo) HasDateField() bool { return true }

type examinationRow struct {
	Examination
	PatientName string
	DoctorName  string
}

func (r *ExaminationRepo) baseQuery(ctx context.Context, owner Ownership) *gorm.DB {
	query := r.db.WithContext(ctx).
		Table("examinations").
		Select("examinations.*, patients.name AS patient_name, doctors.name AS doctor_name").
		Joins("JOIN patients ON patients.id = examinations.patient_id").
		Joins("JOIN doctors ON doctors.id = examinations.doctor_id")

	switch owner.Role {
	case privacy.RolePatient:
		query = query.Where("examinations.patient_id = ?", owner.UserID)
	case privacy.RoleDoctor:
		query = query.Where("examinations.doctor_id = ?", owner.UserID)
	case privacy.RoleAdmin:
	}
	return query
}

func (r *ExaminationRepo) GetByIDs(ctx context.Context, ids []int64, owner Ownership) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []examinationRow
	if err := r.baseQuery(ctx, owner).Where("examinations.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query examinations: %w", err)
	}
	return examinationRecords(rows), nil
}

func (r *ExaminationRepo) FindByDateRange(ctx context.Context, q RangeQuery) ([]Record, error) {
	query := r.baseQuery(ctx, q.Owner)
	if q.From != nil {
		query = query.Where("examinations.examination_date >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("examinations.examination_date <= ?", *q.To)
	}
	query = query.Order("examinations.examination_date " + sortDirection(q.Sort))
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []examinationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query examinations by date: %w", err)
	}
	return examinationRecords(rows), nil
}

func (r *ExaminationRepo) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&Examination{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list examination ids: %w", err)
	}
	return ids, nil
}

func examinationRecords(rows []examinationRow) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		date := row.ExaminationDate
		records = append(records, Record{
			ID: row.ID,
			EmbedText: fmt.Sprintf("Pemeriksaan pasien %s oleh dokter %s tanggal %s keluhan %s diagnosis %s resep %s catatan %s",
				row.PatientName, row.DoctorName, date.Format(dateLayout), row.Symptoms, row.Diagnosis, row.Prescription, row.Notes),
			Date: timePtr(date),
			Fields: map[string]any{
				"patient_name":     row.PatientName,
				"doctor_name":      row.DoctorName,
				"examination_date": date.Format(dateLayout),
				"symptoms":         row.Symptoms,
				"diagnosis":        row.Diagnosis,
				"prescription":     row.Prescription,
				"notes":            row.Notes,
			},
			PatientID: row.PatientID,
			DoctorID:  row.DoctorID,
		})
	}
	return records
}
