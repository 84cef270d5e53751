package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"klinik-ai/internal/privacy"
)

const dateLayout = "2006-01-02"

// PatientRepo reads the patient master collection.
// It implements CollectionStore.
type PatientRepo struct {
	db *gorm.DB
}

// NewPatientRepo creates a new PatientRepo.
func NewPatientRepo(db *gorm.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Name() string { return CollectionPatients }

func (r *PatientRepo) HasDateField() bool { return false }

// GetByIDs fetches patients by id. A patient is only ever a party to their
// own master record; doctors reach patient identity through visit records,
// never through the directory.
func (r *PatientRepo) GetByIDs(ctx context.Context, ids []int64, owner Ownership) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("id IN ?", ids)
	switch owner.Role {
	case privacy.RolePatient:
		query = query.Where("id = ?", owner.UserID)
	case privacy.RoleDoctor:
		return nil, nil
	case privacy.RoleAdmin:
	}

	var patients []Patient
	if err := query.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}

	records := make([]Record, 0, len(patients))
	for _, p := range patients {
		records = append(records, patientRecord(p))
	}
	return records, nil
}

// FindByDateRange is unsupported: the patient directory has no query-visible
// date field.
func (r *PatientRepo) FindByDateRange(ctx context.Context, q RangeQuery) ([]Record, error) {
	return nil, nil
}

// ListIDs returns every patient id for index maintenance.
func (r *PatientRepo) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&Patient{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list patient ids: %w", err)
	}
	return ids, nil
}

func patientRecord(p Patient) Record {
	birth := p.BirthDate.Format(dateLayout)
	return Record{
		ID: p.ID,
		EmbedText: fmt.Sprintf("Data pasien %s nomor rekam medis %s, jenis kelamin %s, lahir %s, telepon %s, alamat %s",
			p.Name, p.MedicalRecordNumber, p.Gender, birth, p.Phone, p.Address),
		Fields: map[string]any{
			"name":                  p.Name,
			"medical_record_number": p.MedicalRecordNumber,
			"gender":                p.Gender,
			"birth_date":            birth,
			"phone":                 p.Phone,
			"address":               p.Address,
		},
		PatientID: p.ID,
	}
}
