package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DoctorRepo reads the clinician directory. The directory is not
// party-scoped; projection decides which fields each role may see.
// It implements CollectionStore.
type DoctorRepo struct {
	db *gorm.DB
}

// NewDoctorRepo creates a new DoctorRepo.
func NewDoctorRepo(db *gorm.DB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

func (r *DoctorRepo) Name() string { return CollectionDoctors }

func (r *DoctorRepo) HasDateField() bool { return false }

func (r *DoctorRepo) GetByIDs(ctx context.Context, ids []int64, owner Ownership) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var doctors []Doctor
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to query doctors: %w", err)
	}

	records := make([]Record, 0, len(doctors))
	for _, d := range doctors {
		records = append(records, doctorRecord(d))
	}
	return records, nil
}

func (r *DoctorRepo) FindByDateRange(ctx context.Context, q RangeQuery) ([]Record, error) {
	return nil, nil
}

func (r *DoctorRepo) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&Doctor{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctor ids: %w", err)
	}
	return ids, nil
}

func doctorRecord(d Doctor) Record {
	return Record{
		ID: d.ID,
		EmbedText: fmt.Sprintf("Dokter %s spesialisasi %s, telepon %s, email %s",
			d.Name, d.Specialization, d.Phone, d.Email),
		Fields: map[string]any{
			"name":           d.Name,
			"specialization": d.Specialization,
			"phone":          d.Phone,
			"email":          d.Email,
		},
		DoctorID: d.ID,
	}
}
