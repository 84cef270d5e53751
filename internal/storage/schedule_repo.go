package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ScheduleRepo reads dated practice slots. Schedules are clinic-public
// directory data: no ownership scope applies, only field projection.
// It implements CollectionStore.
type ScheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates a new ScheduleRepo.
func NewScheduleRepo(db *gorm.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (r *ScheduleRepo) Name() string { return CollectionSchedules }

func (r *ScheduleRepo) HasDateField() bool { return true }

type scheduleRow struct {
	Schedule
	DoctorName     string
	Specialization string
}

func (r *ScheduleRepo) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("schedules").
		Select("schedules.*, doctors.name AS doctor_name, doctors.specialization AS specialization").
		Joins("JOIN doctors ON doctors.id = schedules.doctor_id")
}

func (r *ScheduleRepo) GetByIDs(ctx context.Context, ids []int64, owner Ownership) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []scheduleRow
	if err := r.baseQuery(ctx).Where("schedules.id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query schedules: %w", err)
	}
	return scheduleRecords(rows), nil
}

func (r *ScheduleRepo) FindByDateRange(ctx context.Context, q RangeQuery) ([]Record, error) {
	query := r.baseQuery(ctx)
	if q.From != nil {
		query = query.Where("schedules.date >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("schedules.date <= ?", *q.To)
	}
	query = query.Order("schedules.date " + sortDirection(q.Sort))
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	var rows []scheduleRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query schedules by date: %w", err)
	}
	return scheduleRecords(rows), nil
}

func (r *ScheduleRepo) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).Model(&Schedule{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list schedule ids: %w", err)
	}
	return ids, nil
}

func scheduleRecords(rows []scheduleRow) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		date := row.Date
		availability := "penuh"
		if row.Available {
			availability = "tersedia"
		}
		records = append(records, Record{
			ID: row.ID,
			EmbedText: fmt.Sprintf("Jadwal praktik dokter %s spesialisasi %s hari %s tanggal %s jam %s sampai %s kuota %d %s",
				row.DoctorName, row.Specialization, row.Day, date.Format(dateLayout), row.StartTime, row.EndTime, row.Quota, availability),
			Date: timePtr(date),
			Fields: map[string]any{
				"doctor_name":    row.DoctorName,
				"specialization": row.Specialization,
				"day":            row.Day,
				"date":           date.Format(dateLayout),
				"start_time":     row.StartTime,
				"end_time":       row.EndTime,
				"quota":          row.Quota,
				"available":      row.Available,
			},
			DoctorID: row.DoctorID,
		})
	}
	return records
}
