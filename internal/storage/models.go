package storage

import "time"

// Logical collection names, shared by the vector index, the router and the
// projection policy.
const (
	CollectionPatients      = "patients"
	CollectionDoctors       = "doctors"
	CollectionRegistrations = "registrations"
	CollectionExaminations  = "examinations"
	CollectionSchedules     = "schedules"
)

// Collections lists every known collection in stable order.
func Collections() []string {
	return []string{
		CollectionPatients,
		CollectionDoctors,
		CollectionRegistrations,
		CollectionExaminations,
		CollectionSchedules,
	}
}

// Patient is a clinic patient master record.
type Patient struct {
	ID                  int64  `gorm:"primaryKey"`
	MedicalRecordNumber string `gorm:"size:32;uniqueIndex"`
	Name                string `gorm:"size:128"`
	Gender              string `gorm:"size:16"`
	BirthDate           time.Time
	Phone               string `gorm:"size:32"`
	Address             string `gorm:"size:255"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Doctor is a clinician master record.
type Doctor struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"size:128"`
	Specialization string `gorm:"size:64"`
	Phone          string `gorm:"size:32"`
	Email          string `gorm:"size:128"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Registration is a visit registration tying a patient to a doctor and poli.
type Registration struct {
	ID               int64 `gorm:"primaryKey"`
	PatientID        int64 `gorm:"index"`
	DoctorID         int64 `gorm:"index"`
	Poli             string
	RegistrationDate time.Time `gorm:"index"`
	QueueNumber      int
	Status           string `gorm:"size:32"`
	Complaint        string `gorm:"size:512"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Examination is the clinical outcome of a visit.
type Examination struct {
	ID              int64 `gorm:"primaryKey"`
	RegistrationID  int64 `gorm:"index"`
	PatientID       int64 `gorm:"index"`
	DoctorID        int64 `gorm:"index"`
	ExaminationDate time.Time `gorm:"index"`
	Symptoms        string    `gorm:"size:1024"`
	Diagnosis       string    `gorm:"size:1024"`
	Prescription    string    `gorm:"size:1024"`
	Notes           string    `gorm:"size:1024"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Schedule is a dated practice slot for a doctor.
type Schedule struct {
	ID        int64 `gorm:"primaryKey"`
	DoctorID  int64 `gorm:"index"`
	Day       string    `gorm:"size:16"`
	Date      time.Time `gorm:"index"`
	StartTime string    `gorm:"size:8"`
	EndTime   string    `gorm:"size:8"`
	Quota     int
	Available bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
