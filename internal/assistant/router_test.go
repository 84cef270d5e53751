package assistant

import (
	"reflect"
	"testing"

	"klinik-ai/internal/storage"
)

func TestRouter_Route(t *testing.T) {
	router := DefaultRouter()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "schedule keyword",
			query: "jadwal dokter gigi",
			want:  []string{storage.CollectionDoctors, storage.CollectionSchedules},
		},
		{
			name:  "examination keyword",
			query: "hasil diagnosis saya",
			want:  []string{storage.CollectionExaminations},
		},
		{
			name:  "registration keyword",
			query: "nomor antrian pendaftaran",
			want:  []string{storage.CollectionRegistrations},
		},
		{
			name:  "multiple collections in stable order",
			query: "pendaftaran pemeriksaan pasien",
			want: []string{
				storage.CollectionPatients,
				storage.CollectionRegistrations,
				storage.CollectionExaminations,
			},
		},
		{
			name:  "zero matches returns all collections",
			query: "halo selamat pagi",
			want:  storage.Collections(),
		},
		{
			name:  "availability phrasing promotes schedules",
			query: "kapan dokter anak tersedia",
			want:  []string{storage.CollectionSchedules, storage.CollectionDoctors},
		},
		{
			name:  "availability with zero keyword matches fronts schedules over all",
			query: "kapan saja bisa berkunjung",
			want: []string{
				storage.CollectionSchedules,
				storage.CollectionPatients,
				storage.CollectionDoctors,
				storage.CollectionRegistrations,
				storage.CollectionExaminations,
			},
		},
		{
			name:  "availability with keyword match keeps schedules first",
			query: "jam berapa praktik dokter gigi",
			want:  []string{storage.CollectionSchedules, storage.CollectionDoctors},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := router.Route(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Route(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestRouter_Route_CaseInsensitive(t *testing.T) {
	router := DefaultRouter()

	got := router.Route("JADWAL Dokter")
	want := []string{storage.CollectionDoctors, storage.CollectionSchedules}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Route() = %v, want %v", got, want)
	}
}
