package assistant

import (
	"strings"

	"klinik-ai/internal/storage"
)

// Router predicts which collections a query is about from static keyword
// maps. The maps are immutable configuration injected at construction.
type Router struct {
	keywords     map[string][]string
	availability []string
	all          []string
}

// NewRouter creates a Router over the given keyword map. order fixes the
// collection iteration order; availability phrases force the schedule
// collection to the front when matched.
func NewRouter(keywords map[string][]string, availability []string, order []string) *Router {
	return &Router{keywords: keywords, availability: availability, all: order}
}

// DefaultRouter returns the clinic keyword routing table.
func DefaultRouter() *Router {
	return NewRouter(
		map[string][]string{
			storage.CollectionPatients: {
				"pasien", "patient", "rekam medis", "data diri", "identitas",
			},
			storage.CollectionDoctors: {
				"dokter", "doctor", "spesialis", "poli",
			},
			storage.CollectionRegistrations: {
				"pendaftaran", "daftar", "registrasi", "antrian", "antri", "kunjungan", "berobat",
			},
			storage.CollectionExaminations: {
				"pemeriksaan", "periksa", "diagnosis", "diagnosa", "keluhan",
				"obat", "resep", "hasil", "riwayat", "gejala", "sakit",
			},
			storage.CollectionSchedules: {
				"jadwal", "schedule", "praktik", "praktek", "jam buka", "shift",
			},
		},
		[]string{
			"kapan", "tersedia", "available", "jam berapa", "hari apa",
			"bisa konsultasi", "buka jam", "ada jadwal",
		},
		storage.Collections(),
	)
}

// Route returns the predicted collections in search order. Zero keyword
// matches fall back to every known collection: recall beats precision here,
// the re-ranker cleans up afterwards.
func (r *Router) Route(query string) []string {
	q := strings.ToLower(query)

	var matched []string
	for _, collection := range r.all {
		for _, keyword := range r.keywords[collection] {
			if strings.Contains(q, keyword) {
				matched = append(matched, collection)
				break
			}
		}
	}

	if len(matched) == 0 {
		matched = append(matched, r.all...)
	}

	// Availability phrasing always promotes schedules to the front.
	for _, phrase := range r.availability {
		if strings.Contains(q, phrase) {
			matched = promote(matched, storage.CollectionSchedules)
			break
		}
	}

	return matched
}

// promote moves name to the front of list, adding it when absent.
func promote(list []string, name string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, name)
	for _, item := range list {
		if item != name {
			out = append(out, item)
		}
	}
	return out
}
