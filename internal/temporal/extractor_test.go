package temporal

import (
	"testing"
	"time"
)

// 2025-03-19 is a Wednesday.
var testNow = time.Date(2025, time.March, 19, 14, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.UTC)
}

func TestExtract_NoTemporalVocabulary(t *testing.T) {
	for _, q := range []string{
		"",
		"siapa dokter gigi di klinik",
		"berapa biaya pemeriksaan umum",
	} {
		info := Extract(q, testNow)
		if info.HasTemporalQuery {
			t.Errorf("Extract(%q).HasTemporalQuery = true, want false", q)
		}
		if info.DateFrom != nil || info.DateTo != nil || info.SortOrder != "" || info.Limit != 0 {
			t.Errorf("Extract(%q) = %+v, want zero Info", q, info)
		}
	}
}

func TestExtract_Categories(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantRelative string
		wantFrom     time.Time
		wantTo       time.Time
		wantSort     string
		wantLimit    int
	}{
		{
			name:         "today with day bounds",
			query:        "jadwal dokter gigi hari ini",
			wantRelative: "today",
			wantFrom:     date(2025, time.March, 19, 0, 0, 0),
			wantTo:       date(2025, time.March, 19, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "yesterday",
			query:        "pendaftaran kemarin",
			wantRelative: "yesterday",
			wantFrom:     date(2025, time.March, 18, 0, 0, 0),
			wantTo:       date(2025, time.March, 18, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "this week starts monday",
			query:        "pemeriksaan minggu ini",
			wantRelative: "this_week",
			wantFrom:     date(2025, time.March, 17, 0, 0, 0),
			wantTo:       date(2025, time.March, 23, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "week kemarin is last week not yesterday",
			query:        "kunjungan minggu kemarin",
			wantRelative: "last_week",
			wantFrom:     date(2025, time.March, 10, 0, 0, 0),
			wantTo:       date(2025, time.March, 16, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "last week",
			query:        "kunjungan minggu lalu",
			wantRelative: "last_week",
			wantFrom:     date(2025, time.March, 10, 0, 0, 0),
			wantTo:       date(2025, time.March, 16, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "this month",
			query:        "pendaftaran bulan ini",
			wantRelative: "this_month",
			wantFrom:     date(2025, time.March, 1, 0, 0, 0),
			wantTo:       date(2025, time.March, 31, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "last month spans first to last day",
			query:        "riwayat pemeriksaan bulan lalu",
			wantRelative: "last_month",
			wantFrom:     date(2025, time.February, 1, 0, 0, 0),
			wantTo:       date(2025, time.February, 28, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "this year",
			query:        "semua kunjungan tahun ini",
			wantRelative: "this_year",
			wantFrom:     date(2025, time.January, 1, 0, 0, 0),
			wantTo:       date(2025, time.December, 31, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "last year",
			query:        "imunisasi tahun lalu",
			wantRelative: "last_year",
			wantFrom:     date(2024, time.January, 1, 0, 0, 0),
			wantTo:       date(2024, time.December, 31, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "last N days includes today",
			query:        "pemeriksaan 7 hari terakhir",
			wantRelative: "last_7_days",
			wantFrom:     date(2025, time.March, 13, 0, 0, 0),
			wantTo:       date(2025, time.March, 19, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "last N weeks",
			query:        "kunjungan 3 minggu terakhir",
			wantRelative: "last_3_weeks",
			wantFrom:     date(2025, time.February, 26, 0, 0, 0),
			wantTo:       date(2025, time.March, 19, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "last N months",
			query:        "resep 2 bulan terakhir",
			wantRelative: "last_2_months",
			wantFrom:     date(2025, time.January, 19, 0, 0, 0),
			wantTo:       date(2025, time.March, 19, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "named date",
			query:        "pendaftaran 12 januari 2025",
			wantRelative: "specific_date",
			wantFrom:     date(2025, time.January, 12, 0, 0, 0),
			wantTo:       date(2025, time.January, 12, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "numeric date day first",
			query:        "jadwal 05/02/2025",
			wantRelative: "specific_date",
			wantFrom:     date(2025, time.February, 5, 0, 0, 0),
			wantTo:       date(2025, time.February, 5, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "explicit range",
			query:        "pemeriksaan dari 1 januari 2025 sampai 31 januari 2025",
			wantRelative: "date_range",
			wantFrom:     date(2025, time.January, 1, 0, 0, 0),
			wantTo:       date(2025, time.January, 31, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
		{
			name:         "reversed range is normalized",
			query:        "data antara 31 januari 2025 dan 1 januari 2025",
			wantRelative: "date_range",
			wantFrom:     date(2025, time.January, 1, 0, 0, 0),
			wantTo:       date(2025, time.January, 31, 23, 59, 59),
			wantLimit:    DefaultLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract(tt.query, testNow)

			if !info.HasTemporalQuery {
				t.Fatalf("Extract(%q).HasTemporalQuery = false, want true", tt.query)
			}
			if info.RelativeTime != tt.wantRelative {
				t.Errorf("RelativeTime = %q, want %q", info.RelativeTime, tt.wantRelative)
			}
			if info.DateFrom == nil || !info.DateFrom.Equal(tt.wantFrom) {
				t.Errorf("DateFrom = %v, want %v", info.DateFrom, tt.wantFrom)
			}
			if info.DateTo == nil || !info.DateTo.Equal(tt.wantTo) {
				t.Errorf("DateTo = %v, want %v", info.DateTo, tt.wantTo)
			}
			if info.SortOrder != tt.wantSort {
				t.Errorf("SortOrder = %q, want %q", info.SortOrder, tt.wantSort)
			}
			if info.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", info.Limit, tt.wantLimit)
			}
		})
	}
}

func TestExtract_RecencyAndEarliest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSort  string
		wantLimit int
	}{
		{
			name:      "explicit count with recency",
			query:     "5 pemeriksaan terakhir",
			wantSort:  SortDesc,
			wantLimit: 5,
		},
		{
			name:      "recency without count",
			query:     "pemeriksaan terbaru saya",
			wantSort:  SortDesc,
			wantLimit: DefaultLimit,
		},
		{
			name:      "earliest",
			query:     "kapan pertama kali saya berobat",
			wantSort:  SortAsc,
			wantLimit: DefaultLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Extract(tt.query, testNow)

			if !info.HasTemporalQuery {
				t.Fatalf("Extract(%q).HasTemporalQuery = false, want true", tt.query)
			}
			if info.RelativeTime != "all_data" {
				t.Errorf("RelativeTime = %q, want all_data", info.RelativeTime)
			}
			if info.DateFrom != nil || info.DateTo != nil {
				t.Errorf("whole-history query must carry no date bounds, got [%v, %v]", info.DateFrom, info.DateTo)
			}
			if info.SortOrder != tt.wantSort {
				t.Errorf("SortOrder = %q, want %q", info.SortOrder, tt.wantSort)
			}
			if info.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", info.Limit, tt.wantLimit)
			}
		})
	}
}

func TestExtract_LastNNotSwallowedByRecency(t *testing.T) {
	// "3 minggu terakhir" contains "terakhir" but must resolve to a bounded
	// three-week window, not the unbounded recency category.
	info := Extract("pemeriksaan 3 minggu terakhir", testNow)

	if info.RelativeTime != "last_3_weeks" {
		t.Fatalf("RelativeTime = %q, want last_3_weeks", info.RelativeTime)
	}
	if info.DateFrom == nil || info.DateTo == nil {
		t.Fatal("expected bounded window")
	}
}

func TestExtract_ExplicitSortOverride(t *testing.T) {
	info := Extract("pemeriksaan terakhir urutkan naik", testNow)

	if !info.HasTemporalQuery {
		t.Fatal("HasTemporalQuery = false, want true")
	}
	if info.SortOrder != SortAsc {
		t.Errorf("SortOrder = %q, want %q after explicit override", info.SortOrder, SortAsc)
	}
}

func TestExtract_LimitBounds(t *testing.T) {
	// Counts outside 1..100 fall back to the default.
	info := Extract("500 pemeriksaan terakhir", testNow)
	if info.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d for out-of-range count", info.Limit, DefaultLimit)
	}

	info = Extract("100 pemeriksaan terakhir", testNow)
	if info.Limit != 100 {
		t.Errorf("Limit = %d, want 100", info.Limit)
	}
}

func TestExtract_InvalidDateIgnored(t *testing.T) {
	info := Extract("pendaftaran 31/02/2025", testNow)
	if info.HasTemporalQuery {
		t.Errorf("Extract(invalid date).HasTemporalQuery = true, want false")
	}
}
