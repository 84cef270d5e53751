// Package temporal extracts structured date ranges, sort order and result
// limits from free-text Indonesian (and mixed English) clinic queries.
// Extraction is a pure function of the query text and the supplied clock.
package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Info is the structured temporal interpretation of a query.
type Info struct {
	HasTemporalQuery bool
	DateFrom         *time.Time
	DateTo           *time.Time
	// RelativeTime labels the matched category, e.g. "today", "last_month",
	// "last_7_days" or "all_data" for earliest/recent queries.
	RelativeTime string
	Keywords     []string
	// SortOrder is "asc", "desc" or empty.
	SortOrder string
	Limit     int
}

const (
	// DefaultLimit applies when a temporal query names no explicit count.
	DefaultLimit = 15
	maxLimit     = 100

	SortAsc  = "asc"
	SortDesc = "desc"
)

var (
	reLastN    = regexp.MustCompile(`(\d{1,3})\s*(hari|minggu|pekan|bulan)\s*(terakhir|kebelakang|ke belakang)`)
	reCount    = regexp.MustCompile(`(\d{1,3})\s+(pemeriksaan|pendaftaran|pasien|dokter|jadwal|kunjungan|riwayat|catatan|resep|obat|data|hasil)`)
	reTopN     = regexp.MustCompile(`(?:top|first)\s+(\d{1,3})`)
	reNLeading = regexp.MustCompile(`(\d{1,3})\s+(?:teratas|pertama|terakhir|terbaru)`)

	reNumericDate = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)
	reNamedDate   = regexp.MustCompile(`(\d{1,2})\s+(januari|februari|maret|april|mei|juni|juli|agustus|september|oktober|november|desember)\s+(\d{4})`)
	reRange       = regexp.MustCompile(`(?:dari|antara|mulai)\s+(.+?)\s+(?:sampai|hingga|dan|s\.d\.?)\s+(.+)`)
)

var monthNames = map[string]time.Month{
	"januari": time.January, "februari": time.February, "maret": time.March,
	"april": time.April, "mei": time.May, "juni": time.June, "juli": time.July,
	"agustus": time.August, "september": time.September, "oktober": time.October,
	"november": time.November, "desember": time.December,
}

var ascVocabulary = []string{"terlama dulu", "dari yang lama", "paling awal dulu", "urutkan naik", "ascending", "menaik"}

var descVocabulary = []string{"terbaru dulu", "dari yang baru", "urutkan turun", "descending", "menurun"}

// Extract interprets query relative to now. Queries with no recognized
// temporal vocabulary return a zero Info with HasTemporalQuery false.
func Extract(query string, now time.Time) Info {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Info{}
	}

	info := matchCategory(q, now)
	if !info.HasTemporalQuery {
		return Info{}
	}

	if limit, ok := extractLimit(q); ok {
		info.Limit = limit
	} else {
		info.Limit = DefaultLimit
	}

	// Explicit direction vocabulary overrides whatever the category implied.
	if sort, ok := explicitSort(q); ok {
		info.SortOrder = sort
	}

	return info
}

// matchCategory walks the ordered, mutually exclusive category list; the
// first category whose vocabulary appears in the query wins.
func matchCategory(q string, now time.Time) Info {
	today := dayStart(now)

	// earliest / recent: whole-history queries with an implied direction
	// and no date bounds.
	if kw, ok := containsAny(q, "terlama", "paling lama", "paling awal", "terdahulu", "pertama kali", "oldest", "earliest"); ok {
		return Info{HasTemporalQuery: true, RelativeTime: "all_data", Keywords: []string{kw}, SortOrder: SortAsc}
	}
	if !reLastN.MatchString(q) {
		// "terakhir" as part of "N <unit> terakhir" belongs to the
		// last-N category below, not to the recency category.
		if kw, ok := containsAny(q, "terakhir", "terbaru", "terkini", "baru-baru ini", "paling baru", "latest", "recent"); ok {
			return Info{HasTemporalQuery: true, RelativeTime: "all_data", Keywords: []string{kw}, SortOrder: SortDesc}
		}
	}

	if kw, ok := containsAny(q, "hari ini", "today"); ok {
		return bounded("today", kw, today, today)
	}
	// "kemarin" preceded by a unit word ("minggu kemarin") belongs to the
	// week/month/year categories below.
	if _, unit := containsAny(q, "minggu kemarin", "pekan kemarin", "bulan kemarin", "tahun kemarin"); !unit {
		if kw, ok := containsAny(q, "kemarin", "yesterday"); ok {
			d := today.AddDate(0, 0, -1)
			return bounded("yesterday", kw, d, d)
		}
	}
	if kw, ok := containsAny(q, "minggu ini", "pekan ini", "this week"); ok {
		start := weekStart(today)
		return bounded("this_week", kw, start, start.AddDate(0, 0, 6))
	}
	if kw, ok := containsAny(q, "minggu lalu", "minggu kemarin", "pekan lalu", "pekan kemarin", "last week"); ok {
		start := weekStart(today).AddDate(0, 0, -7)
		return bounded("last_week", kw, start, start.AddDate(0, 0, 6))
	}
	if kw, ok := containsAny(q, "bulan ini", "this month"); ok {
		start := monthStart(today)
		return bounded("this_month", kw, start, start.AddDate(0, 1, -1))
	}
	if kw, ok := containsAny(q, "bulan lalu", "bulan kemarin", "last month"); ok {
		start := monthStart(today).AddDate(0, -1, 0)
		return bounded("last_month", kw, start, start.AddDate(0, 1, -1))
	}
	if kw, ok := containsAny(q, "tahun ini", "this year"); ok {
		start := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, today.Location())
		return bounded("this_year", kw, start, start.AddDate(1, 0, -1))
	}
	if kw, ok := containsAny(q, "tahun lalu", "tahun kemarin", "last year"); ok {
		start := time.Date(today.Year()-1, 1, 1, 0, 0, 0, 0, today.Location())
		return bounded("last_year", kw, start, start.AddDate(1, 0, -1))
	}

	if m := reLastN.FindStringSubmatch(q); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			var start time.Time
			var label string
			switch m[2] {
			case "hari":
				start = today.AddDate(0, 0, -(n - 1))
				label = fmt.Sprintf("last_%d_days", n)
			case "minggu", "pekan":
				start = today.AddDate(0, 0, -7*n)
				label = fmt.Sprintf("last_%d_weeks", n)
			case "bulan":
				start = today.AddDate(0, -n, 0)
				label = fmt.Sprintf("last_%d_months", n)
			}
			return bounded(label, m[0], start, today)
		}
	}

	// A range needs two parseable dates; fall through to single dates when
	// only one side resolves.
	if m := reRange.FindStringSubmatch(q); m != nil {
		from, okFrom := parseDate(m[1], now)
		to, okTo := parseDate(m[2], now)
		if okFrom && okTo {
			if to.Before(from) {
				from, to = to, from
			}
			return bounded("date_range", m[0], from, to)
		}
	}

	if d, ok := parseDate(q, now); ok {
		return bounded("specific_date", q, d, d)
	}

	return Info{}
}

func bounded(label, keyword string, from, to time.Time) Info {
	fromBound := dayStart(from)
	toBound := dayEnd(to)
	return Info{
		HasTemporalQuery: true,
		RelativeTime:     label,
		Keywords:         []string{keyword},
		DateFrom:         &fromBound,
		DateTo:           &toBound,
	}
}

// extractLimit looks for an explicit result count; only 1..100 is accepted.
func extractLimit(q string) (int, bool) {
	candidates := [][]string{
		reCount.FindStringSubmatch(q),
		reTopN.FindStringSubmatch(q),
		reNLeading.FindStringSubmatch(q),
	}
	for _, m := range candidates {
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil && n >= 1 && n <= maxLimit {
			return n, true
		}
	}
	return 0, false
}

func explicitSort(q string) (string, bool) {
	for _, phrase := range ascVocabulary {
		if strings.Contains(q, phrase) {
			return SortAsc, true
		}
	}
	for _, phrase := range descVocabulary {
		if strings.Contains(q, phrase) {
			return SortDesc, true
		}
	}
	return "", false
}

// parseDate resolves "12/01/2025", "12-1-2025" or "12 januari 2025" day-first.
func parseDate(s string, now time.Time) (time.Time, bool) {
	if m := reNamedDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		month := monthNames[m[2]]
		if valid := validDay(year, month, day); valid {
			return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
		}
	}
	if m := reNumericDate.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		monthNum, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if monthNum >= 1 && monthNum <= 12 && validDay(year, time.Month(monthNum), day) {
			return time.Date(year, time.Month(monthNum), day, 0, 0, 0, 0, now.Location()), true
		}
	}
	return time.Time{}, false
}

func validDay(year int, month time.Month, day int) bool {
	if day < 1 {
		return false
	}
	lastDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	return day <= lastDay
}

func containsAny(q string, phrases ...string) (string, bool) {
	for _, phrase := range phrases {
		if strings.Contains(q, phrase) {
			return phrase, true
		}
	}
	return "", false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// weekStart returns the Monday of t's week.
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return dayStart(t.AddDate(0, 0, -(weekday - 1)))
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
