package sparse

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// stopwords covers common Indonesian function words plus the handful of
// English ones that show up in mixed-language clinic queries.
var stopwords = map[string]struct{}{
	"yang": {}, "dan": {}, "di": {}, "ke": {}, "dari": {}, "untuk": {}, "dengan": {},
	"pada": {}, "adalah": {}, "itu": {}, "ini": {}, "saya": {}, "kamu": {}, "anda": {},
	"kami": {}, "kita": {}, "mereka": {}, "apa": {}, "siapa": {}, "kapan": {}, "dimana": {},
	"bagaimana": {}, "berapa": {}, "tolong": {}, "mohon": {}, "bisa": {}, "boleh": {},
	"akan": {}, "sudah": {}, "belum": {}, "ada": {}, "tidak": {}, "bukan": {}, "atau": {},
	"juga": {}, "saat": {}, "ketika": {}, "dalam": {}, "oleh": {}, "serta": {}, "agar": {},
	"jika": {}, "kalau": {}, "seperti": {}, "karena": {}, "hingga": {}, "sampai": {},
	"a": {}, "an": {}, "and": {}, "are": {}, "at": {}, "be": {}, "by": {}, "for": {},
	"from": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "the": {},
	"to": {}, "was": {}, "were": {}, "what": {}, "when": {}, "where": {}, "with": {},
}

// protectedTerms are clinical vocabulary that must survive intact: stemming
// "imunisasi" to "imunisas" or "diagnosa" to "diagnos" would split the same
// concept across hash buckets between indexing and querying.
var protectedTerms = map[string]struct{}{
	"pemeriksaan": {}, "pendaftaran": {}, "diagnosis": {}, "diagnosa": {},
	"imunisasi": {}, "vaksinasi": {}, "vaksin": {}, "antibiotik": {},
	"hipertensi": {}, "diabetes": {}, "kolesterol": {}, "anemia": {},
	"asma": {}, "alergi": {}, "demam": {}, "batuk": {}, "pilek": {},
	"migrain": {}, "maag": {}, "tensi": {}, "resep": {}, "rujukan": {},
	"paracetamol": {}, "amoxicillin": {}, "ibuprofen": {},
	"poli": {}, "dokter": {}, "pasien": {}, "jadwal": {}, "klinik": {},
	"gigi": {}, "umum": {}, "anak": {}, "kandungan": {}, "jantung": {}, "kulit": {},
}

var prefixes = []string{"meng", "meny", "mem", "men", "peng", "peny", "pem", "pen", "ber", "ter", "di", "ke", "se"}

var suffixes = []string{"lah", "kah", "nya", "kan", "an", "i"}

// Tokenize lowercases and Unicode-normalizes text, splits it on anything that
// is not a letter or digit, drops stopwords, and stems the survivors with a
// light Indonesian affix stripper. Protected clinical terms bypass stemming.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	normalized := norm.NFKC.String(strings.ToLower(text))

	var builder strings.Builder
	builder.Grow(len(normalized))
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}

	raw := strings.Fields(builder.String())
	if len(raw) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if _, isStop := stopwords[token]; isStop {
			continue
		}
		tokens = append(tokens, stem(token))
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// stem strips at most one known prefix and any known suffixes, keeping at
// least three characters of stem. Protected terms are returned unchanged.
func stem(token string) string {
	if _, protected := protectedTerms[token]; protected {
		return token
	}

	stemmed := token
	for _, prefix := range prefixes {
		if strings.HasPrefix(stemmed, prefix) && len(stemmed)-len(prefix) >= 3 {
			stemmed = stemmed[len(prefix):]
			break
		}
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(stemmed, suffix) && len(stemmed)-len(suffix) >= 3 {
			stemmed = stemmed[:len(stemmed)-len(suffix)]
			break
		}
	}
	return stemmed
}
