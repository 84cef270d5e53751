package sparse

import (
	"math"
	"reflect"
	"testing"
)

func TestEncoder_Encode_Empty(t *testing.T) {
	e := NewEncoder(DefaultDim)

	for _, text := range []string{"", "   ", "yang dan di"} {
		vec := e.Encode(text)
		if !vec.IsEmpty() {
			t.Errorf("Encode(%q) = %v, want empty vector", text, vec)
		}
	}
}

func TestEncoder_Encode_Deterministic(t *testing.T) {
	e := NewEncoder(DefaultDim)

	a := e.Encode("jadwal dokter gigi minggu depan")
	b := e.Encode("jadwal dokter gigi minggu depan")

	if !reflect.DeepEqual(a, b) {
		t.Errorf("Encode() not deterministic: %v vs %v", a, b)
	}
}

func TestEncoder_Encode_IndicesBounded(t *testing.T) {
	e := NewEncoder(100)

	vec := e.Encode("pasien mendaftar pemeriksaan gigi dokter jadwal klinik")
	if vec.IsEmpty() {
		t.Fatal("Encode() returned empty vector")
	}
	for _, idx := range vec.Indices {
		if idx >= 100 {
			t.Errorf("Encode() index %d out of bucket range [0, 100)", idx)
		}
	}
}

func TestEncoder_Encode_SortedDescending(t *testing.T) {
	e := NewEncoder(DefaultDim)

	vec := e.Encode("pasien demam batuk pilek dokter memeriksa pasien demam")
	if len(vec.Indices) != len(vec.Values) {
		t.Fatalf("Encode() index/value length mismatch: %d vs %d", len(vec.Indices), len(vec.Values))
	}
	for i := 1; i < len(vec.Values); i++ {
		if vec.Values[i] > vec.Values[i-1] {
			t.Errorf("Encode() values not descending at %d: %v > %v", i, vec.Values[i], vec.Values[i-1])
		}
		if vec.Values[i] == vec.Values[i-1] && vec.Indices[i] < vec.Indices[i-1] {
			t.Errorf("Encode() equal values not tie-broken by index at %d", i)
		}
	}
}

func TestEncoder_Encode_Saturation(t *testing.T) {
	e := NewEncoder(DefaultDim)

	// A single unigram with weight 1 scores 1*(k1+1)/(1+k1) = 1 exactly.
	vec := e.Encode("demam")
	if len(vec.Values) != 1 {
		t.Fatalf("Encode(single token) entries = %d, want 1", len(vec.Values))
	}
	if math.Abs(float64(vec.Values[0])-1.0) > 1e-6 {
		t.Errorf("Encode(single token) score = %v, want 1.0", vec.Values[0])
	}

	// Repetition saturates: the score grows but stays below k1+1.
	repeated := e.Encode("demam demam demam demam demam demam")
	var maxScore float32
	for _, v := range repeated.Values {
		if v > maxScore {
			maxScore = v
		}
	}
	if maxScore <= 1.0 {
		t.Errorf("Encode(repeated token) max score = %v, want > 1.0", maxScore)
	}
	if maxScore >= 2.2 {
		t.Errorf("Encode(repeated token) max score = %v, want < k1+1", maxScore)
	}
}

func TestEncoder_Encode_NgramsAddEntries(t *testing.T) {
	e := NewEncoder(DefaultDim)

	one := e.Encode("demam")
	two := e.Encode("demam batuk")

	// Two unigrams plus one bigram, modulo hash collisions.
	if len(two.Indices) <= len(one.Indices) {
		t.Errorf("Encode(two tokens) entries = %d, want more than %d", len(two.Indices), len(one.Indices))
	}
}

func TestNewEncoder_NonPositiveDim(t *testing.T) {
	e := NewEncoder(0)
	if e.Dim() != DefaultDim {
		t.Errorf("NewEncoder(0).Dim() = %d, want %d", e.Dim(), DefaultDim)
	}
}
