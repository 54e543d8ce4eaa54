package domain

import (
	"encoding/json"
	"testing"
)

func TestEditSpecUnmarshalDefaults(t *testing.T) {
	var spec EditSpec
	if err := json.Unmarshal([]byte(`{}`), &spec); err != nil {
		t.Fatalf("Failed to unmarshal empty spec: %v", err)
	}

	if spec.Filters != NeutralFilters() {
		t.Errorf("Filters = %+v, want neutral", spec.Filters)
	}
	if spec.Crop != nil || spec.Resize != nil {
		t.Errorf("Crop/Resize should be absent, got %+v / %+v", spec.Crop, spec.Resize)
	}
	if spec.Quality != 0 {
		t.Errorf("Quality = %d, want 0 (unspecified)", spec.Quality)
	}
}

func TestEditSpecUnmarshalPartialFilters(t *testing.T) {
	var spec EditSpec
	raw := `{"crop":{"x":1.5,"y":2,"width":100,"height":50},"filters":{"blur":2.5}}`
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("Failed to unmarshal spec: %v", err)
	}

	if spec.Filters.Blur != 2.5 {
		t.Errorf("Blur = %v, want 2.5", spec.Filters.Blur)
	}
	if spec.Filters.Brightness != 1 || spec.Filters.Contrast != 1 || spec.Filters.Saturation != 1 {
		t.Errorf("Omitted multiplicative filters should stay neutral, got %+v", spec.Filters)
	}
	if spec.Crop == nil || spec.Crop.X != 1.5 || spec.Crop.Height != 50 {
		t.Errorf("Crop = %+v, want {1.5 2 100 50}", spec.Crop)
	}
}

func TestEditSpecUnmarshalExplicitZeroContrast(t *testing.T) {
	var spec EditSpec
	if err := json.Unmarshal([]byte(`{"filters":{"contrast":0}}`), &spec); err != nil {
		t.Fatalf("Failed to unmarshal spec: %v", err)
	}

	// An explicit zero must survive the defaulting; it means "mid-gray",
	// not "absent".
	if spec.Filters.Contrast != 0 {
		t.Errorf("Contrast = %v, want 0", spec.Filters.Contrast)
	}
}

func TestNewIDMonotonic(t *testing.T) {
	prev := NewID()
	for i := 0; i < 1000; i++ {
		id := NewID()
		if id <= prev {
			t.Fatalf("NewID() = %d, want > %d", id, prev)
		}
		prev = id
	}
}
