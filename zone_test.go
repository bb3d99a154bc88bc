package cascade

import (
	"errors"
	"math"
	"testing"
)

func overlapping(n int, f float64) Config {
	cfg := DefaultConfig()
	cfg.SectionCount = n
	cfg.OverlapFraction = f
	return cfg
}

func discrete(n int) Config {
	cfg := DefaultConfig()
	cfg.LayoutPolicy = PolicyDiscrete
	cfg.SectionCount = n
	return cfg
}

func TestBuildZoneMapOverlapping(t *testing.T) {
	zm, err := BuildZoneMap(1000, overlapping(3, 0.25))
	if err != nil {
		t.Fatalf("BuildZoneMap: %v", err)
	}
	inf := math.Inf(1)
	want := []Zone{
		{Index: 0, EnterStart: 0, EnterEnd: 0, ExitStart: 500, ExitEnd: 1000},
		{Index: 1, EnterStart: 500, EnterEnd: 1000, ExitStart: 1500, ExitEnd: 2000},
		{Index: 2, EnterStart: 1500, EnterEnd: 2000, ExitStart: inf, ExitEnd: inf},
	}
	if zm.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", zm.Len(), len(want))
	}
	for i, w := range want {
		if got := zm.Zone(i); got != w {
			t.Errorf("Zone(%d) = %+v, want %+v", i, got, w)
		}
	}
	if zm.MaxOffset() != 2000 {
		t.Errorf("MaxOffset = %f, want 2000", zm.MaxOffset())
	}
	if zm.ContentHeight() != 3000 {
		t.Errorf("ContentHeight = %f, want 3000", zm.ContentHeight())
	}
}

func TestBuildZoneMapDiscrete(t *testing.T) {
	zm, err := BuildZoneMap(800, discrete(3))
	if err != nil {
		t.Fatalf("BuildZoneMap: %v", err)
	}
	for i := 0; i < zm.Len(); i++ {
		z := zm.Zone(i)
		if z.EnterStart != z.EnterEnd {
			t.Errorf("zone %d enter range [%f, %f] not zero-width", i, z.EnterStart, z.EnterEnd)
		}
		if z.HasExit() && z.ExitStart != z.ExitEnd {
			t.Errorf("zone %d exit range [%f, %f] not zero-width", i, z.ExitStart, z.ExitEnd)
		}
		if i > 0 && z.EnterEnd != float64(i)*800 {
			t.Errorf("zone %d enters at %f, want %f", i, z.EnterEnd, float64(i)*800)
		}
	}
	if zm.MaxOffset() != 1600 {
		t.Errorf("MaxOffset = %f, want 1600", zm.MaxOffset())
	}
}

func TestBuildZoneMapOrdering(t *testing.T) {
	for _, f := range []float64{0.01, 0.1, 0.25, 0.4, 0.5} {
		zm, err := BuildZoneMap(733, overlapping(6, f))
		if err != nil {
			t.Fatalf("f=%v: %v", f, err)
		}
		zones := zm.Zones()
		for i, z := range zones {
			if !(z.EnterStart <= z.EnterEnd && z.EnterEnd <= z.ExitStart && z.ExitStart <= z.ExitEnd) {
				t.Errorf("f=%v zone %d out of order: %+v", f, i, z)
			}
			if i > 0 && zones[i-1].ExitEnd > z.EnterEnd {
				t.Errorf("f=%v zone %d seats before zone %d has left", f, i, i-1)
			}
			if i >= 2 && z.EnterStart < zones[i-2].ExitEnd {
				t.Errorf("f=%v zone %d overlaps zone %d", f, i, i-2)
			}
		}
	}
}

func TestBuildZoneMapSingleSection(t *testing.T) {
	zm, err := BuildZoneMap(600, overlapping(1, 0.25))
	if err != nil {
		t.Fatalf("BuildZoneMap: %v", err)
	}
	z := zm.Zone(0)
	if z.HasExit() || z.EnterEnd != 0 {
		t.Errorf("single zone = %+v, want pre-activated with no exit", z)
	}
	if zm.MaxOffset() != 0 {
		t.Errorf("MaxOffset = %f, want 0", zm.MaxOffset())
	}
}

func TestBuildZoneMapRejects(t *testing.T) {
	tests := []struct {
		name  string
		h     float64
		cfg   Config
		field string
	}{
		{"zero height", 0, DefaultConfig(), "viewportHeight"},
		{"NaN height", math.NaN(), DefaultConfig(), "viewportHeight"},
		{"infinite height", math.Inf(1), DefaultConfig(), "viewportHeight"},
		{"no sections", 800, overlapping(0, 0.25), "sectionCount"},
		{"overlap too big", 800, overlapping(3, 0.6), "overlapFraction"},
		{"overlap zero", 800, overlapping(3, 0), "overlapFraction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildZoneMap(tt.h, tt.cfg)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("err = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
		})
	}
}

func TestNewZoneMapValidation(t *testing.T) {
	inf := math.Inf(1)
	tests := []struct {
		name  string
		zones []Zone
		ok    bool
	}{
		{"valid", []Zone{
			{Index: 0, ExitStart: 100, ExitEnd: 200},
			{Index: 1, EnterStart: 100, EnterEnd: 200, ExitStart: inf, ExitEnd: inf},
		}, true},
		{"band from zero", []Zone{
			{Index: 0, ExitStart: 0, ExitEnd: 1000},
			{Index: 1, EnterStart: 0, EnterEnd: 1000, ExitStart: inf, ExitEnd: inf},
		}, true},
		{"second zone seated at zero", []Zone{
			{Index: 0, ExitStart: 0, ExitEnd: 0},
			{Index: 1, EnterStart: 0, EnterEnd: 0, ExitStart: inf, ExitEnd: inf},
		}, false},
		{"second zone entering at zero", []Zone{
			{Index: 0, ExitStart: 100, ExitEnd: 200},
			{Index: 1, EnterStart: -100, EnterEnd: 200, ExitStart: inf, ExitEnd: inf},
		}, false},
		{"first zone not seated at zero", []Zone{
			{Index: 0, EnterStart: 0, EnterEnd: 50, ExitStart: 100, ExitEnd: 200},
			{Index: 1, EnterStart: 100, EnterEnd: 200, ExitStart: inf, ExitEnd: inf},
		}, false},
		{"empty", nil, false},
		{"wrong index", []Zone{{Index: 1, ExitStart: inf, ExitEnd: inf}}, false},
		{"inverted enter", []Zone{{Index: 0, EnterStart: 10, EnterEnd: 5, ExitStart: inf, ExitEnd: inf}}, false},
		{"half infinite exit", []Zone{{Index: 0, ExitStart: 10, ExitEnd: inf}}, false},
		{"last zone exits", []Zone{{Index: 0, ExitStart: 10, ExitEnd: 20}}, false},
		{"three-way overlap", []Zone{
			{Index: 0, ExitStart: 100, ExitEnd: 300},
			{Index: 1, EnterStart: 100, EnterEnd: 200, ExitStart: 200, ExitEnd: 400},
			{Index: 2, EnterStart: 250, EnterEnd: 400, ExitStart: inf, ExitEnd: inf},
		}, false},
		{"enters before predecessor seated", []Zone{
			{Index: 0, ExitStart: 100, ExitEnd: 200},
			{Index: 1, EnterStart: 100, EnterEnd: 300, ExitStart: 400, ExitEnd: 500},
			{Index: 2, EnterStart: 250, EnterEnd: 500, ExitStart: inf, ExitEnd: inf},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewZoneMap(1000, tt.zones)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok {
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Fatalf("err = %v, want *ConfigError", err)
				}
			}
		})
	}
}

func TestNewZoneMapCopiesInput(t *testing.T) {
	inf := math.Inf(1)
	zones := []Zone{{Index: 0, ExitStart: inf, ExitEnd: inf}}
	zm, err := NewZoneMap(500, zones)
	if err != nil {
		t.Fatal(err)
	}
	zones[0].EnterEnd = 99
	if zm.Zone(0).EnterEnd != 0 {
		t.Error("ZoneMap shares the caller's slice")
	}
	out := zm.Zones()
	out[0].EnterEnd = 42
	if zm.Zone(0).EnterEnd != 0 {
		t.Error("Zones() exposes internal storage")
	}
}

func TestZoneMapEqual(t *testing.T) {
	a, _ := BuildZoneMap(900, DefaultConfig())
	b, _ := BuildZoneMap(900, DefaultConfig())
	c, _ := BuildZoneMap(901, DefaultConfig())
	if !a.Equal(b) {
		t.Error("identical maps not Equal")
	}
	if a.Equal(c) {
		t.Error("maps for different heights reported Equal")
	}
	var nilMap *ZoneMap
	if a.Equal(nilMap) || !nilMap.Equal(nil) {
		t.Error("nil handling in Equal is wrong")
	}
}
