package listing

import (
	"encoding/json"
	"testing"
)

func TestParseBool(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"true", true, true},
		{"TRUE", true, true},
		{" False ", false, true},
		{"1", false, false},
		{"yes", false, false},
		{"", false, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parseBool(tc.in)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("parseBool(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"int", 7, 7, true},
		{"int64", int64(12), 12, true},
		{"float64", 38.0, 38, true},
		{"numeric string", "42", 42, true},
		{"float string", "42.9", 42, true},
		{"bytes", []byte("19"), 19, true},
		{"json number", json.Number("55"), 55, true},
		{"garbage", "lots", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt(tc.in)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("toInt(%v) = %d, %v; want %d, %v", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	if got, ok := toFloat("4.80"); !ok || got != 4.8 {
		t.Fatalf("toFloat string: got %v, %v", got, ok)
	}
	if got, ok := toFloat([]byte("4.5")); !ok || got != 4.5 {
		t.Fatalf("toFloat bytes: got %v, %v", got, ok)
	}
	if _, ok := toFloat(map[string]any{}); ok {
		t.Fatal("toFloat accepted a map")
	}
}

func TestToBool(t *testing.T) {
	if got, ok := toBool("True"); !ok || !got {
		t.Fatalf("toBool(\"True\") = %v, %v", got, ok)
	}
	if got, ok := toBool(false); !ok || got {
		t.Fatalf("toBool(false) = %v, %v", got, ok)
	}
	if _, ok := toBool(1); ok {
		t.Fatal("toBool accepted an int")
	}
}

func TestClampInt(t *testing.T) {
	if got := clampInt(150, 1, 99); got != 99 {
		t.Fatalf("clampInt high: got %d", got)
	}
	if got := clampInt(0, 1, 99); got != 1 {
		t.Fatalf("clampInt low: got %d", got)
	}
	if got := clampInt(4, 1, 99); got != 4 {
		t.Fatalf("clampInt in range: got %d", got)
	}
}

func TestLatLngRange(t *testing.T) {
	if !validLat(90) || !validLat(-90) || validLat(90.1) {
		t.Fatal("latitude range check is off")
	}
	if !validLng(180) || !validLng(-180) || validLng(-180.5) {
		t.Fatal("longitude range check is off")
	}
}
