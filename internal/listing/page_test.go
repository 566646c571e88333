package listing

import "testing"

func intPtr(v int) *int { return &v }

func TestPageBoundsClamp(t *testing.T) {
	tests := []struct {
		name       string
		bounds     PageBounds
		limit      *int
		offset     *int
		wantLimit  int
		wantOffset int
	}{
		{"absent takes default", ListPage, nil, nil, 20, 0},
		{"zero limit takes minimum", ListPage, intPtr(0), nil, 1, 0},
		{"negative limit takes minimum", ListPage, intPtr(-5), nil, 1, 0},
		{"above ceiling takes ceiling", ListPage, intPtr(500), nil, 50, 0},
		{"negative offset takes zero", ListPage, intPtr(10), intPtr(-20), 10, 0},
		{"in range passes through", ListPage, intPtr(25), intPtr(40), 25, 40},
		{"map ceiling", MapPage, intPtr(9999), nil, 500, 0},
		{"map default", MapPage, nil, nil, 100, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := tc.bounds.Clamp(tc.limit, tc.offset)
			if limit != tc.wantLimit || offset != tc.wantOffset {
				t.Fatalf("Clamp = (%d, %d), want (%d, %d)", limit, offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}
