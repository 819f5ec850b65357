package canvas

import "testing"

func TestColorSelectionsResolve(t *testing.T) {
	tests := []struct {
		name       string
		selections ColorSelections
		sideID     string
		partName   string
		want       string
	}{
		{
			name:       "per-side part entry",
			selections: ColorSelections{"front": map[string]any{"body": "#112233"}},
			sideID:     "front",
			partName:   "body",
			want:       "#112233",
		},
		{
			name:       "empty selections default to white",
			selections: ColorSelections{},
			sideID:     "front",
			partName:   "body",
			want:       DefaultColor,
		},
		{
			name:       "nil selections default to white",
			selections: nil,
			sideID:     "front",
			partName:   "body",
			want:       DefaultColor,
		},
		{
			name: "flat productColor wins over per-side entry",
			selections: ColorSelections{
				"productColor": "#ABCDEF",
				"front":        map[string]any{"body": "#112233"},
			},
			sideID:   "front",
			partName: "body",
			want:     "#ABCDEF",
		},
		{
			name: "legacy nested front shape",
			selections: ColorSelections{
				"front": map[string]any{
					"front": map[string]any{"body": "#445566"},
				},
			},
			sideID:   "front",
			partName: "body",
			want:     "#445566",
		},
		{
			name: "nested shape ignored for non-front side",
			selections: ColorSelections{
				"back": map[string]any{
					"front": map[string]any{"body": "#445566"},
				},
			},
			sideID:   "back",
			partName: "body",
			want:     DefaultColor,
		},
		{
			name:       "invalid hex falls through to default",
			selections: ColorSelections{"front": map[string]any{"body": "cornflower"}},
			sideID:     "front",
			partName:   "body",
			want:       DefaultColor,
		},
		{
			name:       "non-string value falls through",
			selections: ColorSelections{"front": map[string]any{"body": 42}},
			sideID:     "front",
			partName:   "body",
			want:       DefaultColor,
		},
		{
			name:       "side entry of wrong type falls through",
			selections: ColorSelections{"front": "not-a-map"},
			sideID:     "front",
			partName:   "body",
			want:       DefaultColor,
		},
		{
			name: "invalid productColor falls through to side entry",
			selections: ColorSelections{
				"productColor": "oops",
				"front":        map[string]any{"body": "#112233"},
			},
			sideID:   "front",
			partName: "body",
			want:     "#112233",
		},
		{
			name:       "unknown part on known side",
			selections: ColorSelections{"front": map[string]any{"body": "#112233"}},
			sideID:     "front",
			partName:   "sleeve",
			want:       DefaultColor,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.selections.Resolve(tt.sideID, tt.partName)
			if got != tt.want {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.sideID, tt.partName, got, tt.want)
			}
		})
	}
}
