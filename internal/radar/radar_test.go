package radar_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/aoimori/kizunabot/internal/radar"
)

func TestScaleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		maxValue int
		want     int
	}{
		{maxValue: 0, want: 10},
		{maxValue: 1, want: 10},
		{maxValue: 10, want: 10},
		{maxValue: 11, want: 20},
		{maxValue: 20, want: 20},
		{maxValue: 21, want: 40},
		{maxValue: 40, want: 40},
		{maxValue: 41, want: 80},
		{maxValue: 80, want: 80},
		{maxValue: 81, want: 160},
		{maxValue: 160, want: 160},
		{maxValue: 161, want: 160},
		{maxValue: 1000, want: 160},
	}

	for _, tt := range tests {
		if got := radar.ScaleFor(tt.maxValue); got != tt.want {
			t.Errorf("ScaleFor(%d) = %d, want %d", tt.maxValue, got, tt.want)
		}
	}
}

func TestProject(t *testing.T) {
	t.Parallel()

	values := [radar.AxisCount]int{10, 5, 0, 20, 8}
	scale := radar.ScaleFor(radar.MaxValue(values))
	if scale != 20 {
		t.Fatalf("scale = %d, want 20", scale)
	}

	p := radar.Project(values, scale)

	// Closed loops: first point repeated at the end.
	if len(p.Angles) != radar.AxisCount+1 || len(p.Normalized) != radar.AxisCount+1 {
		t.Fatalf("loop lengths = %d, %d; want %d", len(p.Angles), len(p.Normalized), radar.AxisCount+1)
	}
	if p.Angles[0] != p.Angles[radar.AxisCount] {
		t.Error("angle loop is not closed")
	}
	if p.Normalized[0] != p.Normalized[radar.AxisCount] {
		t.Error("normalized loop is not closed")
	}

	// First spoke at 12 o'clock.
	if got := p.Angles[0]; math.Abs(got-(-math.Pi/2)) > 1e-9 {
		t.Errorf("Angles[0] = %f, want -pi/2", got)
	}
	// Evenly spaced spokes.
	step := 2 * math.Pi / radar.AxisCount
	for i := 1; i < radar.AxisCount; i++ {
		if got := p.Angles[i] - p.Angles[i-1]; math.Abs(got-step) > 1e-9 {
			t.Errorf("spoke spacing at %d = %f, want %f", i, got, step)
		}
	}

	wantNorm := []float64{0.5, 0.25, 0, 1.0, 0.4}
	for i, w := range wantNorm {
		if math.Abs(p.Normalized[i]-w) > 1e-9 {
			t.Errorf("Normalized[%d] = %f, want %f", i, p.Normalized[i], w)
		}
	}

	// Gridlines at every rung up to the scale, labeled with raw values.
	if len(p.Grid) != 2 {
		t.Fatalf("grid levels = %d, want 2", len(p.Grid))
	}
	if p.Grid[0].Value != 10 || math.Abs(p.Grid[0].Radius-0.5) > 1e-9 {
		t.Errorf("Grid[0] = %+v, want value 10 at radius 0.5", p.Grid[0])
	}
	if p.Grid[1].Value != 20 || math.Abs(p.Grid[1].Radius-1.0) > 1e-9 {
		t.Errorf("Grid[1] = %+v, want value 20 at radius 1.0", p.Grid[1])
	}
}

func TestProject_NormalizedNeverExceedsOne(t *testing.T) {
	t.Parallel()

	cases := [][radar.AxisCount]int{
		{0, 0, 0, 0, 0},
		{10, 10, 10, 10, 10},
		{11, 0, 0, 0, 0},
		{160, 159, 1, 0, 80},
		{500, 2, 3, 4, 5},
	}

	for _, values := range cases {
		scale := radar.ScaleFor(radar.MaxValue(values))
		p := radar.Project(values, scale)
		for i := 0; i < radar.AxisCount; i++ {
			if p.Normalized[i] > 1.0+1e-9 {
				t.Errorf("values %v scale %d: Normalized[%d] = %f > 1", values, scale, i, p.Normalized[i])
			}
		}
	}
}

func TestProject_GridForLadderSaturation(t *testing.T) {
	t.Parallel()

	p := radar.Project([radar.AxisCount]int{300, 0, 0, 0, 0}, radar.ScaleFor(300))
	if p.Scale != 160 {
		t.Fatalf("Scale = %d, want 160", p.Scale)
	}
	if len(p.Grid) != len(radar.Thresholds) {
		t.Errorf("grid levels = %d, want %d", len(p.Grid), len(radar.Thresholds))
	}
	// Normalized may exceed 1 only when an axis exceeds the saturated ladder.
	if p.Normalized[0] <= 1.0 {
		t.Errorf("Normalized[0] = %f, want > 1 past saturation", p.Normalized[0])
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	r := radar.NewRenderer(400, "", nil)
	values := [radar.AxisCount]int{3, 1, 0, 7, 2}
	p := radar.Project(values, radar.ScaleFor(radar.MaxValue(values)))

	png, err := r.Render(p, [radar.AxisCount]string{"A", "B", "C", "D", "E"}, "test chart")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG")
	}
}
