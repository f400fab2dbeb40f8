package scale

import "testing"

func TestIdentityWhenReferenceEqualsRuntime(t *testing.T) {
	s, err := NewFullHD(1920, 1080)
	if err != nil {
		t.Fatalf("NewFullHD: %v", err)
	}

	for _, v := range []int{0, 1, 42, 959, 1919, -5} {
		if got := s.X(v); got != v {
			t.Errorf("X(%d) = %d, want identity", v, got)
		}
	}
	if got := s.Y(733); got != 733 {
		t.Errorf("Y(733) = %d, want 733", got)
	}
}

func TestLinearScaling(t *testing.T) {
	s, err := NewFullHD(3840, 2160)
	if err != nil {
		t.Fatalf("NewFullHD: %v", err)
	}

	if got := s.X(100); got != 200 {
		t.Errorf("X(100) at 2x = %d, want 200", got)
	}
	if got := s.Y(540); got != 1080 {
		t.Errorf("Y(540) at 2x = %d, want 1080", got)
	}

	x, y := s.Point(960, 540)
	if x != 1920 || y != 1080 {
		t.Errorf("Point(960,540) = (%d,%d), want (1920,1080)", x, y)
	}
}

func TestRoundingHalfAwayFromZero(t *testing.T) {
	// 3 -> 3 * 3 / 2 = 4.5, rounds away from zero to 5.
	s, err := New(2, 2, 3, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.X(3); got != 5 {
		t.Errorf("X(3) = %d, want 5", got)
	}
	if got := s.X(-3); got != -5 {
		t.Errorf("X(-3) = %d, want -5 (half away from zero)", got)
	}
}

func TestNegativeAndOutOfSurfacePassThrough(t *testing.T) {
	s, err := NewFullHD(960, 540)
	if err != nil {
		t.Fatalf("NewFullHD: %v", err)
	}
	if got := s.X(-100); got != -50 {
		t.Errorf("X(-100) = %d, want -50", got)
	}
	// Beyond the reference surface still scales, never clamps.
	if got := s.X(4000); got != 2000 {
		t.Errorf("X(4000) = %d, want 2000", got)
	}
}

func TestRegionScalesPerAxis(t *testing.T) {
	s, err := New(1920, 1080, 960, 2160)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := s.Region(1841, 733, 172, 52)
	want := Region{X: 921, Y: 1466, W: 86, H: 104}
	if r != want {
		t.Errorf("Region = %+v, want %+v", r, want)
	}
}

func TestSetReferenceRescalesLaterCalls(t *testing.T) {
	// Dev scaler: author copies coordinates from a 2560x1440 screen.
	s, err := New(2560, 1440, 1920, 1080)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := s.X(2560); got != 1920 {
		t.Errorf("X(2560) = %d, want 1920", got)
	}

	// Reconfiguring the pair is a single source of truth: the same authored
	// coordinate now maps through the new reference.
	if err := s.SetReference(1280, 720); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	if got := s.X(640); got != 960 {
		t.Errorf("X(640) after SetReference = %d, want 960", got)
	}
}

func TestInvalidDimensionsRejected(t *testing.T) {
	cases := [][4]int{
		{0, 1080, 1920, 1080},
		{1920, 0, 1920, 1080},
		{1920, 1080, 0, 1080},
		{1920, 1080, 1920, -1},
	}
	for _, c := range cases {
		if _, err := New(c[0], c[1], c[2], c[3]); err == nil {
			t.Errorf("New(%v) accepted invalid dimensions", c)
		}
	}

	s, err := NewFullHD(1920, 1080)
	if err != nil {
		t.Fatalf("NewFullHD: %v", err)
	}
	if err := s.SetReference(0, 720); err == nil {
		t.Error("SetReference(0, 720) accepted a zero dimension")
	}
	if err := s.SetRuntime(1920, 0); err == nil {
		t.Error("SetRuntime(1920, 0) accepted a zero dimension")
	}
}

func TestRegionCenter(t *testing.T) {
	r := Region{X: 10, Y: 20, W: 100, H: 50}
	cx, cy := r.Center()
	if cx != 60 || cy != 45 {
		t.Errorf("Center = (%d,%d), want (60,45)", cx, cy)
	}
}
