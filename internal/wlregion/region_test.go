package wlregion

import "testing"

func TestInflateFreshRegionAdoptsRectangle(t *testing.T) {
	r := New()
	r.Inflate(10, 20, 100, 50)

	if r.Pos != (Position{X: 10, Y: 20}) || r.Size != (Size{Width: 100, Height: 50}) {
		t.Fatalf("fresh inflate = %+v, want pos (10,20) size (100,50)", r)
	}
}

func TestValidRequiresStrictlyPositivePosition(t *testing.T) {
	r := New()
	r.Inflate(0, 0, 10, 10)
	if r.Valid() {
		t.Fatal("region anchored at (0,0) reported valid; Valid() requires strictly positive position")
	}

	r2 := New()
	r2.Inflate(1, 1, 10, 10)
	if !r2.Valid() {
		t.Fatal("region anchored at (1,1) with positive extents reported invalid")
	}
}

func TestInflateGrowsBoundingBoxOnXAxis(t *testing.T) {
	r := New()
	r.Inflate(10, 10, 10, 10) // (10,10)-(20,20)
	r.Inflate(25, 10, 10, 10) // (25,10)-(35,20): grows width to the right

	if r.Pos != (Position{X: 10, Y: 10}) {
		t.Fatalf("Pos after second inflate = %+v, want (10,10)", r.Pos)
	}
	if r.Size.Width != 25 {
		t.Fatalf("Width after second inflate = %d, want 25 (bounding box of x in [10,35))", r.Size.Width)
	}
}

func TestInflateVerticalBranchGrowsHeightNotWidth(t *testing.T) {
	// Growing upwards extends Size.Height by the vertical difference
	// and leaves Size.Width alone: the result is the bounding box.
	r := New()
	r.Inflate(10, 10, 10, 10) // (10,10)-(20,20)
	r.Inflate(10, 0, 10, 10)  // old.Pos.Y(10) - y(0) = 10 > 0

	if r.Pos.Y != 0 {
		t.Fatalf("Pos.Y after vertical growth = %d, want 0", r.Pos.Y)
	}
	if r.Size.Width != 10 {
		t.Fatalf("Width after vertical growth = %d, want unchanged 10", r.Size.Width)
	}
	if r.Size.Height != 20 {
		t.Fatalf("Height after vertical growth = %d, want 20 (bounding box of y in [0,20))", r.Size.Height)
	}
}
