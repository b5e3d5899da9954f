package fractal

import (
	"context"
	"errors"
	"testing"
)

func TestHTreeSegments(t *testing.T) {
	want := map[int]int{-1: 0, 0: 0, 1: 3, 2: 15, 3: 63, 4: 255, 12: 16777215, 20: 16777215}
	for order, n := range want {
		if got := HTreeSegments(order); got != n {
			t.Errorf("HTreeSegments(%d) = %d, want %d", order, got, n)
		}
	}
}

func TestHTree_SegmentCount(t *testing.T) {
	pm := NewPixmap(512, 512)
	prev := -1
	for order := 0; order <= 6; order++ {
		tree := &HTree{Half: 128, Order: order, Color: White}
		n, err := tree.Draw(context.Background(), pm)
		if err != nil {
			t.Fatalf("Draw(order=%d) = %v", order, err)
		}
		// Half 128 halves to 4 at order 6, so no level is cut off.
		if n != HTreeSegments(order) {
			t.Errorf("order %d drew %d segments, want %d", order, n, HTreeSegments(order))
		}
		if n <= prev {
			t.Errorf("order %d drew %d segments, not more than order %d", order, n, order-1)
		}
		prev = n
	}
}

func TestHTree_Termination(t *testing.T) {
	tests := []struct {
		name string
		tree HTree
		want int
	}{
		{"order zero", HTree{Half: 100, Order: 0}, 0},
		{"half below one", HTree{Half: 0.9, Order: 8}, 0},
		{"cut off by half", HTree{Half: 4, Order: 8}, HTreeSegments(3)}, // 4, 2, 1
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(64, 64)
			n, err := tt.tree.Draw(context.Background(), pm)
			if err != nil {
				t.Fatalf("Draw() = %v", err)
			}
			if n != tt.want {
				t.Errorf("Draw() = %d segments, want %d", n, tt.want)
			}
			if tt.want == 0 && countNonBlack(pm) != 0 {
				t.Error("pixels drawn although no segment was")
			}
		})
	}
}

func TestHTree_Geometry(t *testing.T) {
	pm := NewPixmap(21, 21)
	center := Pt(10, 10)
	tree := &HTree{Center: &center, Half: 5, Order: 1, Color: White}
	if err := tree.Render(context.Background(), pm); err != nil {
		t.Fatalf("Render() = %v", err)
	}

	// Two 11-pixel verticals plus the 9 interior pixels of the bar.
	if got := countColor(pm, White); got != 11+11+9 {
		t.Errorf("drew %d pixels, want 31", got)
	}
	for y := 5; y <= 15; y++ {
		if pm.GetPixel(5, y) != White || pm.GetPixel(15, y) != White {
			t.Errorf("vertical pixel missing at row %d", y)
		}
	}
	for x := 5; x <= 15; x++ {
		if pm.GetPixel(x, 10) != White {
			t.Errorf("bar pixel missing at column %d", x)
		}
	}
}

func TestHTree_Defaults(t *testing.T) {
	pm := NewPixmap(256, 128)
	// Negative order means the default, non-positive half means min(w,h)/4 = 32.
	n, err := (&HTree{Order: -1, Color: White}).Draw(context.Background(), pm)
	if err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	// 32, 16, 8, 4, 2, 1: exactly six levels fit.
	if n != HTreeSegments(DefaultHTreeOrder) {
		t.Errorf("Draw() = %d segments, want %d", n, HTreeSegments(DefaultHTreeOrder))
	}
	if pm.GetPixel(128-32, 64) != White || pm.GetPixel(128+32, 64) != White {
		t.Error("outer H not centered on the pixmap")
	}
}

func TestHTree_OrderClamped(t *testing.T) {
	// Half 4096 stays above 1 for 13 levels, so only the cap stops recursion.
	// The tiny pixmap makes the clipped segments cheap.
	pm := NewPixmap(8, 8)
	n, err := (&HTree{Half: 1 << 12, Order: 100}).Draw(context.Background(), pm)
	if err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if n != HTreeSegments(MaxHTreeOrder) {
		t.Errorf("Draw() = %d segments, want %d", n, HTreeSegments(MaxHTreeOrder))
	}
}

func TestHTree_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&HTree{Half: 64, Order: 6}).Draw(ctx, NewPixmap(256, 256))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Draw() = %v, want context.Canceled", err)
	}
}
