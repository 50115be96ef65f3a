package d3d

import (
	"math/rand"
	"testing"
)

var vertexSizeTests = []struct {
	in  uint32
	out int
}{
	{0x0, 0},
	{0x2, 12},
	{0x12, 24},
	{0x42, 16},
	{0x102, 20},
	{0x80000002, 16},
	{0x00010202, 32},
	{0x112, 32},
	{0x212, 40},
	{0x116, 36},
	{0x252, 44},
	{0x352, 52},
	{0x152, 36},
	{0x242, 32},
	{0x1c2, 24},
	{0x1c4, 28},
	{0x32, 28},
	{0x80000000, 4},
	{0xf00, 120},
	{0x00030102, 16},
	{0x00020102, 28},
	{0x00010102, 24},
	{0x00fff000, 0}, // tex count only comes from bits 8..11
	{0xffffffff, 32 + 12 + 4 + 4 + 4 + 4*8 + 7*8},
}

func TestVertexSize(t *testing.T) {
	for _, test := range vertexSizeTests {
		if result := VertexSize(test.in); result != test.out {
			t.Errorf("VertexSize(0x%x)=%d; expected %d", test.in, result, test.out)
		}
	}
}

func TestVertexSizePositionTable(t *testing.T) {
	expected := map[uint32]int{2: 12, 4: 16, 6: 16, 8: 20, 10: 24, 12: 28, 14: 32}
	for field := uint32(0); field < 16; field++ {
		fvf := field & FVF_POSITION_MASK
		if result := VertexSize(fvf); result != expected[fvf] {
			t.Errorf("VertexSize(0x%x)=%d; expected %d", fvf, result, expected[fvf])
		}
	}
	// bit 0 is not part of the position field
	if result := VertexSize(0x3); result != 12 {
		t.Errorf("VertexSize(0x3)=%d; expected 12", result)
	}
}

func TestVertexSizeDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		fvf := rng.Uint32()
		if a, b := VertexSize(fvf), VertexSize(fvf); a != b {
			t.Fatalf("VertexSize(0x%x) returned %d then %d", fvf, a, b)
		}
		if FVF(fvf).VertexSize() != VertexSize(fvf) {
			t.Fatalf("FVF(0x%x).VertexSize() differs from VertexSize", fvf)
		}
	}
}

func TestVertexSizeFlagContribution(t *testing.T) {
	flags := []struct {
		bit  uint32
		size int
	}{
		{FVF_NORMAL, 12},
		{FVF_PSIZE, 4},
		{FVF_DIFFUSE, 4},
		{FVF_SIGN, 4},
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		// the sign bit doubles as the code of texture set 7, so keep tex count below 8
		fvf := rng.Uint32() &^ 0x800
		for _, flag := range flags {
			without := VertexSize(fvf &^ flag.bit)
			with := VertexSize(fvf | flag.bit)
			if with-without != flag.size {
				t.Errorf("flag 0x%x on 0x%x adds %d; expected %d", flag.bit, fvf, with-without, flag.size)
			}
		}
	}
}

func TestVertexSizeZeroCodesMatchDefault(t *testing.T) {
	for n := uint32(0); n <= 7; n++ {
		base := FVF_XYZ | n<<FVF_TEXCOUNT_SHIFT
		// only set 7 carries a nonzero code, first n sets read code 0
		table := base | 1<<30
		if VertexSize(base) != 12+int(n)*8 {
			t.Errorf("default path for %d sets = %d", n, VertexSize(base))
		}
		if VertexSize(table) != VertexSize(base) {
			t.Errorf("table path for %d sets = %d; default path = %d", n, VertexSize(table), VertexSize(base))
		}
	}
}

func TestVertexSizeTableRunsOut(t *testing.T) {
	// 15 sets with only the first code nonzero, the rest read as zero pairs
	fvf := uint32(FVF_XYZ | 0xf00 | 0x00010000)
	if result := VertexSize(fvf); result != 12+12+14*8 {
		t.Errorf("VertexSize(0x%x)=%d; expected %d", fvf, result, 12+12+14*8)
	}
}

func BenchmarkVertexSize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		VertexSize(uint32(i) * 2654435761)
	}
}
