package voice

import "testing"

func TestCeilDivUint32(t *testing.T) {
	cases := []struct{ num, den, want uint32 }{
		{5, 2, 3},
		{4, 2, 2},
		{0, 5, 0},
		{7, 0, 0},
	}
	for _, c := range cases {
		if got := ceilDivUint32(c.num, c.den); got != c.want {
			t.Errorf("ceilDivUint32(%d, %d) = %d, want %d", c.num, c.den, got, c.want)
		}
	}
}

func TestAssertRangePanicsOnlyWhenEnabled(t *testing.T) {
	DebugAssertions = false
	assertRange(100, 0, 10) // must not panic

	DebugAssertions = true
	defer func() { DebugAssertions = false }()
	defer func() {
		if recover() == nil {
			t.Fatal("assertRange must panic when DebugAssertions is set and v is out of range")
		}
	}()
	assertRange(100, 0, 10)
}
