package encoder

import "testing"

func TestQualityBounds(t *testing.T) {
	q := NewQuality(80, 20, 30, 3000, true) // 100 KB per frame budget
	for i := 0; i < 100; i++ {
		q.Adjust(10000)
	}
	if v := q.Value(); v != 20 {
		t.Errorf("got quality %v after sustained oversize, want floor 20", v)
	}
	for i := 0; i < 100; i++ {
		q.Adjust(1)
	}
	if v := q.Value(); v != 80 {
		t.Errorf("got quality %v after sustained undersize, want base 80", v)
	}
}

func TestQualityHysteresis(t *testing.T) {
	q := NewQuality(80, 20, 30, 3000, true)
	for _, size := range []float64{70, 100, 119.9} {
		q.Adjust(size)
		if v := q.Value(); v != 80 {
			t.Errorf("size %v KB moved quality to %v, want 80 inside the stable band", size, v)
		}
	}
}

func TestQualityDisabled(t *testing.T) {
	q := NewQuality(65, 20, 30, 3000, false)
	q.Adjust(100000)
	q.Adjust(0.001)
	if v := q.Value(); v != 65 {
		t.Errorf("got quality %v, want fixed 65 with adaptation off", v)
	}
}

func TestQualityConvergence(t *testing.T) {
	q := NewQuality(80, 10, 30, 1500, true) // 50 KB per frame budget
	// a synthetic source where frames compress to their quality level in KB,
	// so the stable band is 35..60
	for i := 0; i < 100; i++ {
		q.Adjust(float64(q.Value()))
	}
	v := q.Value()
	if float64(v) > 60 || float64(v) < 35 {
		t.Fatalf("quality %v did not settle inside the band [35,60]", v)
	}
	q.Adjust(float64(v))
	if q.Value() != v {
		t.Errorf("quality moved from %v to %v inside the stable band", v, q.Value())
	}
}
