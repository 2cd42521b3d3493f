package update

import "testing"

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.2.2", 1},
		{"1.2", "1.2.0", 0},
		{"0.9.9", "1.0.0", -1},
		{"2.0.0", "2.0.0", 0},
	}
	for _, c := range cases {
		if got := compare(c.a, c.b); got != c.want {
			t.Fatalf("compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if normalize(" v1.2.3 ") != "1.2.3" {
		t.Fatal("expected v prefix and spaces stripped")
	}
}

func TestCheck_SkipsInCI(t *testing.T) {
	t.Setenv("CI", "true")
	latest, newer, err := Check("1.0.0", false)
	if err != nil || latest != "" || newer {
		t.Fatalf("expected no-op in CI, got %q %v %v", latest, newer, err)
	}
}
