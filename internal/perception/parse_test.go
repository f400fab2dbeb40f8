package perception

import "testing"

func TestParseNumber(t *testing.T) {
	cases := []struct {
		text string
		want int
		ok   bool
	}{
		{"02", 2, true},
		{"10", 10, true},
		{"1", 1, true},
		{"波次3", 3, true}, // non-ASCII label glyphs are separators
		{"$3,999,600", 3999600, true},
		{"3.979,600", 3979600, true},
		{"4000000", 4000000, true},
		{"no digits here", 0, false},
		{"", 0, false},
		{"$,.", 0, false},
		{"3O", 0, false},  // digit misread, not a value of 3
		{"l2", 0, false},  // "12" with a misread one
		{"9999999999999999999", 0, false}, // overflow guard
	}
	for _, c := range cases {
		got, ok := parseNumber(c.text)
		if ok != c.ok || got != c.want {
			t.Errorf("parseNumber(%q) = (%d, %v), want (%d, %v)", c.text, got, ok, c.want, c.ok)
		}
	}
}

func TestFindTextContaining(t *testing.T) {
	results := []Result{
		{Text: "Shop"},
		{Text: "Anti-Air Missile", Box: boxAt(100, 200)},
		{Text: "Repair Station"},
	}

	r, ok := FindTextContaining(results, "Missile")
	if !ok {
		t.Fatal("expected to find Missile")
	}
	cx, cy := r.Center()
	if cx != 120 || cy != 210 {
		t.Errorf("Center = (%d,%d), want (120,210)", cx, cy)
	}

	if _, ok := FindTextContaining(results, "Turret"); ok {
		t.Error("found text that is not present")
	}
}

func TestContainsAny(t *testing.T) {
	results := []Result{{Text: "MISSION COMPLETE"}, {Text: "score 12000"}}

	if !containsAny(results, []string{"Victory", "COMPLETE"}) {
		t.Error("marker not matched")
	}
	if containsAny(results, []string{"Defeat"}) {
		t.Error("matched a marker that is not present")
	}
	if containsAny(results, []string{""}) {
		t.Error("empty marker must not match")
	}
}
