package validate

import "testing"

func TestPIN(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"411026", true},
		{" 411026 ", true},
		{"041102", false}, // leading zero
		{"41102", false},
		{"4110267", false},
		{"41102a", false},
		{"", false},
	}
	for _, tc := range cases {
		if _, ok := PIN(tc.in); ok != tc.ok {
			t.Errorf("PIN(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
	}
}

func TestQ(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"ss 304", true},
		{"copper-rod", true},
		{"O'Neil alloys", true},
		{"'; DROP TABLE products;--", false},
		{"<script>", false},
		{"", false},
	}
	for _, tc := range cases {
		if _, ok := Q(tc.in); ok != tc.ok {
			t.Errorf("Q(%q) ok = %v, want %v", tc.in, ok, tc.ok)
		}
	}
}

func TestQty(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"25", 25},
		{"0", 1},
		{"-3", 1},
		{"garbage", 1},
		{"999999", 100000},
	}
	for _, tc := range cases {
		if got := Qty(tc.in); got != tc.want {
			t.Errorf("Qty(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestIDAndSlug(t *testing.T) {
	if _, ok := ID("prod-cu-rod-12"); !ok {
		t.Error("ID rejected a plain product id")
	}
	if _, ok := ID("8b33f2a0-1b2c-4d5e-9f00-aabbccddeeff"); !ok {
		t.Error("ID rejected a uuid")
	}
	if _, ok := ID("a b"); ok {
		t.Error("ID accepted whitespace")
	}
	if _, ok := ID("../../etc/passwd"); ok {
		t.Error("ID accepted a path")
	}

	if _, ok := Slug("stainless-steel-304-sheet-2mm"); !ok {
		t.Error("Slug rejected a valid slug")
	}
	if _, ok := Slug("Upper-Case"); ok {
		t.Error("Slug accepted upper case")
	}
	if _, ok := Slug("-leading"); ok {
		t.Error("Slug accepted a leading dash")
	}
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"Passw0rd!", true},
		{"Sunil#2024", true},
		{"alllower1!", false},
		{"ALLUPPER1!", false},
		{"NoDigits!!", false},
		{"NoSymbol11", false},
		{"Sh0rt!a", false},
	}
	for _, tc := range cases {
		if got := Password(tc.in); got != tc.ok {
			t.Errorf("Password(%q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}
