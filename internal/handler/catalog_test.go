package handler

import "testing"

func TestRowLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   uint32
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tc := range cases {
		if got := rowLabel(tc.in); got != tc.want {
			t.Fatalf("rowLabel(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSeatLabel(t *testing.T) {
	t.Parallel()
	if got := seatLabel("AA", 12); got != "AA12" {
		t.Fatalf("seatLabel(AA, 12) = %q", got)
	}
}
