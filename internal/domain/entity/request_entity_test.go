package entity

import "testing"

func TestRequestStatusValid(t *testing.T) {
	cases := []struct {
		status RequestStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusAccepted, true},
		{StatusDeclined, true},
		{RequestStatus(""), false},
		{RequestStatus("maybe"), false},
		{RequestStatus("Pending"), false},
	}
	for _, tc := range cases {
		if got := tc.status.Valid(); got != tc.want {
			t.Errorf("Valid(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	cases := []struct {
		status RequestStatus
		want   bool
	}{
		{StatusPending, false},
		{StatusAccepted, true},
		{StatusDeclined, true},
		{RequestStatus("unknown"), false},
	}
	for _, tc := range cases {
		if got := tc.status.Terminal(); got != tc.want {
			t.Errorf("Terminal(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}
