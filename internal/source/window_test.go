package source

import (
	"errors"
	"testing"
	"time"
)

func TestTwoDayWindow(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantFrom string
		wantTill string
	}{
		{
			name:     "mid month",
			now:      time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC),
			wantFrom: "2024-01-14",
			wantTill: "2024-01-15",
		},
		{
			name:     "first of month rolls back",
			now:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			wantFrom: "2024-02-29",
			wantTill: "2024-03-01",
		},
		{
			name:     "first of year rolls back",
			now:      time.Date(2025, 1, 1, 0, 5, 0, 0, time.UTC),
			wantFrom: "2024-12-31",
			wantTill: "2025-01-01",
		},
		{
			// No calendar awareness: a Monday run still asks for
			// Sunday..Monday, the provider answers with an empty history.
			name:     "monday window covers sunday",
			now:      time.Date(2024, 1, 8, 18, 0, 0, 0, time.UTC),
			wantFrom: "2024-01-07",
			wantTill: "2024-01-08",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := TwoDayWindow(tt.now)
			if got := w.From.Format("2006-01-02"); got != tt.wantFrom {
				t.Errorf("From = %s, want %s", got, tt.wantFrom)
			}
			if got := w.Till.Format("2006-01-02"); got != tt.wantTill {
				t.Errorf("Till = %s, want %s", got, tt.wantTill)
			}
		})
	}
}

func TestSingleDay(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	w := SingleDay(now)
	if !w.From.Equal(now) || !w.Till.Equal(now) {
		t.Errorf("SingleDay = %v..%v, want both %v", w.From, w.Till, now)
	}
}

func TestClassify(t *testing.T) {
	if got := Classify(400, errors.New("bad request")); got.Kind != ClientRejected {
		t.Errorf("Classify(400) kind = %s, want client_rejected", got.Kind)
	}
	for _, status := range []int{403, 404, 429, 500, 503} {
		if got := Classify(status, errors.New("boom")); got.Kind != Transient {
			t.Errorf("Classify(%d) kind = %s, want transient", status, got.Kind)
		}
	}
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	var err error = Transientf("do request: %w", cause)

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatal("errors.As failed to find *FetchError")
	}
	if fe.Kind != Transient {
		t.Errorf("Kind = %s, want transient", fe.Kind)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to find wrapped cause")
	}
}
