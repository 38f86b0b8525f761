package vienna

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mzidar/adriatic-eod/internal/source"
)

var testDay = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func TestDailyExport(t *testing.T) {
	var gotURI string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURI = r.URL.RequestURI()
		w.Write([]byte("Date;Open;Last Close;Chg.%\n01/15/2024;10,50;10,80;2.5%\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	row, err := c.DailyExport(context.Background(), "omv-ag", testDay)
	if err != nil {
		t.Fatalf("DailyExport failed: %v", err)
	}

	wantURI := "/omv-ag/historical-data/?c48840%5BDOWNLOAD%5D=csv" +
		"&c48840%5BDATETIME_TZ_END_RANGE%5D=01%2F15%2F2024" +
		"&c48840%5BDATETIME_TZ_START_RANGE%5D=01%2F15%2F2024"
	if gotURI != wantURI {
		t.Errorf("request URI = %q, want %q", gotURI, wantURI)
	}

	if row["lastClose"] != "10,80" {
		t.Errorf("lastClose = %q, want %q", row["lastClose"], "10,80")
	}
	if row["chgPct"] != "2.5%" {
		t.Errorf("chgPct = %q, want %q", row["chgPct"], "2.5%")
	}
}

func TestDailyExport_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind source.Kind
	}{
		{"400 is client rejected", http.StatusBadRequest, "bad request", source.ClientRejected},
		{"500 is transient", http.StatusInternalServerError, "boom", source.Transient},
		{"header-only body is malformed", http.StatusOK, "Date;Open\n", source.Malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			_, err := c.DailyExport(context.Background(), "omv-ag", testDay)
			if err == nil {
				t.Fatal("expected error")
			}

			var fe *source.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *source.FetchError", err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", fe.Kind, tt.wantKind)
			}
		})
	}
}
