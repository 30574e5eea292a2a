package location

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	http "github.com/bogdanfinn/fhttp"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/models"
)

type doerFunc func(req *http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func respond(status int, body string) doerFunc {
	return func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
		}, nil
	}
}

func TestIPLocator_Locate(t *testing.T) {
	var gotURL string
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		gotURL = req.URL.String()
		return respond(200, `{"status":"success","lat":28.6139,"lon":77.209}`)(req)
	})

	coords, err := NewIPLocator(client).Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if coords.Latitude != 28.6139 || coords.Longitude != 77.209 {
		t.Errorf("coords = %+v", coords)
	}
	if gotURL != DefaultEndpoint {
		t.Errorf("URL = %s, want default endpoint", gotURL)
	}
}

func TestIPLocator_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doer  doerFunc
		check func(error) bool
	}{
		{
			name:  "transport",
			doer:  func(*http.Request) (*http.Response, error) { return nil, errors.New("no route") },
			check: apierrors.IsNetworkError,
		},
		{
			name:  "status",
			doer:  respond(503, `{}`),
			check: apierrors.IsAPIError,
		},
		{
			name:  "not json",
			doer:  respond(200, `<html>`),
			check: apierrors.IsParseError,
		},
		{
			name:  "service failure",
			doer:  respond(200, `{"status":"fail","message":"private range"}`),
			check: apierrors.IsParseError,
		},
		{
			name:  "missing coordinates",
			doer:  respond(200, `{"status":"success"}`),
			check: apierrors.IsParseError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewIPLocator(tt.doer).Locate(context.Background())
			if err == nil || !tt.check(err) {
				t.Errorf("err = %v, wrong classification", err)
			}
		})
	}
}

func TestIPLocator_Timeout(t *testing.T) {
	client := doerFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	start := time.Now()
	_, err := NewIPLocator(client, WithTimeout(20*time.Millisecond)).Locate(context.Background())
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > time.Second {
		t.Error("lookup was not bounded by the timeout")
	}
}

func TestIPLocator_Options(t *testing.T) {
	l := NewIPLocator(nil, WithEndpoint("http://geo.test/json"), WithTimeout(0), WithLogger(nil))
	if l.endpoint != "http://geo.test/json" {
		t.Errorf("endpoint = %s", l.endpoint)
	}
	if l.timeout != DefaultTimeout {
		t.Errorf("zero timeout should keep default, got %v", l.timeout)
	}
}

func TestHospitalURL(t *testing.T) {
	got := HospitalURL(models.Coordinates{Latitude: 28.6139, Longitude: 77.209})
	want := "https://www.google.com/maps/search/hospitals/@28.6139,77.209,13z"
	if got != want {
		t.Errorf("HospitalURL = %s, want %s", got, want)
	}
}
