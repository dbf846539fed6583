package device

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func staticToken() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "test-token",
		Expiry:      time.Now().Add(time.Hour),
	})
}

func TestGetHeartRateSamplesPaginated(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.RawQuery)

		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer token", got)
		}
		if r.URL.Path != "/v1/heartrate" {
			t.Errorf("path = %q, want /v1/heartrate", r.URL.Path)
		}

		switch r.URL.Query().Get("page_token") {
		case "":
			fmt.Fprint(w, `{"samples":[{"date":"2024-03-01","time":"08:00","bpm":72}],"next_token":"p2"}`)
		case "p2":
			fmt.Fprint(w, `{"samples":[{"date":"2024-03-01","time":"08:01","bpm":74}],"next_token":""}`)
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("page_token"))
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken())
	samples, err := client.GetHeartRateSamples(context.Background(), "2024-03-01")
	if err != nil {
		t.Fatalf("fetching: %v", err)
	}

	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2 across pages", len(samples))
	}
	if samples[0].HeartRate != 72 || samples[1].HeartRate != 74 {
		t.Errorf("unexpected samples: %v", samples)
	}
	if len(requests) != 2 {
		t.Fatalf("made %d requests, want 2", len(requests))
	}

	// The since filter rides along on every page.
	for _, q := range requests {
		if !strings.Contains(q, "since=2024-03-01") {
			t.Errorf("request %q missing since filter", q)
		}
	}
}

func TestGetHeartRateSamplesRejectsInvalidPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"samples":[{"date":"2024-03-01","time":"08:00","bpm":600}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken())
	if _, err := client.GetHeartRateSamples(context.Background(), ""); err == nil {
		t.Error("expected a validation error for an implausible bpm value")
	}
}

func TestGetSleepNights(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/sleep" {
			t.Errorf("path = %q, want /v1/sleep", r.URL.Path)
		}
		fmt.Fprint(w, `{"nights":[{"date":"2024-03-01","deep_minutes":96,"light_minutes":264,"rem_minutes":120,"wake_minutes":15,"start":"2024-02-29T23:00:00Z","end":"2024-03-01T07:15:00Z"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken())
	nights, err := client.GetSleepNights(context.Background(), "")
	if err != nil {
		t.Fatalf("fetching: %v", err)
	}
	if len(nights) != 1 || nights[0].TotalSleepMinutes() != 480 {
		t.Errorf("unexpected nights: %v", nights)
	}
	if nights[0].Start.IsZero() {
		t.Error("start timestamp not decoded")
	}
}

func TestGetActivityMinutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/activity" {
			t.Errorf("path = %q, want /v1/activity", r.URL.Path)
		}
		fmt.Fprint(w, `{"minutes":[{"date":"2024-03-01","time":"08:00","steps":110,"active_calories":5.2}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken())
	minutes, err := client.GetActivityMinutes(context.Background(), "")
	if err != nil {
		t.Fatalf("fetching: %v", err)
	}
	if len(minutes) != 1 || minutes[0].Steps != 110 || minutes[0].ActiveCalories != 5.2 {
		t.Errorf("unexpected minutes: %v", minutes)
	}
}

func TestGetJSONErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, staticToken())
	_, err := client.GetHeartRateSamples(context.Background(), "")
	if err == nil {
		t.Fatal("expected an error for a 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code: %v", err)
	}
}
