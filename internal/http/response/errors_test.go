package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorWithDetails(rec, http.StatusBadRequest, "bad date", CodeInvalidInput, "check_in_date")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "bad date" || body.Code != CodeInvalidInput || body.Details != "check_in_date" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestConvenienceHelpers(t *testing.T) {
	cases := []struct {
		name   string
		write  func(http.ResponseWriter, string)
		status int
		code   string
	}{
		{"not found", NotFound, http.StatusNotFound, CodeNotFound},
		{"unauthorized", Unauthorized, http.StatusUnauthorized, CodeUnauthorized},
		{"rate limit", RateLimit, http.StatusTooManyRequests, CodeRateLimit},
		{"check-in not open", CheckInNotOpen, http.StatusForbidden, CodeCheckInNotOpen},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.write(rec, "msg")
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var body ErrorResponse
			_ = json.NewDecoder(rec.Body).Decode(&body)
			if body.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, body.Code)
			}
		})
	}
}
