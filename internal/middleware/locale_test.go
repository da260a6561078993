package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		fallback string
		country  string
		want     string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "id-ID")
			},
			country: "US",
			want:    "id",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			want: "en",
		},
		{
			name: "accept-language id preference",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "id-ID,en;q=0.8")
			},
			want: "id",
		},
		{
			name: "unsupported language falls back to english",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
			},
			want: "en",
		},
		{
			name:    "country id maps to id",
			country: "ID",
			want:    "id",
		},
		{
			name:    "country non-id falls back to en",
			country: "US",
			want:    "en",
		},
		{
			name:     "configured fallback",
			fallback: "id",
			want:     "id",
		},
		{
			name: "default to en",
			want: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.setup != nil {
				tt.setup(r)
			}
			got := detectLocale(r, tt.fallback, tt.country)
			if got != tt.want {
				t.Fatalf("detectLocale mismatch: got %q want %q", got, tt.want)
			}
		})
	}
}

func TestLocaleMiddlewareStoresContextValues(t *testing.T) {
	lookup := func(ip string) (string, error) { return "ID", nil }

	var gotLocale, gotCountry string
	handler := Locale("en", lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLocale = LocaleFromContext(r.Context())
		gotCountry = CountryFromContext(r.Context())
	}))

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.1:1234"
	handler.ServeHTTP(httptest.NewRecorder(), r)

	if gotLocale != "id" {
		t.Fatalf("locale mismatch: got %q want %q", gotLocale, "id")
	}
	if gotCountry != "ID" {
		t.Fatalf("country mismatch: got %q want %q", gotCountry, "ID")
	}
}
