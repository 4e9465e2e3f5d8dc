package kakao_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tubemap/internal/services"
	"tubemap/internal/services/kakao"
)

func TestKeywordSearchParsesDocuments(t *testing.T) {
	var gotAuth, gotQuery, gotSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		gotSize = r.URL.Query().Get("size")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"documents":[{
			"id":"10332413",
			"place_name":"남포면옥",
			"category_name":"음식점 > 한식 > 냉면",
			"category_group_code":"FD6",
			"phone":"02-777-3131",
			"address_name":"서울 중구 다동 103",
			"road_address_name":"서울 중구 남대문로9길 24",
			"x":"126.981204",
			"y":"37.568015"
		}]}`))
	}))
	defer server.Close()

	client := kakao.NewClient(kakao.Config{APIKey: "secret", BaseURL: server.URL})
	places, err := client.KeywordSearch(context.Background(), "서울 중구 남포면옥", 5)
	if err != nil {
		t.Fatalf("KeywordSearch failed: %v", err)
	}

	if gotAuth != "KakaoAK secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery != "서울 중구 남포면옥" || gotSize != "5" {
		t.Errorf("query = %q size = %q", gotQuery, gotSize)
	}
	if len(places) != 1 {
		t.Fatalf("got %d places, want 1", len(places))
	}
	place := places[0]
	if place.ID != "10332413" || place.Name != "남포면옥" {
		t.Errorf("unexpected place identity: %#v", place)
	}
	if place.Lat != 37.568015 || place.Lng != 126.981204 {
		t.Errorf("coordinates = (%v, %v)", place.Lat, place.Lng)
	}
}

func TestKeywordSearchRejectsMalformedDocuments(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{"documents":[{"place_name":"가게","x":"127.0","y":"37.5"}]}`},
		{"missing name", `{"documents":[{"id":"1","x":"127.0","y":"37.5"}]}`},
		{"bad coordinates", `{"documents":[{"id":"1","place_name":"가게","x":"not-a-number","y":"37.5"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := kakao.NewClient(kakao.Config{APIKey: "secret", BaseURL: server.URL})
			_, err := client.KeywordSearch(context.Background(), "가게", 5)
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestKeywordSearchNon200IsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := kakao.NewClient(kakao.Config{APIKey: "secret", BaseURL: server.URL})
	_, err := client.KeywordSearch(context.Background(), "가게", 5)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("err = %v, want transient error", err)
	}
}

func TestKeywordSearchRequiresAPIKey(t *testing.T) {
	client := kakao.NewClient(kakao.Config{})
	if _, err := client.KeywordSearch(context.Background(), "가게", 5); err == nil {
		t.Fatal("expected error without api key")
	}
}
