package services_test

import (
	"errors"
	"strings"
	"testing"

	"tubemap/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("connection refused")
	err := services.Wrap(services.ErrTransient, "kakao", "keyword search", "http error", inner)

	if !errors.Is(err, services.ErrTransient) {
		t.Error("marker lost")
	}
	if !errors.Is(err, inner) {
		t.Error("inner error lost")
	}
	for _, want := range []string{"kakao", "keyword search", "http error", "connection refused"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("message %q missing %q", err, want)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "youtube", "request", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Errorf("err = %v, want transient marker", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Errorf("err = %v", err)
	}
}
