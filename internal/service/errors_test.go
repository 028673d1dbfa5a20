package service

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapError(t *testing.T) {
	base := ErrExtractionFailed
	wrapped := WrapError(base, "reading policy.txt")

	if !errors.Is(wrapped, ErrExtractionFailed) {
		t.Error("WrapError() should preserve the wrapped sentinel")
	}
	if !strings.Contains(wrapped.Error(), "reading policy.txt") {
		t.Errorf("WrapError() message = %q", wrapped.Error())
	}

	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidInput,
		ErrUnsupportedFormat,
		ErrExtractionFailed,
		ErrBackendUnavailable,
		ErrExternalService,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v", a, b)
			}
		}
	}
}
