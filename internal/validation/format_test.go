package validation

import (
	"errors"
	"testing"
)

type theme string

const (
	themeLight theme = "light"
	themeDark  theme = "dark"
)

func TestFormatValidValues(t *testing.T) {
	got := FormatValidValues([]theme{themeLight, themeDark})
	want := "light, dark"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if got := FormatValidValues([]theme(nil)); got != "" {
		t.Fatalf("expected empty string for no values, got %q", got)
	}
}

func TestFormatInvalidValueError(t *testing.T) {
	base := errors.New("invalid theme")
	err := FormatInvalidValueError(base, theme("neon"), []theme{themeLight, themeDark})
	if !errors.Is(err, base) {
		t.Fatalf("expected error to wrap %v", base)
	}

	want := "invalid theme: \"neon\" (valid: light, dark)"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
