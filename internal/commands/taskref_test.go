package commands

import (
	"errors"
	"testing"
)

func TestParseTaskRef_Position(t *testing.T) {
	ref, err := ParseTaskRef([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.HasID() {
		t.Error("expected HasID to be false")
	}
	if ref.Num != 5 {
		t.Errorf("expected Num 5, got %d", ref.Num)
	}
}

func TestParseTaskRef_PositionMultiDigit(t *testing.T) {
	ref, err := ParseTaskRef([]string{"123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 123 {
		t.Errorf("expected Num 123, got %d", ref.Num)
	}
}

func TestParseTaskRef_TrimsSpace(t *testing.T) {
	ref, err := ParseTaskRef([]string{" 7 "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Num != 7 {
		t.Errorf("expected Num 7, got %d", ref.Num)
	}
}

func TestParseTaskRef_ID(t *testing.T) {
	ref, err := ParseTaskRef([]string{"id:6f1c-42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ref.HasID() {
		t.Error("expected HasID to be true")
	}
	if ref.ID != "6f1c-42" {
		t.Errorf("expected ID 6f1c-42, got %q", ref.ID)
	}
	if ref.Num != 0 {
		t.Errorf("expected Num 0, got %d", ref.Num)
	}
}

func TestParseTaskRef_EmptyID(t *testing.T) {
	_, err := ParseTaskRef([]string{"id:"})
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_NoArgs(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_ExtraArgs(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "unexpected argument: 2" {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	tests := []string{"abc", "a1", "-1", "1.5", "٣", "ID:abc", ""}
	for _, arg := range tests {
		t.Run(arg, func(t *testing.T) {
			_, err := ParseTaskRef([]string{arg})
			if err == nil {
				t.Fatalf("expected error for %q", arg)
			}
			if errors.Is(err, ErrTaskRefRequired) {
				t.Errorf("expected invalid reference error for %q, got %v", arg, err)
			}
		})
	}
}

func TestTaskRef_String(t *testing.T) {
	if got := (TaskRef{Num: 3}).String(); got != "3" {
		t.Errorf("expected %q, got %q", "3", got)
	}
	if got := (TaskRef{ID: "abc"}).String(); got != "id:abc" {
		t.Errorf("expected %q, got %q", "id:abc", got)
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{"١٢", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isAllDigits(tt.input); got != tt.expected {
				t.Errorf("isAllDigits(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeDue(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"  ", "", false},
		{"2024-05-01", "2024-05-01", false},
		{" 2024-05-01 ", "2024-05-01", false},
		{"2024-13-01", "", true},
		{"tomorrow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := normalizeDue(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("normalizeDue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("normalizeDue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOptionalString(t *testing.T) {
	var o optionalString
	if o.ptr() != nil {
		t.Fatal("expected nil before Set")
	}
	if err := o.Set(""); err != nil {
		t.Fatal(err)
	}
	p := o.ptr()
	if p == nil || *p != "" {
		t.Errorf("expected pointer to empty string, got %v", p)
	}
}

func TestOptionalBool(t *testing.T) {
	var o optionalBool
	if o.ptr() != nil {
		t.Fatal("expected nil before Set")
	}
	if err := o.Set("nope"); err == nil {
		t.Error("expected parse error")
	}
	if err := o.Set("false"); err != nil {
		t.Fatal(err)
	}
	p := o.ptr()
	if p == nil || *p {
		t.Errorf("expected pointer to false, got %v", p)
	}
}
