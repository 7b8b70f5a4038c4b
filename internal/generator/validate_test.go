package generator

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple title", input: "Senior Developer", want: "Senior Developer"},
		{name: "digits hyphens underscores", input: "Dev_2024-v2", want: "Dev_2024-v2"},
		{name: "surrounding whitespace trimmed", input: "  Backend Engineer  ", want: "Backend Engineer"},
		{name: "empty", input: "", wantErr: true},
		{name: "semicolon rejected", input: "Dev; rm -rf /", wantErr: true},
		{name: "angle bracket rejected", input: "Dev <script>", wantErr: true},
		{name: "dollar rejected", input: "Dev $HOME", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 201), wantErr: true},
		{name: "exactly max length", input: strings.Repeat("a", 200), want: strings.Repeat("a", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTitle(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateTitle(%q) expected error, got %q", tt.input, got)
				}
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("ValidateTitle(%q) error type = %T, want *ValidationError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateTitle(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty defaults to modern", input: "", want: "modern"},
		{name: "uppercase normalized", input: "ELEGANT", want: "elegant"},
		{name: "whitespace trimmed", input: "  bold  ", want: "bold"},
		{name: "luxe allowed", input: "luxe", want: "luxe"},
		{name: "slate allowed", input: "slate", want: "slate"},
		{name: "unknown style", input: "gothic", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateStyle(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateStyle(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateStyle(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateStyle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateCompany(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty stays empty", input: "", want: ""},
		{name: "whitespace only stays empty", input: "   ", want: ""},
		{name: "simple name", input: "ACME", want: "ACME"},
		{name: "punctuation allow-list", input: "Smith, Jones & Co. (Zurich) / 'Labs'", want: "Smith, Jones & Co. (Zurich) / 'Labs'"},
		{name: "semicolon rejected", input: "ACME; DROP TABLE", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 121), wantErr: true},
		{name: "exactly max length", input: strings.Repeat("a", 120), want: strings.Repeat("a", 120)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCompany(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateCompany(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateCompany(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateCompany(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateTemplateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain name", input: "resume_balz"},
		{name: "hyphenated", input: "resume-v2"},
		{name: "path traversal", input: "../etc/passwd", wantErr: true},
		{name: "slash", input: "dir/name", wantErr: true},
		{name: "space", input: "my template", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplateName(tt.input)
			if tt.wantErr && err == nil {
				t.Fatalf("ValidateTemplateName(%q) expected error", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ValidateTemplateName(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}
