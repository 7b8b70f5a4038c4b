package generator

import (
	"strings"
)

const (
	maxTitleLength   = 200
	maxCompanyLength = 120
)

// DefaultStyle is applied when no style is supplied.
const DefaultStyle = "modern"

// allowedStyles is the closed set of visual theme keys the templates
// understand. Kept sorted for the validation error message.
var allowedStyles = []string{"bold", "elegant", "luxe", "modern", "slate"}

// ValidateTitle checks and trims the CV title. Only letters, digits,
// spaces, hyphens and underscores are allowed; the title later becomes
// part of the artifact filename.
func ValidateTitle(title string) (string, error) {
	if title == "" {
		return "", &ValidationError{Reason: "Title parameter is required"}
	}

	for _, r := range title {
		if !isTitleRune(r) {
			return "", &ValidationError{Reason: "Title contains invalid characters"}
		}
	}

	if len(title) > maxTitleLength {
		return "", &ValidationError{Reason: "Title is too long (max 200 characters)"}
	}

	return strings.TrimSpace(title), nil
}

// ValidateStyle resolves the style key. Empty input falls back to
// DefaultStyle; anything else must be a member of the allowed set after
// trimming and lower-casing.
func ValidateStyle(style string) (string, error) {
	if style == "" {
		return DefaultStyle, nil
	}

	style = strings.ToLower(strings.TrimSpace(style))
	for _, allowed := range allowedStyles {
		if style == allowed {
			return style, nil
		}
	}

	return "", &ValidationError{
		Reason: "Style must be one of: " + strings.Join(allowedStyles, ", "),
	}
}

// ValidateCompany normalizes the optional target-company label. Absent or
// whitespace-only input resolves to the empty string, which blanks the
// company marker in the template.
func ValidateCompany(company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", nil
	}

	for _, r := range company {
		if !isCompanyRune(r) {
			return "", &ValidationError{Reason: "Company contains invalid characters"}
		}
	}

	if len(company) > maxCompanyLength {
		return "", &ValidationError{Reason: "Company is too long (max 120 characters)"}
	}

	return company, nil
}

// ValidateTemplateName rejects any character outside [A-Za-z0-9-_]. The
// name is joined onto the templates root, so this is what prevents path
// traversal.
func ValidateTemplateName(name string) error {
	for _, r := range name {
		if !isAlphanumeric(r) && r != '-' && r != '_' {
			return &ValidationError{Reason: "Invalid template name"}
		}
	}
	return nil
}

func isTitleRune(r rune) bool {
	return isAlphanumeric(r) || r == ' ' || r == '-' || r == '_'
}

func isCompanyRune(r rune) bool {
	if isAlphanumeric(r) || r == ' ' {
		return true
	}
	switch r {
	case '-', '_', '.', ',', '&', '(', ')', '\'', '/':
		return true
	}
	return false
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
