package generator

import (
	"os"
	"regexp"
)

// Substitution markers in the LaTeX templates. The title lives in a header
// fragment like {\Large\color{text} Python Developer}; style and company
// are \newcommand definitions the template's preamble switches on.
var (
	titleMarkerRe   = regexp.MustCompile(`(\{\\Large\\color\{text\}\s+)[^}]+(\})`)
	styleMarkerRe   = regexp.MustCompile(`(\\newcommand\{\\cvstyle\}\{)[^}]+(\})`)
	companyMarkerRe = regexp.MustCompile(`(\\newcommand\{\\company\}\{)[^}]*(\})`)
)

// RenderTemplate loads the template at path and substitutes the validated
// title, style and company into their markers. Each marker is replaced at
// its first occurrence only; a template without a given marker is left
// untouched for that field, so templates may opt out of style or company
// customization. All surrounding content is preserved byte for byte.
func RenderTemplate(path, title, style, company string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &TemplateLoadError{Path: path, Err: err}
	}

	content := string(data)
	content = replaceFirstGroup(titleMarkerRe, content, title)
	content = replaceFirstGroup(styleMarkerRe, content, style)
	content = replaceFirstGroup(companyMarkerRe, content, company)

	return content, nil
}

// replaceFirstGroup swaps the text between the two capture groups of the
// first match for value. The value is spliced in literally, so LaTeX-active
// characters in it are not interpreted as replacement syntax.
func replaceFirstGroup(re *regexp.Regexp, content, value string) string {
	loc := re.FindStringSubmatchIndex(content)
	if loc == nil {
		return content
	}

	// loc[2]:loc[3] is the opening group, loc[4]:loc[5] the closing brace.
	return content[:loc[3]] + value + content[loc[4]:]
}
