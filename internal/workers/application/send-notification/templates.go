package sendnotification

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	confirmationSubject = "Application received: {{entryTitleEng}}"
	confirmationBody    = "Dear {{primaryContactName}},\n\n" +
		"Thank you for entering {{entryTitleEng}} on behalf of {{companyNameEng}} " +
		"in the {{awardCategoryLabel}} category.\n\n" +
		"Your application reference is {{applicationId}}. " +
		"{{filesUploaded}} of {{filesAttempted}} files were received.\n"

	reviewerSubject = "New awards application: {{companyNameEng}}"

	// SNS rejects subjects of 100 characters or more.
	maxSubjectLength = 99
)

// renderTemplate replaces the {{key}} placeholders of tmpl in one pass.
// Placeholders with no value render empty. Substituted values are copied
// as is, so braces typed by an applicant are never expanded or removed.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	var b strings.Builder
	rest := tmpl

	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(rest[start:], "}}")
		if end == -1 {
			break
		}
		b.WriteString(rest[:start])
		b.WriteString(formatValue(data[rest[start+2:start+end]]))
		rest = rest[start+end+2:]
	}

	b.WriteString(rest)
	return b.String()
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

// snsSubject folds s into printable ASCII on a single line: accents are
// stripped, other non-ASCII runes dropped and runs of whitespace collapsed.
func snsSubject(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = b.Len() > 0
		case r > ' ' && r < unicode.MaxASCII:
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > maxSubjectLength {
		out = strings.TrimRight(out[:maxSubjectLength], " ")
	}
	return out
}
