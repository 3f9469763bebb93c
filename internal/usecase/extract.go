package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/xavierca1/leadmail/internal/entity"
)

// Where the stored subject and body came from.
const (
	SourceJSON     = "json"
	SourceText     = "text"
	SourceTemplate = "template"
)

type EmailContent struct {
	Subject string
	Body    string
	Source  string
}

var (
	subjectLabel = regexp.MustCompile(`(?i)subject:`)
	bodyLabel    = regexp.MustCompile(`(?i)body:`)
)

// ExtractEmailContent turns a completion reply into a subject and body.
//
// The span from the first '{' to the last '}' is decoded as {"subject","body"}.
// Without such a span the reply is scanned for "subject:" and "body:" lines.
// A span that does not decode yields the template. Fields left empty by
// either path are taken from the template.
func ExtractEmailContent(reply string, sender entity.SenderDetails, lead entity.Lead) EmailContent {
	var content EmailContent

	if span, ok := jsonSpan(reply); ok {
		var parsed struct {
			Subject string `json:"subject"`
			Body    string `json:"body"`
		}
		if err := json.Unmarshal([]byte(span), &parsed); err != nil {
			return FallbackEmailContent(sender, lead)
		}
		content = EmailContent{Subject: parsed.Subject, Body: parsed.Body, Source: SourceJSON}
	} else {
		content = parseLabelledLines(reply)
		content.Source = SourceText
	}

	content.Subject = strings.TrimSpace(content.Subject)
	content.Body = strings.TrimSpace(content.Body)
	if content.Subject == "" && content.Body == "" {
		return FallbackEmailContent(sender, lead)
	}

	if content.Subject == "" || content.Body == "" {
		fallback := FallbackEmailContent(sender, lead)
		if content.Subject == "" {
			content.Subject = fallback.Subject
		}
		if content.Body == "" {
			content.Body = fallback.Body
		}
	}
	return content
}

func jsonSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

func parseLabelledLines(reply string) EmailContent {
	var content EmailContent
	lines := strings.Split(strings.ReplaceAll(reply, "\r\n", "\n"), "\n")

	for _, line := range lines {
		if subjectLabel.MatchString(line) {
			content.Subject = strings.TrimSpace(replaceFirst(subjectLabel, line))
			break
		}
	}

	for i, line := range lines {
		if bodyLabel.MatchString(line) {
			content.Body = strings.TrimSpace(strings.Join(lines[i+1:], "\n"))
			break
		}
	}

	return content
}

func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// FallbackEmailContent builds a usable email from the sender and lead fields
// alone.
func FallbackEmailContent(sender entity.SenderDetails, lead entity.Lead) EmailContent {
	var subject, space string
	if lead.HasProduct() {
		subject = fmt.Sprintf("Enhancing %s at %s with %s", lead.Product, lead.Company, sender.Company)
		space = fmt.Sprintf(" in the %s space", lead.Product)
	} else {
		subject = fmt.Sprintf("Innovative solutions for %s with %s", lead.Company, sender.Company)
	}

	body := fmt.Sprintf("Dear %s,\n\n"+
		"I've been following the impressive developments at %s%s and noticed an opportunity where our specialized %s could provide significant value.\n\n"+
		"Our approach has helped similar organizations achieve substantial improvements in efficiency and outcomes. I'd love to discuss how we might tailor our solution to address your specific challenges at %s.\n\n"+
		"Would you be open to a brief conversation next week to explore this further?\n\n"+
		"Best regards,\n%s\n%s",
		lead.Name, lead.Company, space, sender.ProductDescription, lead.Company, sender.Name, sender.Company)

	return EmailContent{Subject: subject, Body: body, Source: SourceTemplate}
}

// CleanSubject normalizes a regenerated subject line.
func CleanSubject(s string) string {
	s = strings.TrimSpace(s)
	if loc := subjectLabel.FindStringIndex(s); loc != nil && loc[0] == 0 {
		s = strings.TrimSpace(s[loc[1]:])
	}
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}
