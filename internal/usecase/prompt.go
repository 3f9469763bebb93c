package usecase

import (
	"strings"
	"text/template"

	"github.com/xavierca1/leadmail/internal/entity"
)

const notSpecified = "Not specified"

type promptData struct {
	Sender           entity.SenderDetails
	RecipientName    string
	RecipientCompany string
	RecipientFocus   string
	Subject          string
}

func newPromptData(sender entity.SenderDetails, name, company, product string) promptData {
	focus := product
	if strings.TrimSpace(focus) == "" {
		focus = notSpecified
	}
	return promptData{
		Sender:           sender.WithDefaults(),
		RecipientName:    name,
		RecipientCompany: company,
		RecipientFocus:   focus,
	}
}

var emailPrompt = template.Must(template.New("email").Parse(`Generate a deeply personalized cold email from {{.Sender.Name}} at {{.Sender.Company}}
to {{.RecipientName}} at {{.RecipientCompany}}.

About the sender's product/service: {{.Sender.ProductDescription}}

About the recipient's focus: {{.RecipientFocus}}

The email should be in a {{.Sender.EmailTone}} tone.

Instructions for hyperpersonalization:
1. Use specific details about {{.RecipientCompany}} and their product focus area.
2. Find a unique angle or connection between the sender's offering and recipient's business.
3. Reference relevant industry trends, challenges, or opportunities specific to {{.RecipientCompany}}'s market.
4. Make a highly tailored value proposition that directly addresses the recipient's likely needs.
5. Each email should be substantially different from other emails in style, structure, and approach.

Return only a JSON object with two fields:
1. "subject": A compelling, personalized subject line that stands out
2. "body": The email body text that feels like it was written specifically for this recipient

The email body should be concise (3-4 paragraphs max), extremely personalized, and clearly show how
the sender's offering directly solves specific problems for the recipient's company.
`))

var subjectPrompt = template.Must(template.New("subject").Parse(`Generate a deeply personalized, unique email subject line for a cold email from {{.Sender.Name}} at {{.Sender.Company}}
to {{.RecipientName}} at {{.RecipientCompany}}.

About the sender's product/service: {{.Sender.ProductDescription}}
About the recipient's focus: {{.RecipientFocus}}

The tone should be {{.Sender.EmailTone}}.

Instructions for hyperpersonalization:
1. Use specific details about {{.RecipientCompany}} and their product focus area.
2. Find a unique angle or connection between the sender's offering and recipient's business.
3. Make it attention-grabbing but professional and relevant to {{.RecipientCompany}}'s needs.
4. Avoid generic phrases like "Regarding our services" or "Partnership opportunity"
5. Create a subject line that feels written specifically for {{.RecipientName}}.

Return only the subject line text, nothing else.
`))

var bodyPrompt = template.Must(template.New("body").Parse(`Generate the body of a deeply personalized cold email from {{.Sender.Name}} at {{.Sender.Company}}
to {{.RecipientName}} at {{.RecipientCompany}}.

About the sender's product/service: {{.Sender.ProductDescription}}
About the recipient's focus: {{.RecipientFocus}}

The email should be in a {{.Sender.EmailTone}} tone.

The subject line is: {{.Subject}}

Instructions for hyperpersonalization:
1. Use specific details about {{.RecipientCompany}} and their product focus area.
2. Find a unique angle or connection between the sender's offering and recipient's business.
3. Reference relevant industry trends, challenges, or opportunities specific to {{.RecipientCompany}}'s market.
4. Make a highly tailored value proposition that directly addresses the recipient's likely needs.
5. The email should feel completely unique and written specifically for this recipient.

The email body should be concise (3-4 paragraphs max), extremely personalized, and clearly show how
the sender's offering directly solves specific problems for the recipient's company.

Return only the email body text, nothing else.
`))

func render(t *template.Template, data promptData) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// BuildEmailPrompt returns the batch prompt for one lead.
func BuildEmailPrompt(sender entity.SenderDetails, lead entity.Lead) (string, error) {
	return render(emailPrompt, newPromptData(sender, lead.Name, lead.Company, lead.Product))
}

// BuildRegeneratePrompt returns the prompt that rewrites one part of email.
func BuildRegeneratePrompt(part RegeneratePart, sender entity.SenderDetails, email entity.GeneratedEmail) (string, error) {
	data := newPromptData(sender, email.RecipientName, email.RecipientCompany, email.RecipientProduct)
	if part == PartSubject {
		return render(subjectPrompt, data)
	}
	data.Subject = email.Subject
	return render(bodyPrompt, data)
}
