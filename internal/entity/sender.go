package entity

type EmailTone string

const (
	ToneProfessional EmailTone = "professional"
	ToneFriendly     EmailTone = "friendly"
	TonePersuasive   EmailTone = "persuasive"
	ToneUrgent       EmailTone = "urgent"
)

// Tones lists the accepted tones in the order the form shows them.
var Tones = []EmailTone{ToneProfessional, ToneFriendly, TonePersuasive, ToneUrgent}

func (t EmailTone) Valid() bool {
	for _, known := range Tones {
		if t == known {
			return true
		}
	}
	return false
}

// SenderDetails identifies who the drafts are written for.
type SenderDetails struct {
	Name               string    `json:"name"`
	Company            string    `json:"company"`
	ProductDescription string    `json:"productDescription"`
	EmailTone          EmailTone `json:"emailTone"`
}

// WithDefaults returns a copy with an empty tone set to professional.
func (s SenderDetails) WithDefaults() SenderDetails {
	if s.EmailTone == "" {
		s.EmailTone = ToneProfessional
	}
	return s
}
