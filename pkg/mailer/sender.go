package mailer

import (
	"context"
	"fmt"
	"strings"

	"smartcalda/entities"
)

// Submission is the outbound payload of the email cloud function. The
// function builds its own PDF from the summaries; we never ship blobs.
type Submission struct {
	Summaries    []entities.RecommendationSummary `json:"summaries"`
	EmailTo      string                           `json:"emailTo"`
	EmailSubject string                           `json:"emailSubject"`
	EmailBody    string                           `json:"emailBody"`
}

// Sender delivers a finalized report to the email endpoint. A failed send
// is non-fatal to the run: the local report already exists.
type Sender interface {
	Send(ctx context.Context, sub Submission) error
}

// DefaultEnvelope pre-fills the subject and body from the sector list,
// the way the review step did it.
func DefaultEnvelope(summaries []entities.RecommendationSummary) (subject, body string) {
	var sectors []string
	for _, s := range summaries {
		if s.Sector != "" {
			sectors = append(sectors, s.Sector)
		}
	}
	last := ""
	if len(sectors) > 0 {
		last = sectors[len(sectors)-1]
	}
	subject = fmt.Sprintf("Recomendação de Defensivos – Setor %s", last)
	body = fmt.Sprintf(
		"Olá,\n\nSegue em anexo o relatório técnico de recomendação agrícola para o(s) setor(es): %s.\n\nAtenciosamente,\nSmart Recomendação Agrícola",
		strings.Join(sectors, ", "))
	return subject, body
}
