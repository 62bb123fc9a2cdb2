package resend

import (
	"html/template"
	"strings"

	"github.com/estudiosur/site-backend/internal/model"
)

// bodyTemplate is the fixed notification layout. Submission fields are
// already sanitized upstream, but html/template escapes them again anyway.
const bodyTemplate = `<!DOCTYPE html>
<html lang="es">
<body style="font-family: sans-serif; color: #1f2430; max-width: 600px;">
  <h2 style="border-bottom: 2px solid #c8a96a; padding-bottom: 8px;">Nuevo mensaje de contacto</h2>
  <table cellpadding="6" cellspacing="0">
    <tr><td><strong>Nombre</strong></td><td>{{.Submission.Name}}</td></tr>
    <tr><td><strong>Email</strong></td><td>{{.Submission.Email}}</td></tr>
    {{if .Submission.Phone}}<tr><td><strong>Teléfono</strong></td><td>{{.Submission.Phone}}</td></tr>{{end}}
    {{if .Submission.Topic}}<tr><td><strong>Tema</strong></td><td>{{.Submission.Topic}}</td></tr>{{end}}
    <tr><td><strong>Asunto</strong></td><td>{{.Submission.Subject}}</td></tr>
    <tr><td><strong>Preferencia</strong></td><td>{{.Submission.Preference}}</td></tr>
  </table>
  <h3>Mensaje</h3>
  <p style="white-space: pre-wrap;">{{.Submission.Message}}</p>
  <hr style="border: none; border-top: 1px solid #ddd;">
  <p style="color: #8a8f98; font-size: 12px;">
    IP: {{.Meta.IP}} · User-Agent: {{.Meta.UserAgent}} · Recibido: {{.Meta.Timestamp}}
  </p>
</body>
</html>`

var emailTemplate = template.Must(template.New("notification").Parse(bodyTemplate))

// renderBody fills the notification template with one submission and its
// request metadata.
func renderBody(sub model.ContactSubmission, meta model.SubmissionMetadata) (string, error) {
	var buf strings.Builder
	err := emailTemplate.Execute(&buf, struct {
		Submission model.ContactSubmission
		Meta       model.SubmissionMetadata
	}{sub, meta})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
