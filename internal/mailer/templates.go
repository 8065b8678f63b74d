package mailer

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	TimeoffRequestUserTemplate = "timeoff_request_user.html"
	TimeoffHRTemplate          = "timeoff_hr.html"
	TimeoffStatusTemplate      = "timeoff_status.html"
	WelcomeUserTemplate        = "welcome_user.html"
)

// Render executes the named embedded template with the event payload.
func Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
