package mail

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

const (
	TemplateVerification  = "email_verification"
	TemplateWelcome       = "welcome"
	TemplatePasswordReset = "password_reset"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

var subjects = map[string]string{
	TemplateVerification:  "Подтверждение email",
	TemplateWelcome:       "Добро пожаловать",
	TemplatePasswordReset: "Сброс пароля",
}

// TemplateData содержит поля, доступные в шаблонах писем.
type TemplateData struct {
	SchoolName string
	UserName   string
	URL        string
	Password   string
	Year       int
}

func render(name string, data TemplateData) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&tb, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("ошибка шаблона %s.txt: %w", name, err)
	}
	if err := htmlTemplates.ExecuteTemplate(&hb, name+".html", data); err != nil {
		return "", "", fmt.Errorf("ошибка шаблона %s.html: %w", name, err)
	}
	return tb.String(), hb.String(), nil
}
