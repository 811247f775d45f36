package api

import (
	"embed"
	"html/template"

	"github.com/okian/studytrack/internal/domain/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Page names.
const (
	pageForm    = "form.html"
	pageResult  = "result.html"
	pageMessage = "message.html"
)

type formPage struct {
	Courses          []catalog.Course
	SubjectsByCourse map[string][]string
}

type resultPage struct {
	Name      string
	Score     string
	TierLabel string
	TierCode  string
	Feedback  string
	Course    string
	Subject   string
	Advice    string
	Frequency string
	Note      string
}
