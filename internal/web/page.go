package web

import (
	"embed"
	"html/template"

	"github.com/yildizm/sentimoji/internal/formatter"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "index.html"

func loadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// pageData is what the form template renders
type pageData struct {
	Input   string
	Loading bool
	Error   string
	Result  *formatter.AnalysisOutput
	Legend  []*formatter.TierOutput
}

func newPageData(state sentiment.State) pageData {
	return pageData{
		Input:   state.Input,
		Loading: state.Loading(),
		Error:   state.Error,
		Result:  formatter.NewAnalysisOutput(state.Outcome),
		Legend:  formatter.LegendOutput(),
	}
}
