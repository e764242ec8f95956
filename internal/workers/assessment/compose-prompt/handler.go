// internal/workers/assessment/compose-prompt/handler.go
package composeprompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	apperrors "salesfit-assessment/internal/common/errors"
	"salesfit-assessment/internal/models"
	normalizechecklist "salesfit-assessment/internal/workers/assessment/normalize-checklist"
)

const (
	TaskType = "compose-prompt"

	// ComposerVersion identifies the template together with the taxonomy it renders.
	ComposerVersion = "1.0+" + normalizechecklist.TaxonomyVersion
)

//go:embed prompt.tmpl
var templateFS embed.FS

var promptTemplate = template.Must(
	template.New("prompt.tmpl").
		Funcs(template.FuncMap{
			"money": FormatMoney,
			"glyph": Glyph,
		}).
		ParseFS(templateFS, "prompt.tmpl"),
)

type promptData struct {
	Info   models.BasicInfo
	Sde    models.SdeResult
	Groups []models.ChecklistGroup
}

// Compose renders the analysis request. The output depends only on its
// arguments. Blank optional basic information is rendered as "Not provided".
func Compose(info models.BasicInfo, sde models.SdeResult, checklist models.Checklist) (string, error) {
	if err := checkComplete(checklist); err != nil {
		return "", err
	}

	var sb strings.Builder
	err := promptTemplate.Execute(&sb, promptData{
		Info:   info.WithDefaults(),
		Sde:    sde,
		Groups: checklist.Groups,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), nil
}

// ComposeRequest is Compose for an already assembled request.
func ComposeRequest(req models.AssessmentRequest) (string, error) {
	return Compose(req.BasicInfo, req.Sde, req.Checklist)
}

func checkComplete(checklist models.Checklist) error {
	groups := normalizechecklist.Groups()
	if len(checklist.Groups) != len(groups) {
		return apperrors.NewInvalidRequestError(
			fmt.Sprintf("checklist has %d groups, expected %d", len(checklist.Groups), len(groups)))
	}
	for i, g := range groups {
		got := checklist.Groups[i]
		if got.Key != g.Key || got.Heading != g.Heading || len(got.Indicators) != len(g.Indicators) {
			return apperrors.NewInvalidRequestError(fmt.Sprintf("checklist group %q is not normalized", g.Key))
		}
		for j, ind := range g.Indicators {
			if got.Indicators[j].Key != ind.Key || got.Indicators[j].Label != ind.Label {
				return apperrors.NewInvalidRequestError(
					fmt.Sprintf("checklist indicator %s.%s is not normalized", g.Key, ind.Key))
			}
		}
	}
	return nil
}
