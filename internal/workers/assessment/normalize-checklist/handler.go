// internal/workers/assessment/normalize-checklist/handler.go
package normalizechecklist

import (
	"sort"

	apperrors "salesfit-assessment/internal/common/errors"
	"salesfit-assessment/internal/models"
)

const (
	TaskType = "normalize-checklist"
)

// Normalize checks the answers against the taxonomy and returns them ordered
// and labelled. Every indicator must be answered and no other key may appear.
// Missing indicators take precedence over unknown ones.
func Normalize(answers models.ChecklistAnswers) (models.Checklist, error) {
	var missing, unknown []string
	groups := make([]models.ChecklistGroup, 0, len(taxonomy))

	for _, gs := range taxonomy {
		submitted, _ := answers.Group(gs.Key)

		group := models.ChecklistGroup{
			Key:        gs.Key,
			Heading:    gs.Heading,
			Indicators: make([]models.Indicator, 0, len(gs.Indicators)),
		}
		known := make(map[string]struct{}, len(gs.Indicators))
		for _, ind := range gs.Indicators {
			known[ind.Key] = struct{}{}
			value, ok := submitted[ind.Key]
			if !ok {
				missing = append(missing, gs.Key+"."+ind.Key)
				continue
			}
			group.Indicators = append(group.Indicators, models.Indicator{
				Key:   ind.Key,
				Label: ind.Label,
				Value: value,
			})
		}

		extra := make([]string, 0)
		for key := range submitted {
			if _, ok := known[key]; !ok {
				extra = append(extra, gs.Key+"."+key)
			}
		}
		sort.Strings(extra)
		unknown = append(unknown, extra...)

		groups = append(groups, group)
	}

	if len(missing) > 0 {
		return models.Checklist{}, apperrors.NewMissingIndicatorError(missing)
	}
	if len(unknown) > 0 {
		return models.Checklist{}, apperrors.NewUnknownIndicatorError(unknown)
	}
	return models.Checklist{Groups: groups}, nil
}
