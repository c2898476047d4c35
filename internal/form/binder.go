package form

import (
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/takak2166/sitedata/internal/errors"
	"github.com/takak2166/sitedata/internal/logger"
	"github.com/takak2166/sitedata/internal/models"
)

// ChapterFieldID is the field that receives the chapter titles as options
// unless static options exist for it.
const ChapterFieldID = "chapter"

// Options maps field ids to their static option lists.
type Options map[string][]string

// Bind overlays messages onto raw by top-level key and decodes the result.
// When raw "fields" is a list and messages "fields" is a mapping keyed by
// field id, each field is overlaid instead of the list being replaced.
func Bind(raw, messages map[string]any) (models.FormDefinition, error) {
	merged := maps.Clone(raw)
	if merged == nil {
		merged = map[string]any{}
	}
	for key, value := range messages {
		if key == "fields" {
			list, isList := merged[key].([]any)
			byID, isMap := value.(map[string]any)
			if isList && isMap {
				merged[key] = overlayFields(list, byID)
				continue
			}
		}
		merged[key] = value
	}

	encoded, err := yaml.Marshal(merged)
	if err != nil {
		return models.FormDefinition{}, errors.Wrap(errors.CategoryDecode, err, "failed to encode merged form")
	}
	var def models.FormDefinition
	if err := yaml.Unmarshal(encoded, &def); err != nil {
		return models.FormDefinition{}, errors.Wrap(errors.CategoryDecode, err, "failed to decode merged form")
	}
	if err := validate(def); err != nil {
		return models.FormDefinition{}, err
	}
	return def, nil
}

func overlayFields(fields []any, byID map[string]any) []any {
	out := make([]any, 0, len(fields))
	seen := make(map[string]bool, len(byID))
	for _, item := range fields {
		field, ok := item.(map[string]any)
		if !ok {
			out = append(out, item)
			continue
		}
		id, _ := field["id"].(string)
		overlay, ok := byID[id].(map[string]any)
		if !ok {
			out = append(out, field)
			continue
		}
		seen[id] = true
		merged := maps.Clone(field)
		maps.Copy(merged, overlay)
		out = append(out, merged)
	}
	for id := range byID {
		if !seen[id] {
			logger.Warn("Messages reference an unknown form field", map[string]interface{}{
				"field": id,
			})
		}
	}
	return out
}

func validate(def models.FormDefinition) error {
	ids := make(map[string]bool, len(def.Fields))
	for i, f := range def.Fields {
		if f.ID == "" {
			return errors.Validation("form field without id").With("index", i)
		}
		if ids[f.ID] {
			return errors.Validation("duplicate form field id").With("field", f.ID)
		}
		ids[f.ID] = true
	}
	return nil
}

// InjectOptions returns a copy of def where every field with static options
// gets them, and the chapter field otherwise gets chapterTitles.
func InjectOptions(def models.FormDefinition, static Options, chapterTitles []string) models.FormDefinition {
	out := def
	out.Fields = make([]models.Field, len(def.Fields))
	for i, f := range def.Fields {
		if opts, ok := static[f.ID]; ok {
			f.Options = slices.Clone(opts)
		} else if f.ID == ChapterFieldID {
			f.Options = slices.Clone(chapterTitles)
		} else {
			f.Options = slices.Clone(f.Options)
		}
		out.Fields[i] = f
	}
	return out
}

// AcceptingSignups returns the chapters that accept sign-ups, in order.
func AcceptingSignups(chapters []models.Chapter) []models.Chapter {
	out := make([]models.Chapter, 0, len(chapters))
	for _, ch := range chapters {
		if ch.AcceptsSignups {
			out = append(out, ch)
		}
	}
	return out
}

// Titles returns the chapter titles in order.
func Titles(chapters []models.Chapter) []string {
	out := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, ch.Title)
	}
	return out
}

// ChapterHook may adjust the sign-up chapters before they become options.
// It must not modify its argument.
type ChapterHook func([]models.Chapter) []models.Chapter

// DevelopmentOverride replaces the first chapter with a placeholder carrying
// title and baseID, so local sign-ups never reach a real chapter. With no
// chapters the placeholder becomes the only one.
func DevelopmentOverride(title, baseID string) ChapterHook {
	return func(chapters []models.Chapter) []models.Chapter {
		out := slices.Clone(chapters)
		if len(out) == 0 {
			return []models.Chapter{{Title: title, BaseID: baseID}}
		}
		out[0].Title = title
		out[0].BaseID = baseID
		return out
	}
}
