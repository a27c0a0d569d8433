package model

// Importance labels carry presentation emphasis only. The store accepts any
// string, but only the labels below have a defined rendering.
const (
	ImportanceNormal        = "normal"
	ImportanceImportant     = "important"
	ImportanceVeryImportant = "very-important"
	ImportanceExample       = "example"
	ImportanceCitation      = "citation"
	ImportanceIntroduction  = "introduction"
	ImportancePlan          = "plan"
	ImportanceMainIdea      = "main-idea"
	ImportanceSecondaryIdea = "secondary-idea"
	ImportanceTertiaryIdea  = "tertiary-idea"
	ImportanceLesson        = "lesson"
	ImportanceConclusion    = "conclusion"
)

var importanceLabels = []string{
	ImportanceNormal,
	ImportanceImportant,
	ImportanceVeryImportant,
	ImportanceExample,
	ImportanceCitation,
	ImportanceIntroduction,
	ImportancePlan,
	ImportanceMainIdea,
	ImportanceSecondaryIdea,
	ImportanceTertiaryIdea,
	ImportanceLesson,
	ImportanceConclusion,
}

var recognizedImportance = func() map[string]struct{} {
	set := make(map[string]struct{}, len(importanceLabels))
	for _, label := range importanceLabels {
		set[label] = struct{}{}
	}
	return set
}()

func IsRecognizedImportance(label string) bool {
	_, ok := recognizedImportance[label]
	return ok
}

func ImportanceLabels() []string {
	out := make([]string, len(importanceLabels))
	copy(out, importanceLabels)
	return out
}
