package utils

import (
	"regexp"
	"strings"

	"ecomovex-service/internal/domain/entity"
	"ecomovex-service/pkg/logger"
)

// Verb synonym families matched against the lowercased utterance. Vietnamese
// synonyms are first-class; the user base is bilingual.
var verbFamilies = map[string][]string{
	"add":     {"add", "thêm", "insert", "put"},
	"remove":  {"remove", "delete", "xoá", "xóa"},
	"modify":  {"change", "update", "đổi", "sửa", "thay"},
	"budget":  {"budget", "ngân sách", "chi phí", "tiền"},
	"suggest": {"suggest", "recommend", "gợi ý"},
	"view":    {"show", "xem", "hiện tại"},
}

var (
	dayPattern    = regexp.MustCompile(`(?i)(?:day|ngày)\s*(\d+)`)
	timePattern   = regexp.MustCompile(`(\d{1,2})[:h](\d{0,2})`)
	itemIDPattern = regexp.MustCompile(`(?i)id\s*[:=]?\s*(\d+)`)
	budgetPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(k|vnd|usd)?`)

	// budgetUnitPattern requires a currency suffix; a suffixed number is the
	// budget amount wherever it sits in the utterance.
	budgetUnitPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(k|vnd|usd)\b`)

	// titleStopWords end the noun phrase following an add/remove verb.
	titleStopWords = []string{"vào", "lúc", "ngày", "day", "at ", "on ", "in ", "id"}
)

// IntentClassifier is the deterministic rule engine over user utterances. The
// LLM fallback lives in the orchestrator; this stage never calls out.
type IntentClassifier struct {
	logger logger.Logger
}

// NewIntentClassifier creates a new rule-engine classifier.
func NewIntentClassifier(logger logger.Logger) *IntentClassifier {
	return &IntentClassifier{logger: logger}
}

// Classify maps an utterance to an intent with extracted entities. Confidence
// is 1.0 for verb+entity matches, 0.7 for verb-only, 0.0 otherwise.
func (c *IntentClassifier) Classify(utterance string) entity.Intent {
	lower := strings.ToLower(strings.TrimSpace(utterance))

	matched := map[string]bool{}
	for family, verbs := range verbFamilies {
		for _, verb := range verbs {
			if strings.Contains(lower, verb) {
				matched[family] = true
				break
			}
		}
	}

	ents := c.extractEntities(lower)
	if matched["add"] {
		ents.Title = c.extractTitle(lower, firstContained(lower, verbFamilies["add"]))
	} else if matched["remove"] {
		ents.Title = c.extractTitle(lower, firstContained(lower, verbFamilies["remove"]))
	}

	intentType := c.resolveType(matched, ents, lower)

	hasEntity := ents.Day > 0 || ents.TimeText != "" || ents.ItemID > 0 ||
		ents.BudgetValue >= 0 || ents.Title != ""
	confidence := 0.0
	if len(matched) > 0 {
		confidence = 0.7
		if hasEntity {
			confidence = 1.0
		}
	}

	c.logger.Debug("Utterance classified",
		"intent", string(intentType),
		"confidence", confidence,
		"day", ents.Day,
		"itemId", ents.ItemID,
		"title", ents.Title)

	return entity.Intent{Type: intentType, Entities: ents, Confidence: confidence}
}

// resolveType applies the tie-break precedence over matched verb families.
func (c *IntentClassifier) resolveType(matched map[string]bool, ents entity.IntentEntities, lower string) entity.IntentType {
	switch {
	case matched["modify"] && (ents.TimeText != "" || ents.Day > 0 || ents.ItemID > 0):
		return entity.IntentModifyTime
	case matched["budget"]:
		return entity.IntentChangeBudget
	case matched["add"]:
		return entity.IntentAdd
	case matched["remove"]:
		return entity.IntentRemove
	case matched["modify"]:
		return entity.IntentModifyTime
	case matched["suggest"]:
		return entity.IntentSuggest
	case matched["view"]:
		return entity.IntentViewPlan
	}
	return entity.IntentUnknown
}

func (c *IntentClassifier) extractEntities(lower string) entity.IntentEntities {
	ents := entity.IntentEntities{BudgetValue: -1}

	if m := dayPattern.FindStringSubmatch(lower); len(m) > 1 {
		ents.Day = ParseInt(m[1])
	}

	// The item id pattern would also match the day pattern's digits, so strip
	// day tokens before looking for an explicit id.
	withoutDays := dayPattern.ReplaceAllString(lower, "")
	if m := itemIDPattern.FindStringSubmatch(withoutDays); len(m) > 1 {
		ents.ItemID = uint(ParseInt(m[1]))
	}

	if m := timePattern.FindStringSubmatch(lower); len(m) > 1 {
		ents.TimeText = m[0]
		ents.TimeSlot = TimeSlotForHour(ParseInt(m[1]))
	}

	// A budget value is only meaningful next to a budget keyword. A number with
	// a currency suffix wins; otherwise take the first number after the keyword,
	// skipping day tokens ("ngân sách ngày 2 thành 500" means 500, not 2).
	for _, kw := range verbFamilies["budget"] {
		idx := strings.Index(lower, kw)
		if idx < 0 {
			continue
		}
		if m := budgetUnitPattern.FindStringSubmatch(lower); len(m) > 1 {
			ents.BudgetValue = NormalizeBudget(m[1], m[2])
		} else {
			rest := dayPattern.ReplaceAllString(lower[idx+len(kw):], "")
			if m := budgetPattern.FindStringSubmatch(rest); len(m) > 1 {
				ents.BudgetValue = NormalizeBudget(m[1], m[2])
			}
		}
		break
	}

	return ents
}

// extractTitle pulls the noun phrase following an add/remove verb, ending at
// the first day/time preposition.
func (c *IntentClassifier) extractTitle(lower, verb string) string {
	idx := strings.Index(lower, verb)
	if idx < 0 {
		return ""
	}
	rest := lower[idx+len(verb):]

	end := len(rest)
	for _, stop := range titleStopWords {
		if i := strings.Index(rest, stop); i >= 0 && i < end {
			end = i
		}
	}
	title := strings.TrimSpace(rest[:end])
	title = strings.Trim(title, ",.!?")
	return title
}

func firstContained(lower string, verbs []string) string {
	best := ""
	bestIdx := -1
	for _, v := range verbs {
		if i := strings.Index(lower, v); i >= 0 && (bestIdx == -1 || i < bestIdx) {
			best = v
			bestIdx = i
		}
	}
	return best
}
