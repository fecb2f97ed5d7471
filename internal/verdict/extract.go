package verdict

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// A strategy attempts one way of reading a verdict out of raw model text.
// Strategies are pure; the first to succeed wins.
type strategy struct {
	name  string
	parse func(text string) (Verdict, bool)
}

// fencedBlockRe matches a brace-delimited object inside a fenced code block,
// optionally tagged json.
var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// looseObjectRe matches any single-level brace span mentioning the first
// required field. The anchor is derived from RequiredFields so this tier
// keeps firing if the schema is renamed.
var looseObjectRe = regexp.MustCompile(`(?s)\{[^{}]*"` + regexp.QuoteMeta(RequiredFields[0]) + `"[^{}]*\}`)

// fieldRes holds one pattern per required field for the last-resort
// field-by-field recovery, shaped like `"Field": "value"`.
var fieldRes = buildFieldPatterns()

func buildFieldPatterns() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(RequiredFields))
	for _, f := range RequiredFields {
		res[f] = regexp.MustCompile(`"` + regexp.QuoteMeta(f) + `"\s*:\s*"([^"]+)"`)
	}
	return res
}

var strategies = []strategy{
	{"direct_json", parseDirect},
	{"fenced_block", parseFenced},
	{"loose_object", parseLoose},
	{"field_regex", parseFields},
}

// Extractor turns raw model text into complete verdicts.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract recovers a verdict from raw model text, trying each strategy in
// order and falling back to the sentinel verdict when all fail. It never
// returns a partial verdict: every required field is non-empty in the result.
func (e *Extractor) Extract(raw, model string) Verdict {
	for i, s := range strategies {
		v, ok := s.parse(raw)
		if !ok {
			continue
		}
		if i > 0 {
			e.logger.Warn("verdict recovered by degraded extraction tier",
				"tier", s.name, "model", model)
		}
		v.ModelUsed = model
		return v
	}
	e.logger.Warn("verdict extraction failed, substituting sentinel", "model", model)
	return SentinelVerdict(model)
}

// parseDirect treats the whole text as a JSON object.
func parseDirect(text string) (Verdict, bool) {
	return fromJSONObject(strings.TrimSpace(text))
}

// parseFenced looks for a JSON object inside a fenced code block.
func parseFenced(text string) (Verdict, bool) {
	m := fencedBlockRe.FindStringSubmatch(text)
	if m == nil {
		return Verdict{}, false
	}
	return fromJSONObject(m[1])
}

// parseLoose scans for brace spans containing the anchor field and accepts
// the first candidate that parses with all required fields present.
func parseLoose(text string) (Verdict, bool) {
	for _, candidate := range looseObjectRe.FindAllString(text, -1) {
		var obj map[string]any
		if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &obj); err != nil {
			continue
		}
		if !hasAllRequired(obj) {
			continue
		}
		return fromMap(obj), true
	}
	return Verdict{}, false
}

// parseFields recovers each required field independently with a quoted
// key-value pattern, succeeding only when all four are found.
func parseFields(text string) (Verdict, bool) {
	var v Verdict
	for _, f := range RequiredFields {
		m := fieldRes[f].FindStringSubmatch(text)
		if m == nil {
			return Verdict{}, false
		}
		v.setField(f, m[1])
	}
	return v, true
}

func fromJSONObject(text string) (Verdict, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return Verdict{}, false
	}
	return fromMap(obj), true
}

func hasAllRequired(obj map[string]any) bool {
	for _, f := range RequiredFields {
		if _, ok := obj[f]; !ok {
			return false
		}
	}
	return true
}

// fromMap lifts a parsed JSON object into a Verdict. A field the object lacks
// gets the sentinel, keeping the all-fields-non-empty invariant even for
// objects that parsed cleanly but answered the wrong shape.
func fromMap(obj map[string]any) Verdict {
	var v Verdict
	for _, f := range RequiredFields {
		v.setField(f, stringify(obj[f]))
	}
	return v
}

func stringify(value any) string {
	switch t := value.(type) {
	case nil:
		return Sentinel
	case string:
		if t == "" {
			return Sentinel
		}
		return t
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", t), "0"), ".")
	default:
		return fmt.Sprint(t)
	}
}
