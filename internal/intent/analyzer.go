// Package intent classifies free-text instructions into a model.QueryAnalysis.
// Classification is deterministic keyword and pattern matching; it never fails and performs no I/O.
package intent

import (
	"regexp"
	"strings"

	"querybridge/internal/model"
)

var documentKeywords = []string{"mongo", "atlas", "collection", "document", "cluster"}

// operationRule maps keywords to an operation. A non-empty force overrides the backend classification.
type operationRule struct {
	keywords []string
	op       model.Operation
	force    model.Backend
}

// Order matters: the first rule with a matching keyword wins.
var operationRules = []operationRule{
	{keywords: []string{"backup", "export"}, op: model.OpBackup},
	{keywords: []string{"status", "state", "health", "info"}, op: model.OpStatus},
	{keywords: []string{"analyze", "structure", "schema"}, op: model.OpAnalysis},
	{keywords: []string{"databases"}, op: model.OpListDatabases, force: model.BackendDocument},
	{keywords: []string{"collections"}, op: model.OpListCollections, force: model.BackendDocument},
	{keywords: []string{"tables"}, op: model.OpListTables, force: model.BackendRelational},
	{keywords: []string{"show", "list"}, op: model.OpList},
	{keywords: []string{"query", "find", "search", "values", "data", "rows", "present", "contain"}, op: model.OpQuery},
}

// probe captures a table or collection name from the raw text.
type probe struct {
	name string
	re   *regexp.Regexp
}

// targetProbes run in this order and every match overwrites the previous capture,
// so the last matching probe wins.
var targetProbes = []probe{
	{"table_x", regexp.MustCompile(`(?i)\b(?:table|collection)\s+(\w+)`)},
	{"rows_from_x", regexp.MustCompile(`(?i)\b(?:data|values|rows)\s+from\s+(\w+)`)},
	{"rows_in_x", regexp.MustCompile(`(?i)\b(?:data|values|rows)\s+in\s+(\w+)`)},
	{"x_table", regexp.MustCompile(`(?i)\b(\w+)\s+(?:table|collection)\b`)},
	{"rows_present_in_x", regexp.MustCompile(`(?i)\b(?:values|data|rows)\s+present\s+in\s+(\w+)`)},
	{"what_rows_x", regexp.MustCompile(`(?i)\bwhat\s+(?:are\s+)?(?:the\s+)?(?:values|data|rows)\s+(?:present\s+)?(?:in\s+)?(\w+)`)},
	{"x_table_rows", regexp.MustCompile(`(?i)\b(\w+)\s+(?:table|collection)\b\s+(?:values|data|rows)`)},
}

// backupProbe overrides the target for backup requests only.
var backupProbe = regexp.MustCompile(`(?i)backup\s+(?:the\s+)?(\w+)\s+(?:table|collection)?`)

// Analyzer holds the read-only vocabulary used for classification.
type Analyzer struct {
	relationalKeywords []string
}

// NewAnalyzer creates an Analyzer. schemaName is the known relational schema name
// (for example "dvdrental"); it is treated as a relational keyword.
func NewAnalyzer(schemaName string) *Analyzer {
	kw := []string{"postgres", "postgresql", "sql"}
	if s := strings.ToLower(strings.TrimSpace(schemaName)); s != "" {
		kw = append(kw, s)
	}
	return &Analyzer{relationalKeywords: kw}
}

// Analyze classifies text. It is total: TargetBackend defaults to Both and Operation to General.
func (a *Analyzer) Analyze(text string) model.QueryAnalysis {
	lower := strings.ToLower(text)

	analysis := model.QueryAnalysis{
		OriginalText:  text,
		TargetBackend: a.classifyBackend(lower),
		Operation:     model.OpGeneral,
	}

	for _, rule := range operationRules {
		if containsAny(lower, rule.keywords) {
			analysis.Operation = rule.op
			if rule.force != "" {
				analysis.TargetBackend = rule.force
			}
			break
		}
	}

	analysis.SpecificTarget = extractTarget(text)

	if analysis.Operation == model.OpBackup {
		if m := backupProbe.FindStringSubmatch(text); m != nil {
			analysis.SpecificTarget = m[1]
		}
	}

	return analysis
}

func (a *Analyzer) classifyBackend(lower string) model.Backend {
	switch {
	case containsAny(lower, a.relationalKeywords):
		return model.BackendRelational
	case containsAny(lower, documentKeywords):
		return model.BackendDocument
	default:
		return model.BackendBoth
	}
}

func extractTarget(text string) string {
	var target string
	for _, p := range targetProbes {
		if m := p.re.FindStringSubmatch(text); m != nil {
			target = m[1]
		}
	}
	return target
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
