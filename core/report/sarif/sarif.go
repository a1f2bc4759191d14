// Package sarif generates SARIF 2.1.0 reports from rule evaluation results.
//
// The Static Analysis Results Interchange Format (SARIF) is an OASIS
// standard for the output of static analysis tools. This package produces
// SARIF v2.1.0 documents compatible with GitHub Code Scanning, Azure
// DevOps, and other SARIF consumers.
package sarif

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/confsentry/confsentry/core/report"
	"github.com/confsentry/confsentry/core/rules"
)

const (
	sarifVersion = "2.1.0"

	sarifSchema = "https://docs.oasis-open.org/sarif/sarif/v2.1.0/errata01/os/schemas/sarif-schema-2.1.0.json"

	toolName = "confsentry"

	informationURI = "https://github.com/confsentry/confsentry"
)

// Report is the top-level SARIF document containing the schema version and
// one or more analysis runs.
type Report struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of an analysis tool.
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool that produced the run.
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains identifying information about the tool and the catalog of
// rules it can report on.
type Driver struct {
	Name           string                `json:"name"`
	Version        string                `json:"version"`
	InformationURI string                `json:"informationUri"`
	Rules          []ReportingDescriptor `json:"rules"`
}

// ReportingDescriptor defines a single rule in the SARIF rule catalog.
type ReportingDescriptor struct {
	ID                   string              `json:"id"`
	Name                 string              `json:"name"`
	ShortDescription     Message             `json:"shortDescription"`
	FullDescription      *Message            `json:"fullDescription,omitempty"`
	Help                 *MultiformatMessage `json:"help,omitempty"`
	DefaultConfiguration Configuration       `json:"defaultConfiguration"`
	Properties           map[string]string   `json:"properties,omitempty"`
}

// MultiformatMessage is a SARIF message that can carry both plain text and
// markdown representations.
type MultiformatMessage struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
}

// Configuration holds the default severity level for a rule.
type Configuration struct {
	Level string `json:"level"`
}

// Message is a SARIF message object containing human-readable text.
type Message struct {
	Text string `json:"text"`
}

// Result is a single rule result expressed in SARIF format.
type Result struct {
	RuleID    string     `json:"ruleId"`
	RuleIndex int        `json:"ruleIndex"`
	Level     string     `json:"level"`
	Message   Message    `json:"message"`
	Locations []Location `json:"locations"`
}

// Location wraps a physical location within a source artifact.
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation identifies a file and region within that file.
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation is a URI reference to a source file.
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region identifies a contiguous area within an artifact. Lines are
// 1-based, per the SARIF spec; omitempty is deliberately absent since a
// result anchored at the core's 0-based line 0 rebases to line 1, never 0.
type Region struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

// Reporter produces SARIF 2.1.0 documents from a slice of rule results. It
// implements report.Reporter.
type Reporter struct {
	// ToolVersion is the version string embedded in the SARIF tool driver.
	ToolVersion string

	// Rules is an optional RuleSet used to populate the SARIF rule
	// catalog. When nil, the catalog is derived from the results
	// themselves.
	Rules *rules.RuleSet

	// SourcePath is the artifact URI recorded for every result's
	// location. SARIF's artifactLocation refers to a source file, but a
	// rule Result only carries a node id and a location within whatever
	// file was scanned; callers pass the file path being scanned.
	SourcePath string
}

// NewReporter returns a Reporter configured with the given tool version and
// optional rule set. The rule set may be nil.
func NewReporter(version string, ruleSet *rules.RuleSet, sourcePath string) *Reporter {
	return &Reporter{
		ToolVersion: version,
		Rules:       ruleSet,
		SourcePath:  sourcePath,
	}
}

// Generate builds a complete SARIF 2.1.0 JSON document from the given
// results. Results are sorted deterministically before serialization to
// guarantee reproducible output.
func (r *Reporter) Generate(results []rules.Result) ([]byte, error) {
	sorted := make([]rules.Result, len(results))
	copy(sorted, results)
	report.SortDeterministic(sorted)

	ruleCatalog, ruleIndex := r.buildRuleCatalog(sorted)

	sarifResults := make([]Result, 0, len(sorted))
	for _, res := range sorted {
		if res.Passed {
			continue
		}
		idx, ok := ruleIndex[res.RuleID]
		if !ok {
			idx = 0
		}

		sarifResults = append(sarifResults, Result{
			RuleID:    res.RuleID,
			RuleIndex: idx,
			Level:     levelToSarif(res.Level),
			Message:   Message{Text: res.Message},
			Locations: []Location{
				{
					PhysicalLocation: PhysicalLocation{
						ArtifactLocation: ArtifactLocation{URI: r.SourcePath},
						Region: Region{
							StartLine: res.Loc.StartLine + 1,
							EndLine:   res.Loc.EndLine + 1,
						},
					},
				},
			},
		})
	}

	doc := Report{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:           toolName,
						Version:        r.ToolVersion,
						InformationURI: informationURI,
						Rules:          ruleCatalog,
					},
				},
				Results: sarifResults,
			},
		},
	}

	return json.MarshalIndent(doc, "", "  ")
}

// WriteToFile generates the SARIF report and writes it to the specified
// path with 0644 permissions. Parent directories must already exist.
func (r *Reporter) WriteToFile(results []rules.Result, path string) error {
	data, err := r.Generate(results)
	if err != nil {
		return fmt.Errorf("sarif: generate report: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// levelToSarif maps a rules.Level to the corresponding SARIF level string.
func levelToSarif(l rules.Level) string {
	switch l {
	case rules.LevelError:
		return "error"
	case rules.LevelWarning:
		return "warning"
	case rules.LevelInfo:
		return "note"
	default:
		return "note"
	}
}

func (r *Reporter) buildRuleCatalog(results []rules.Result) ([]ReportingDescriptor, map[string]int) {
	if r.Rules != nil {
		return r.buildCatalogFromRuleSet()
	}
	return r.buildCatalogFromResults(results)
}

func (r *Reporter) buildCatalogFromRuleSet() ([]ReportingDescriptor, map[string]int) {
	allRules := r.Rules.Rules()

	sorted := make([]rules.Rule, len(allRules))
	copy(sorted, allRules)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})

	catalog := make([]ReportingDescriptor, 0, len(sorted))
	index := make(map[string]int, len(sorted))

	for i := range sorted {
		rule := &sorted[i]
		if _, exists := index[rule.ID]; exists {
			continue
		}
		idx := len(catalog)
		index[rule.ID] = idx

		desc := ReportingDescriptor{
			ID:   rule.ID,
			Name: rule.ID,
			ShortDescription: Message{
				Text: rule.Selector,
			},
			DefaultConfiguration: Configuration{
				Level: levelToSarif(rule.Meta.Level),
			},
		}

		if rule.Meta.Owner != "" || rule.Meta.OBU != "" {
			desc.Properties = map[string]string{
				"owner": rule.Meta.Owner,
				"obu":   rule.Meta.OBU,
			}
		}

		if rule.Meta.Remediation != "" {
			helpText := "Remediation: " + rule.Meta.Remediation
			desc.FullDescription = &Message{Text: rule.Meta.Remediation}
			desc.Help = &MultiformatMessage{
				Text:     helpText,
				Markdown: "**" + helpText + "**",
			}
		}

		catalog = append(catalog, desc)
	}

	return catalog, index
}

func (r *Reporter) buildCatalogFromResults(results []rules.Result) ([]ReportingDescriptor, map[string]int) {
	type ruleInfo struct {
		id      string
		level   rules.Level
		message string
	}

	seen := make(map[string]struct{})
	var unique []ruleInfo

	for _, res := range results {
		if _, exists := seen[res.RuleID]; exists {
			continue
		}
		seen[res.RuleID] = struct{}{}
		unique = append(unique, ruleInfo{
			id:      res.RuleID,
			level:   res.Level,
			message: res.Message,
		})
	}

	sort.Slice(unique, func(i, j int) bool {
		return unique[i].id < unique[j].id
	})

	catalog := make([]ReportingDescriptor, 0, len(unique))
	index := make(map[string]int, len(unique))

	for _, ri := range unique {
		idx := len(catalog)
		index[ri.id] = idx
		catalog = append(catalog, ReportingDescriptor{
			ID:   ri.id,
			Name: ri.id,
			ShortDescription: Message{
				Text: ri.message,
			},
			DefaultConfiguration: Configuration{
				Level: levelToSarif(ri.level),
			},
		})
	}

	return catalog, index
}
