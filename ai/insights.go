package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"datasentry/ports"

	"github.com/tidwall/gjson"
)

// InsightRequest carries the report figures the generator reasons about
type InsightRequest struct {
	FileName     string
	Headers      []string
	QualityScore int
	IssuesCount  int
	Duplicates   int
}

// Insights is a business reading of a quality report
type Insights struct {
	BusinessImpact  string    `json:"businessImpact"`
	Recommendations []string  `json:"recommendations"`
	RiskLevel       string    `json:"riskLevel"`
	ROI             string    `json:"roi"`
	Source          string    `json:"source"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// InsightGenerator produces business insights through an LLM with a heuristic fallback
type InsightGenerator struct {
	client  ports.LLMClient
	model   string
	timeout time.Duration
}

// NewInsightGenerator creates a generator. A nil client always yields the heuristic.
func NewInsightGenerator(client ports.LLMClient, model string, timeout time.Duration) *InsightGenerator {
	return &InsightGenerator{client: client, model: model, timeout: timeout}
}

// Generate never fails; AI errors resolve to HeuristicInsights
func (g *InsightGenerator) Generate(ctx context.Context, req InsightRequest) Insights {
	fallback := HeuristicInsights(req)
	if g == nil || g.client == nil {
		return fallback
	}

	insights, _ := TryOperation(ctx, g.timeout, "business insights", func(ctx context.Context) (Insights, error) {
		content, err := g.client.ChatCompletion(ctx, g.model, InsightsPrompt(req), 1000)
		if err != nil {
			return Insights{}, err
		}
		return parseInsights(content)
	}, fallback)
	return insights
}

func parseInsights(content string) (Insights, error) {
	obj, ok := ExtractJSONObject(content)
	if !ok {
		return Insights{}, fmt.Errorf("insights response is not JSON")
	}
	parsed := gjson.Parse(obj)
	impact := strings.TrimSpace(parsed.Get("businessImpact").String())
	if impact == "" {
		return Insights{}, fmt.Errorf("insights response missing businessImpact")
	}

	var recs []string
	for _, r := range parsed.Get("recommendations").Array() {
		if s := strings.TrimSpace(r.String()); s != "" {
			recs = append(recs, s)
		}
	}

	risk := strings.ToLower(parsed.Get("riskLevel").String())
	switch risk {
	case "low", "medium", "high":
	default:
		risk = "medium"
	}

	return Insights{
		BusinessImpact:  impact,
		Recommendations: recs,
		RiskLevel:       risk,
		ROI:             parsed.Get("roi").String(),
		Source:          "ai",
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// HeuristicInsights derives insights from the score alone
func HeuristicInsights(req InsightRequest) Insights {
	risk := "low"
	switch {
	case req.QualityScore < 70:
		risk = "high"
	case req.QualityScore < 90:
		risk = "medium"
	}
	return Insights{
		BusinessImpact: fmt.Sprintf("Your dataset has a quality score of %d%%. Identifying %d issues shows significant room for optimization in %d fields.",
			req.QualityScore, req.IssuesCount, len(req.Headers)),
		Recommendations: []string{"Cleanse identified issues", "De-duplicate records", "Standardize field formats"},
		RiskLevel:       risk,
		ROI:             "High impact on operational efficiency and data-driven decision making.",
		Source:          "heuristic",
		GeneratedAt:     time.Now().UTC(),
	}
}
