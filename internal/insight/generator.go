// Package insight generates AI advisory notes for prospects via an LLM
// collaborator. The daily report never calls this directly; it only
// joins insights that were generated and stored earlier.
package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roteiro/internal/crm"
	"roteiro/internal/llm"
)

const systemPrompt = `You are a sales assistant for a distribution company.
Given a prospect, produce short advisory notes a field rep can read before a visit.

Respond ONLY with valid JSON (no markdown, no explanation) in this shape:
{
  "summary": "two or three sentences about the prospect and the opportunity",
  "recommended_products": ["product line 1", "product line 2"],
  "approach_tips": ["tip 1", "tip 2"]
}`

// response mirrors the JSON the model is asked to return.
type response struct {
	Summary             string   `json:"summary"`
	RecommendedProducts []string `json:"recommended_products"`
	ApproachTips        []string `json:"approach_tips"`
}

// Generator produces insights for prospects.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a Generator over the given LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate builds an insight for the prospect. The result is not
// persisted; callers store it through an InsightStore.
func (g *Generator) Generate(ctx context.Context, p *crm.Prospect) (*crm.Insight, error) {
	if p == nil || p.Name == "" {
		return nil, crm.ErrEmptyName
	}

	var resp response
	err := g.client.ChatJSON(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prospectPrompt(p)},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("generating insight: %w", err)
	}

	if strings.TrimSpace(resp.Summary) == "" {
		return nil, errors.New("model returned an empty summary")
	}

	return &crm.Insight{
		ProspectID:          p.ID,
		Summary:             resp.Summary,
		RecommendedProducts: resp.RecommendedProducts,
		ApproachTips:        resp.ApproachTips,
		GeneratedAt:         time.Now(),
	}, nil
}

func prospectPrompt(p *crm.Prospect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prospect: %s\n", p.Name)
	if p.Segment != "" {
		fmt.Fprintf(&b, "Segment: %s\n", p.Segment)
	}
	if p.City != "" {
		fmt.Fprintf(&b, "City: %s\n", p.City)
	}
	if p.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", p.Address)
	}
	return b.String()
}
