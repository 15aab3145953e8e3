package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vita/pkg/plan/types"
	"vita/pkg/profile"
)

type openAI struct {
	endpoint string
	key      string
	model    string
}

func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model}
}

func (c *openAI) GeneratePlan(snapshot profile.Snapshot, checkIn *types.CheckInSnapshot, kbCtx string) (map[string]any, error) {
	type chatReq struct {
		Model       string              `json:"model"`
		Messages    []map[string]string `json:"messages"`
		Temperature float64             `json:"temperature"`
	}
	reqBody := chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": "You are a cycle-aware fitness and nutrition coach who answers with strict JSON."},
			{"role": "user", "content": renderPlanPrompt(snapshot, checkIn, kbCtx)},
		},
		Temperature: 0.2,
	}

	b, _ := json.Marshal(reqBody)
	httpc := &http.Client{Timeout: 25 * time.Second}
	req, err := http.NewRequest("POST", strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("llm response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("llm response: no choices")
	}

	return parsePlanText(out.Choices[0].Message.Content), nil
}

// parsePlanText parses model output into a document, stripping markdown
// fences first. Output that is still not valid JSON is kept as a raw-wrapped
// document so the caller never loses a generation.
func parsePlanText(text string) map[string]any {
	cleaned := strings.NewReplacer("```json", "", "```", "").Replace(text)
	cleaned = strings.TrimSpace(cleaned)

	var doc map[string]any
	if err := json.Unmarshal([]byte(cleaned), &doc); err == nil && doc != nil {
		return doc
	}
	return map[string]any{
		"summary": "Generated plan (raw)",
		"raw":     text,
	}
}
