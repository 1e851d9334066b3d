package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// AI failures surface as these two values so the handler can map an
// upstream outage (502) separately from a model answer we could not
// use (also 502, but logged differently).
var (
	ErrAIFailed      = errors.New("ai request failed")
	ErrAIParseFailed = errors.New("ai response unparseable")
)

// SearchCondition is the structured form of a free-text space query,
// as extracted by the language model. Zero values mean the query did
// not constrain that dimension.
type SearchCondition struct {
	Location    string `json:"location"`
	PeopleCount int    `json:"people_count"`
	SpaceType   string `json:"space_type"`
}

// ConditionExtractor turns a natural-language query into a
// SearchCondition.
type ConditionExtractor interface {
	Extract(ctx context.Context, query string) (SearchCondition, error)
}

const (
	groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	groqModel    = "llama-3.3-70b-versatile"
)

const extractPrompt = `You extract search filters from a user's request for a space to book.
Respond with a single JSON object and nothing else, using exactly these keys:
{"location": string, "people_count": number, "space_type": string}
space_type must be one of "STUDY", "PARTY", "MEETING" or "" when the request does not say.
Use "" for unknown location and 0 for unknown people_count. Do not explain.`

// GroqExtractor calls the Groq chat completions API with temperature
// zero, so the same query keeps producing the same filter.
type GroqExtractor struct {
	APIKey string
	Client *http.Client
}

func NewGroqExtractor(apiKey string) *GroqExtractor {
	return &GroqExtractor{
		APIKey: apiKey,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

type groqRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []groqMessage `json:"messages"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

// Extract sends the query to the model and decodes the JSON object
// out of its reply. Models occasionally wrap the object in prose or a
// code fence, so the parser takes the substring from the first '{' to
// the last '}' before decoding.
func (g *GroqExtractor) Extract(ctx context.Context, query string) (SearchCondition, error) {
	body, err := json.Marshal(groqRequest{
		Model:       groqModel,
		Temperature: 0,
		Messages: []groqMessage{
			{Role: "system", Content: extractPrompt},
			{Role: "user", Content: query},
		},
	})
	if err != nil {
		return SearchCondition{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqEndpoint, bytes.NewReader(body))
	if err != nil {
		return SearchCondition{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.APIKey)

	resp, err := g.Client.Do(req)
	if err != nil {
		return SearchCondition{}, fmt.Errorf("%w: %v", ErrAIFailed, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return SearchCondition{}, fmt.Errorf("%w: %v", ErrAIFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return SearchCondition{}, fmt.Errorf("%w: status %d", ErrAIFailed, resp.StatusCode)
	}

	var gr groqResponse
	if err := json.Unmarshal(raw, &gr); err != nil || len(gr.Choices) == 0 {
		return SearchCondition{}, ErrAIParseFailed
	}
	return ParseCondition(gr.Choices[0].Message.Content)
}

// ParseCondition decodes a SearchCondition from model output.
func ParseCondition(content string) (SearchCondition, error) {
	first := strings.Index(content, "{")
	last := strings.LastIndex(content, "}")
	if first < 0 || last < first {
		return SearchCondition{}, ErrAIParseFailed
	}
	var cond SearchCondition
	if err := json.Unmarshal([]byte(content[first:last+1]), &cond); err != nil {
		return SearchCondition{}, ErrAIParseFailed
	}
	cond.SpaceType = strings.ToUpper(strings.TrimSpace(cond.SpaceType))
	if cond.PeopleCount < 0 {
		cond.PeopleCount = 0
	}
	return cond, nil
}
