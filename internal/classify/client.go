package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/litgraph/litgraph/internal/paper"
)

const (
	// DefaultBaseURL is the OpenAI-compatible chat completions endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultModel is the chat model used for classification.
	DefaultModel = "gpt-4o-mini"

	// DefaultTimeout is the HTTP request timeout for classification calls.
	DefaultTimeout = 60 * time.Second

	// RateLimit caps classification calls at 2 requests per second so large
	// batches stay under typical provider limits.
	RateLimit = 2.0

	apiPathChatCompletions = "/chat/completions"

	systemPrompt = "You are an expert at classifying academic literature. " +
		"You judge the discipline, sub-field, and type of papers. " +
		"Always respond with valid JSON."
)

// Client is a rate-limited HTTP classifier backed by an OpenAI-compatible
// chat completions API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
	model      string
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL sets a custom API base URL (also used for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a classification client. The API key is read from the
// LITGRAPH_API_KEY environment variable unless overridden with WithAPIKey.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
	}

	if key := os.Getenv("LITGRAPH_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Classify asks the model to place the paper in the discipline taxonomy.
// A non-nil error means the remote call or response parsing failed; callers
// at the pipeline boundary substitute Default() rather than propagating.
func (c *Client) Classify(ctx context.Context, title, abstract string, keywords []string) (paper.Classification, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return paper.Classification{}, err
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(title, abstract, keywords)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return paper.Classification{}, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPathChatCompletions, bytes.NewReader(body))
	if err != nil {
		return paper.Classification{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return paper.Classification{}, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return paper.Classification{}, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return paper.Classification{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Choices) == 0 {
		return paper.Classification{}, fmt.Errorf("classifier returned no choices")
	}

	return parseClassification(result.Choices[0].Message.Content)
}

// buildPrompt renders the classification prompt for one paper.
func buildPrompt(title, abstract string, keywords []string) string {
	if abstract == "" {
		abstract = "(no abstract)"
	}
	kw := "(none)"
	if len(keywords) > 0 {
		kw = strings.Join(keywords, ", ")
	}

	var b strings.Builder
	b.WriteString("Analyze the following academic paper and classify it.\n\n")
	fmt.Fprintf(&b, "Title: %s\nAbstract: %s\nKeywords: %s\n\n", title, abstract, kw)
	fmt.Fprintf(&b, "Pick the single best matching discipline from: %s.\n", strings.Join(Disciplines, ", "))
	b.WriteString("Determine the sub-field, the paper type ")
	b.WriteString("(Review, Experimental, Theoretical, Case Study, or Methodology), ")
	b.WriteString("a confidence between 0 and 1, and a one-sentence summary.\n\n")
	b.WriteString(`Respond with JSON only, in this shape: {"discipline": "...", "sub_field": "...", "paper_type": "...", "confidence": 0.95, "summary": "..."}`)
	return b.String()
}

// Models wrap JSON in markdown fences or surrounding prose despite the
// instructions, so parsing tries progressively looser extractions.
var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareJSON   = regexp.MustCompile(`(?s)\{[^{}]*\}`)
)

func parseClassification(text string) (paper.Classification, error) {
	candidates := []string{text}
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := bareJSON.FindString(text); m != "" {
		candidates = append(candidates, m)
	}

	for _, candidate := range candidates {
		var cls paper.Classification
		if err := json.Unmarshal([]byte(strings.TrimSpace(candidate)), &cls); err == nil && cls.Discipline != "" {
			return cls, nil
		}
	}

	return paper.Classification{}, fmt.Errorf("no parsable classification in response")
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}
