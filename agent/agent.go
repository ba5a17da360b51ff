// Package agent answers questions about a portfolio using Gemini.
package agent

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Advisor answers one question at a time about a portfolio.
type Advisor struct {
	client *genai.Client
	model  string
}

// NewAdvisor creates an Advisor backed by the Gemini API.
func NewAdvisor(ctx context.Context, apiKey, model string) (*Advisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("a Gemini API key is required, set GEMINI_API_KEY")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot initialize Gemini's client: %w", err)
	}
	return &Advisor{client: client, model: model}, nil
}

// Ask answers 'question'. 'portfolio' is the markdown description of the
// portfolio, handed to the model on request.
func (a *Advisor) Ask(ctx context.Context, portfolio, question string) (string, error) {
	e := newAdvisorExpert(a.model, portfolio)
	if err := e.Start(ctx, a.client); err != nil {
		return "", err
	}
	content, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	return text(content), nil
}

func newAdvisorExpert(model, portfolio string) *Expert {
	lib := []Function{portfolioFunc(portfolio)}
	return &Expert{
		Name:      "Advisor",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: genai.NewContentFromText(`
			You are a cryptocurrency portfolio advisor.
			The user keeps assets in several wallets and exchanges. Use the Portfolio tool
			to learn what they hold, across wallets and in total, with live USD prices when known.
			Answer concisely in markdown. Never make up a price: say when a price was not fetched.
			`, genai.RoleUser),
		},
		Library: NewLibrary(lib),
	}
}

// portfolioFunc returns the Portfolio tool, always answering with 'portfolio'.
func portfolioFunc(portfolio string) *Func {
	const name = "Portfolio"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Portfolio returns the user's wallets with their assets, and the summary of all assets with their total amount, live USD price and value.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Markdown tables describing the portfolio.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			return &genai.FunctionResponse{
				ID:       id,
				Name:     name,
				Response: map[string]any{"output": portfolio},
			}
		},
	}
}

// text concatenates the text parts of a content.
func text(c *genai.Content) string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
