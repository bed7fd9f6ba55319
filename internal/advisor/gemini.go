package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"solvency-engine/internal/config"
	"solvency-engine/internal/model"
)

// Gemini implements Describer, Extractor and Speaker on the Gemini API.
// A client is built per call from the current key, so a key set at runtime
// takes effect on the next request.
type Gemini struct {
	Keys KeySource
	cfg  config.Gemini
}

// Ensure interface compliance
var (
	_ Describer = (*Gemini)(nil)
	_ Extractor = (*Gemini)(nil)
	_ Speaker   = (*Gemini)(nil)
)

func NewGemini(keys KeySource, cfg config.Gemini) *Gemini {
	return &Gemini{Keys: keys, cfg: cfg}
}

func (g *Gemini) client(ctx context.Context) (*genai.Client, error) {
	key := g.Keys.APIKey()
	if key == "" {
		return nil, ErrUnavailable
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

func (g *Gemini) Describe(ctx context.Context, _ model.FinancialData, res model.AnalysisResult) (*model.DiagnosisReport, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.cfg.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   diagnosisSchema,
	}
	if g.cfg.ThinkBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(g.cfg.ThinkBudget)}
	}

	result, err := client.Models.GenerateContent(ctx, g.cfg.TextModel, genai.Text(diagnosisPrompt(res)), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini diagnosis failed: %w", err)
	}

	var report model.DiagnosisReport
	if err := decodeModelJSON(result.Text(), &report); err != nil {
		return nil, err
	}
	report.Source = model.SourceGemini
	return &report, nil
}

func (g *Gemini) Extract(ctx context.Context, doc Document) (model.InputPatch, error) {
	client, err := g.client(ctx)
	if err != nil {
		return model.InputPatch{}, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(doc.Data, doc.MIMEType),
			genai.NewPartFromText(extractionPrompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.cfg.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   extractionSchema,
	}

	result, err := client.Models.GenerateContent(ctx, g.cfg.TextModel, contents, cfg)
	if err != nil {
		return model.InputPatch{}, fmt.Errorf("gemini extraction failed: %w", err)
	}

	var patch model.InputPatch
	if err := decodeModelJSON(result.Text(), &patch); err != nil {
		return model.InputPatch{}, err
	}
	return patch, nil
}

func (g *Gemini) Speak(ctx context.Context, text string) ([]byte, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:        genai.Ptr(g.cfg.Temperature),
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.cfg.Voice},
			},
		},
	}

	result, err := client.Models.GenerateContent(ctx, g.cfg.SpeechModel, genai.Text(text), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini speech failed: %w", err)
	}
	return firstAudio(result), nil
}

// firstAudio returns the inline data of the first part of the first candidate.
func firstAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0].InlineData == nil {
		return nil
	}
	return content.Parts[0].InlineData.Data
}

var diagnosisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"diagnosis": {Type: genai.TypeString},
		"scenarios": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"inertia":   {Type: genai.TypeString},
				"cut":       {Type: genai.TypeString},
				"expansion": {Type: genai.TypeString},
			},
		},
		"plan": {Type: genai.TypeString},
	},
}

var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"income":   {Type: genai.TypeNumber},
		"expenses": {Type: genai.TypeNumber},
		"cash":     {Type: genai.TypeNumber},
		"debt":     {Type: genai.TypeNumber},
	},
}
