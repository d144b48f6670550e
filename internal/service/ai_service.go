package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studyquiz_backend/internal/config"
	"studyquiz_backend/internal/model"
	"studyquiz_backend/internal/util"
	"studyquiz_backend/pkg/logger"
	"studyquiz_backend/pkg/monitoring"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const summaryPrompt = "資料の要点を、分かりやすく要約してください。"

const quizPrompt = `PDFからクイズ15問をJSONで出力。
【重要】記述式や穴埋め問題の場合、optionsは必ず空リスト[]にすること。
【重要】出力はJSONのみ。前後に説明文やコードブロックは付けないこと。
{"title": "タイトル", "quizzes": [{"question": "..", "options": ["..", ".."], "answer": "..", "explanation": ".."}]}`

// maxInlineSize is the cap for sending raw PDF bytes inline with the prompt.
// Bigger batches fall back to locally extracted text.
const maxInlineSize = 20 * 1024 * 1024

// AIService talks to Gemini for summaries and quiz generation. Models are
// tried in the configured order until one answers.
type AIService struct {
	client *genai.Client
	models []string
	pdf    *PDFService
}

func NewAIService(ctx context.Context, cfg config.AIConfig, pdf *PDFService) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(strings.TrimSpace(cfg.APIKey)))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &AIService{
		client: client,
		models: cfg.Models,
		pdf:    pdf,
	}, nil
}

func (s *AIService) Close() {
	s.client.Close()
}

// Summarize produces a free-text summary of the uploaded documents.
func (s *AIService) Summarize(ctx context.Context, files [][]byte) (string, error) {
	parts := append([]genai.Part{genai.Text(summaryPrompt)}, s.documentParts(files)...)
	return s.generate(ctx, parts)
}

// GenerateQuiz asks for a 15-question quiz. A malformed model response
// degrades to the default title and an empty quiz instead of an error; only
// transport failures surface.
func (s *AIService) GenerateQuiz(ctx context.Context, files [][]byte) (string, []model.QuizItem, error) {
	start := time.Now()
	defer func() {
		monitoring.QuizGenerationDuration.Observe(time.Since(start).Seconds())
	}()

	parts := append([]genai.Part{genai.Text(quizPrompt)}, s.documentParts(files)...)
	raw, err := s.generate(ctx, parts)
	if err != nil {
		return model.DefaultTitle, []model.QuizItem{}, err
	}

	title, items, err := ParseQuizResponse(raw)
	if err != nil {
		logger.Log.Warn("quiz response unparseable, degrading to empty quiz", zap.Error(err))
		return model.DefaultTitle, []model.QuizItem{}, nil
	}
	return title, items, nil
}

func (s *AIService) documentParts(files [][]byte) []genai.Part {
	total := 0
	for _, f := range files {
		total += len(f)
	}

	parts := make([]genai.Part, 0, len(files))
	if total > maxInlineSize {
		for _, f := range files {
			parts = append(parts, genai.Text(s.pdf.ExtractText(f)))
		}
		return parts
	}
	for _, f := range files {
		parts = append(parts, genai.Blob{MIMEType: "application/pdf", Data: f})
	}
	return parts
}

func (s *AIService) generate(ctx context.Context, parts []genai.Part) (string, error) {
	var lastErr error
	for _, name := range s.models {
		m := s.client.GenerativeModel(name)
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			logger.Log.Warn("model call failed, trying next candidate",
				zap.String("model", name), zap.Error(err))
			lastErr = err
			continue
		}
		return responseText(resp), nil
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate models configured")
	}
	return "", lastErr
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return b.String()
}

// ExtractJSONObject recovers a JSON object from model output that may be
// wrapped in code fences or surrounding prose: everything from the first '{'
// to the last '}' after fence markers are stripped.
func ExtractJSONObject(raw string) ([]byte, error) {
	t := strings.TrimSpace(raw)
	t = strings.ReplaceAll(t, "```json", "```")
	t = strings.ReplaceAll(t, "```", "")

	start := strings.Index(t, "{")
	end := strings.LastIndex(t, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, util.ErrMalformedResponse
	}
	return []byte(t[start : end+1]), nil
}

// ParseQuizResponse decodes a quiz-generation response into its title and
// items. Missing title falls back to the default; a nil quizzes field decodes
// as an empty quiz.
func ParseQuizResponse(raw string) (string, []model.QuizItem, error) {
	payload, err := ExtractJSONObject(raw)
	if err != nil {
		return model.DefaultTitle, nil, err
	}

	var out struct {
		Title   string           `json:"title"`
		Quizzes []model.QuizItem `json:"quizzes"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return model.DefaultTitle, nil, fmt.Errorf("%w: %v", util.ErrMalformedResponse, err)
	}

	title := strings.TrimSpace(out.Title)
	if title == "" {
		title = model.DefaultTitle
	}
	if out.Quizzes == nil {
		out.Quizzes = []model.QuizItem{}
	}
	return title, out.Quizzes, nil
}
