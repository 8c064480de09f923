package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/melhem/content-hub/internal/config"
	"github.com/melhem/content-hub/internal/domain"
	apperrors "github.com/melhem/content-hub/pkg/util"
)

// ContentService produces social media text variants for a case through the
// external generative text service. The collaborator is a black box: any
// availability or parse failure surfaces as a single CONTENT_UNAVAILABLE
// error. Successful results are cached in Redis per case.
type ContentService struct {
	cfg    config.ContentConfig
	client *http.Client
	cache  *redis.Client
	logger *zap.Logger
}

// NewContentService constructs the service. cache may be nil; the service
// then always regenerates.
func NewContentService(cfg config.ContentConfig, cache *redis.Client, logger *zap.Logger) *ContentService {
	return &ContentService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
		cache:  cache,
		logger: logger,
	}
}

type generateRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateForCase returns the three content variants for a case, serving
// from cache when possible.
func (s *ContentService) GenerateForCase(ctx context.Context, clinicalCase domain.ClinicalCase) (*domain.SocialContent, error) {
	cacheKey := "social-content:" + clinicalCase.ID

	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	content, err := s.callGenerator(ctx, clinicalCase)
	if err != nil {
		return nil, apperrors.NewContentUnavailable(err)
	}

	s.toCache(ctx, cacheKey, content)
	return content, nil
}

func (s *ContentService) callGenerator(ctx context.Context, clinicalCase domain.ClinicalCase) (*domain.SocialContent, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{
			Parts: []requestPart{{Text: buildPrompt(clinicalCase)}},
		}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Model, s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("generator returned no candidates")
	}

	var content domain.SocialContent
	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, fmt.Errorf("parse generated content: %w", err)
	}
	return &content, nil
}

func buildPrompt(c domain.ClinicalCase) string {
	var b strings.Builder
	b.WriteString("Based on the clinical case below, prepare 3 Instagram content formats:\n")
	b.WriteString("1. Instagram Post (long, engaging text with hashtags)\n")
	b.WriteString("2. Reels Script (including visual and audio directions)\n")
	b.WriteString("3. Story Text (short and catchy).\n\n")
	b.WriteString("Case details:\n")
	fmt.Fprintf(&b, "Title: %s\n", c.Title)
	fmt.Fprintf(&b, "Problem: %s\n", c.PatientProblem)
	fmt.Fprintf(&b, "Treatment: %s\n", c.TreatmentProcess)
	fmt.Fprintf(&b, "Result: %s\n", c.Result)
	fmt.Fprintf(&b, "Tone: %s\n", c.Tone)
	fmt.Fprintf(&b, "Doctor: %s\n\n", c.DoctorName)
	b.WriteString(`Return the answer as a JSON object with the keys "instagramPost", "reelsScript" and "storyText".`)
	return b.String()
}

func (s *ContentService) fromCache(ctx context.Context, key string) *domain.SocialContent {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var content domain.SocialContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil
	}
	return &content
}

func (s *ContentService) toCache(ctx context.Context, key string, content *domain.SocialContent) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cfg.CacheTTL()).Err(); err != nil {
		s.logger.Debug("content cache write failed", zap.Error(err))
	}
}
