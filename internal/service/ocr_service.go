package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eladr7/shift-scheduler-api/pkg/config"
	appErrors "github.com/eladr7/shift-scheduler-api/pkg/errors"
	"github.com/eladr7/shift-scheduler-api/pkg/storage"
)

// Recognizer is the black-box text recognition collaborator: an image path
// and a language preference in, raw text out.
type Recognizer interface {
	Recognize(ctx context.Context, imagePath, language string) (string, error)
}

// Language preferences accepted from callers.
const (
	LanguageHebrew  = "hebrew"
	LanguageEnglish = "english"
	LanguageBoth    = "both"
)

const (
	hebrewChars  = "אבגדהוזחטיכלמנסעפצקרשת"
	englishChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	commonChars  = "0123456789:/-. "
)

type languageProfile struct {
	engineLang string
	whitelist  string
}

func profileFor(language string) languageProfile {
	switch language {
	case LanguageHebrew:
		return languageProfile{engineLang: "heb", whitelist: hebrewChars + commonChars}
	case LanguageEnglish:
		return languageProfile{engineLang: "eng", whitelist: commonChars + englishChars}
	default:
		return languageProfile{engineLang: "heb+eng", whitelist: hebrewChars + commonChars + englishChars}
	}
}

// TesseractRecognizer shells out to a tesseract binary.
type TesseractRecognizer struct {
	binary  string
	timeout time.Duration
}

// NewTesseractRecognizer builds the default recognizer.
func NewTesseractRecognizer(binary string, timeout time.Duration) *TesseractRecognizer {
	if binary == "" {
		binary = "tesseract"
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &TesseractRecognizer{binary: binary, timeout: timeout}
}

// Recognize runs the engine over the image in uniform-block page mode with
// a per-language character whitelist.
func (r *TesseractRecognizer) Recognize(ctx context.Context, imagePath, language string) (string, error) {
	p := profileFor(language)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary,
		imagePath, "stdout",
		"-l", p.engineLang,
		"--psm", "6",
		"-c", "tessedit_char_whitelist="+p.whitelist,
		"-c", "preserve_interword_spaces=1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, stderr.String())
	}
	return string(out), nil
}

// OCRService coordinates the recognition collaborator: bounded engine
// concurrency and a digest-keyed cache so re-uploads of the same image
// skip the engine entirely.
type OCRService struct {
	recognizer Recognizer
	store      *storage.UploadStore
	cache      *redis.Client
	cacheTTL   time.Duration
	sem        chan struct{}
	logger     *zap.Logger
}

// NewOCRService constructs the service. cache may be nil to disable caching.
func NewOCRService(recognizer Recognizer, store *storage.UploadStore, cache *redis.Client, cfg config.OCRConfig, logger *zap.Logger) *OCRService {
	if recognizer == nil {
		recognizer = NewTesseractRecognizer(cfg.Binary, cfg.Timeout)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &OCRService{
		recognizer: recognizer,
		store:      store,
		cache:      cache,
		cacheTTL:   ttl,
		sem:        make(chan struct{}, concurrency),
		logger:     logger,
	}
}

// Recognize returns the recognized text for a stored upload, reporting
// whether it was served from cache.
func (s *OCRService) Recognize(ctx context.Context, filename, language string) (string, bool, error) {
	data, err := s.store.Read(filename)
	if err != nil {
		return "", false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read uploaded image")
	}

	key := fmt.Sprintf("ocr:%s:%x", language, sha256.Sum256(data))
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key).Result()
		if err == nil {
			return cached, true, nil
		}
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("ocr cache lookup failed", zap.Error(err))
		}
	}

	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-ctx.Done():
		return "", false, appErrors.Wrap(ctx.Err(), appErrors.ErrRecognition.Code, appErrors.ErrRecognition.Status, appErrors.ErrRecognition.Message)
	}

	text, err := s.recognizer.Recognize(ctx, s.store.Path(filename), language)
	if err != nil {
		return "", false, appErrors.Wrap(err, appErrors.ErrRecognition.Code, appErrors.ErrRecognition.Status, appErrors.ErrRecognition.Message)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, text, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("ocr cache write failed", zap.Error(err))
		}
	}
	return text, false, nil
}
