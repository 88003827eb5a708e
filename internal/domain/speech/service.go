package speech

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

const ContentType = "audio/wav"

var (
	ErrEmptyText   = errors.New("no text provided")
	ErrRateLimited = errors.New("too many speech requests")
)

type Audio struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Renderer interface {
	Render(ctx context.Context, text string) (Audio, error)
}

type Service struct {
	synth   Synthesizer
	tempDir string
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewService создает сервис синтеза речи; perSecond <= 0 отключает ограничение частоты
func NewService(synth Synthesizer, tempDir string, perSecond float64, log *slog.Logger) *Service {
	s := &Service{
		synth:   synth,
		tempDir: tempDir,
		log:     log.With("component", "speech_service"),
	}
	if tempDir == "" {
		s.tempDir = os.TempDir()
	}
	if perSecond > 0 {
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return s
}

// Render синтезирует text во временный файл, читает его и удаляет
func (s *Service) Render(ctx context.Context, text string) (Audio, error) {
	if strings.TrimSpace(text) == "" {
		return Audio{}, ErrEmptyText
	}
	if s.limiter != nil && !s.limiter.Allow() {
		return Audio{}, ErrRateLimited
	}

	name := uuid.NewString() + ".wav"
	path := filepath.Join(s.tempDir, name)
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("failed to remove temp audio", "path", path, "error", err)
		}
	}()

	if err := s.synth.Synthesize(ctx, text, path); err != nil {
		return Audio{}, fmt.Errorf("synthesize: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Audio{}, fmt.Errorf("read audio: %w", err)
	}

	s.log.Debug("speech rendered", "chars", len(text), "bytes", len(data))

	return Audio{Filename: name, ContentType: ContentType, Data: data}, nil
}
