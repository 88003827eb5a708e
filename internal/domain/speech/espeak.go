package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Synthesizer рендерит текст в WAV-файл по указанному пути
type Synthesizer interface {
	Synthesize(ctx context.Context, text, path string) error
}

// Espeak вызывает espeak-ng (или совместимый бинарник) как подпроцесс
type Espeak struct {
	Binary string
	Voice  string
	Speed  int
}

func (e Espeak) args(text, path string) []string {
	args := make([]string, 0, 7)
	if e.Voice != "" {
		args = append(args, "-v", e.Voice)
	}
	if e.Speed > 0 {
		args = append(args, "-s", strconv.Itoa(e.Speed))
	}
	// "--" чтобы текст, начинающийся с "-", не принимался за флаг
	return append(args, "-w", path, "--", text)
}

func (e Espeak) Synthesize(ctx context.Context, text, path string) error {
	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, e.Binary, e.args(text, path)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", e.Binary, err, msg)
		}
		return fmt.Errorf("%s: %w", e.Binary, err)
	}
	return nil
}
