// ABOUTME: Headless print mode: one question, optional transcript upload, answer on stdout
// ABOUTME: Health preflight runs alongside transcript validation; output is glamour-rendered on a TTY

package print

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mauromedda/academic-assistant/internal/log"
	"github.com/mauromedda/academic-assistant/internal/session"
	"github.com/mauromedda/academic-assistant/internal/termfix"
	"github.com/mauromedda/academic-assistant/internal/transport"
	"github.com/mauromedda/academic-assistant/internal/upload"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// ErrServiceUnavailable is returned when the health preflight fails.
var ErrServiceUnavailable = errors.New("assistant service unavailable")

// Service is the remote assistant as used by print mode.
type Service interface {
	session.Chatter
	upload.Uploader
	Health(ctx context.Context) (transport.HealthStatus, error)
}

// Config configures one headless exchange.
type Config struct {
	Identity   session.Identity
	Transcript string    // optional PDF to upload before asking
	In         io.Reader // question source when none is given; defaults to os.Stdin
	Out        io.Writer // defaults to os.Stdout
	// Render forces markdown rendering on or off; nil means "when Out is a terminal".
	Render *bool
}

// Run asks one question and writes the assistant's answer to cfg.Out.
// A failed chat still writes the fallback text and returns the error.
func Run(ctx context.Context, cfg Config, svc Service, question string) error {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}

	if strings.TrimSpace(question) == "" {
		data, err := io.ReadAll(cfg.In)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		question = strings.TrimSpace(string(data))
	}

	if err := preflight(ctx, svc, cfg.Transcript); err != nil {
		return err
	}

	uploads := upload.New()
	if cfg.Transcript != "" {
		uploads.SelectFile(cfg.Transcript)
		outcome, err := uploads.Upload(ctx, svc)
		if err != nil {
			return err
		}
		if outcome == upload.OutcomeEmpty {
			log.Warn("print: service returned no data for %s; asking without it", cfg.Transcript)
		}
	}

	sess := session.New(cfg.Identity)
	sess.UpdateDraft(question)
	reply, chatErr := sess.Exchange(ctx, svc, uploads.Document())
	if reply.Content != "" {
		if err := write(cfg, reply.Content); err != nil {
			return err
		}
	}
	return chatErr
}

// preflight probes the service while the transcript is validated.
func preflight(ctx context.Context, svc Service, transcript string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		st, err := svc.Health(gctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
		if !st.Healthy() {
			return fmt.Errorf("%w: status %q", ErrServiceUnavailable, st.Status)
		}
		if !st.OpenAIConfigured {
			log.Warn("print: service reports no language model configured")
		}
		return nil
	})

	if transcript != "" {
		g.Go(func() error {
			if err := upload.Validate(transcript); err != nil {
				return fmt.Errorf("transcript: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

func write(cfg Config, content string) error {
	render := false
	w := 0
	if f, ok := cfg.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		render = true
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			w = cols
		}
	}
	if cfg.Render != nil {
		render = *cfg.Render
	}

	if render {
		out, err := renderMarkdown(content, w)
		if err != nil {
			log.Warn("print: markdown rendering failed: %v", err)
		} else {
			content = out
		}
	}

	if _, err := io.WriteString(cfg.Out, strings.TrimRight(content, "\n")+"\n"); err != nil {
		return fmt.Errorf("writing answer: %w", err)
	}
	return nil
}

func renderMarkdown(md string, width int) (string, error) {
	if width <= 0 || width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(termfix.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
