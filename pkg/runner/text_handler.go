package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/unify/pkg/domain"
)

// TextHandler reads "left = right" lines and prints solutions as text.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
	// Prompt is written before every read. Empty disables it.
	Prompt string

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
// When set, solutions are written as markdown through it.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithPrompt sets the prompt written before every read.
func WithPrompt(prompt string) TextHandlerOption {
	return func(h *TextHandler) {
		h.Prompt = prompt
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can return as soon as ctx is done.
func (h *TextHandler) pump() {
	for {
		text, err := h.Reader.ReadString('\n')
		if text != "" {
			h.inputChan <- inputResult{text: text}
		}
		if err != nil {
			if err != io.EOF {
				h.inputChan <- inputResult{err: err}
			}
			close(h.inputChan)
			return
		}
	}
}

func (h *TextHandler) Input(ctx context.Context) (*domain.Problem, error) {
	h.initPump()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			if h.Prompt != "" {
				fmt.Fprint(h.Writer, h.Prompt)
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return nil, io.EOF
			}
			if res.err != nil {
				return nil, res.err
			}

			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			if clean == "" || strings.HasPrefix(clean, "#") {
				return nil, nil
			}

			p, err := ParseLine(clean)
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v\n", err)
				continue
			}
			return p, nil
		}
	}
}

func (h *TextHandler) Output(ctx context.Context, solution *domain.Solution, err error) error {
	if err != nil {
		_, werr := fmt.Fprintf(h.Writer, "Error: %v\n", err)
		return werr
	}
	p := &Printer{Writer: h.Writer, Format: FormatText}
	if h.Renderer != nil {
		p.Format = FormatMarkdown
		p.Renderer = h.Renderer
	}
	return p.PrintSolution(solution)
}
