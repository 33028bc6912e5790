package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/unify/pkg/domain"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines communication.
// Each input line is a problem object ({"left": ..., "right": ...}) or a plain
// "left = right" line; each output line is a solution or an {"error": ...} object.
type JSONHandler struct {
	Reader  *bufio.Reader
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON IO.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

func (h *JSONHandler) Input(ctx context.Context) (*domain.Problem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if strings.HasPrefix(text, "{") {
		var p domain.Problem
		if err := json.Unmarshal([]byte(text), &p); err != nil {
			return nil, fmt.Errorf("%w: invalid problem object: %v", domain.ErrSyntax, err)
		}
		return &p, nil
	}

	clean, err := SanitizeInput(text)
	if err != nil {
		return nil, err
	}
	return ParseLine(clean)
}

type jsonError struct {
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind"`
}

func (h *JSONHandler) Output(ctx context.Context, solution *domain.Solution, err error) error {
	if err != nil {
		return h.Encoder.Encode(jsonError{Error: err.Error(), ErrorKind: domain.ErrorKind(err)})
	}
	return h.Encoder.Encode(solution)
}
