// Package tokenizer estimates LLM token counts of packed content with tiktoken encodings.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const defaultEncodingName = "cl100k_base"

var knownEncodingNames = map[string]struct{}{
	"cl100k_base": {},
	"o200k_base":  {},
	"p50k_base":   {},
	"p50k_edit":   {},
	"r50k_base":   {},
}

// NewCounter returns a Counter for a tiktoken encoding name such as "cl100k_base" or for
// an OpenAI model name such as "gpt-4o". An empty name selects cl100k_base.
func NewCounter(encodingOrModel string) (Counter, error) {
	name := strings.ToLower(strings.TrimSpace(encodingOrModel))
	if name == "" {
		name = defaultEncodingName
	}

	if _, isEncoding := knownEncodingNames[name]; isEncoding {
		encoding, err := tiktoken.GetEncoding(name)
		if err != nil {
			return nil, fmt.Errorf("initialize tokenizer %s: %w", name, err)
		}
		return openAICounter{encoding: encoding, name: name}, nil
	}

	encoding, err := tiktoken.EncodingForModel(name)
	if err != nil || encoding == nil {
		return nil, fmt.Errorf("unknown tokenizer encoding or model %q", encodingOrModel)
	}
	return openAICounter{encoding: encoding, name: name}, nil
}

// CountTexts counts tokens for every named text and returns the per-name counts and their sum.
func CountTexts(counter Counter, texts map[string]string) (map[string]int, int, error) {
	if counter == nil {
		return nil, 0, errors.New("nil tokenizer counter")
	}
	counts := make(map[string]int, len(texts))
	total := 0
	for name, text := range texts {
		tokens, err := counter.CountString(text)
		if err != nil {
			return nil, 0, fmt.Errorf("count tokens for %s: %w", name, err)
		}
		counts[name] = tokens
		total += tokens
	}
	return counts, total, nil
}
