package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

// allowAllSpecialTokens encodes special-token text such as "<|endoftext|>" as ordinary input.
var allowAllSpecialTokens = []string{"all"}

type openAICounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter openAICounter) Name() string {
	return counter.name
}

func (counter openAICounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New("nil tiktoken encoder")
	}
	if input == "" {
		return 0, nil
	}
	return len(counter.encoding.Encode(input, allowAllSpecialTokens, nil)), nil
}
