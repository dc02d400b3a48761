package tokenizer

import (
	"errors"
	"testing"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

type failingCounter struct{}

func (failingCounter) Name() string { return "failing" }

func (failingCounter) CountString(string) (int, error) { return 0, errors.New("boom") }

func TestCountTexts(t *testing.T) {
	counts, total, err := CountTexts(testCounter{}, map[string]string{"a.txt": "hello", "b.txt": "héllo wörld"})
	if err != nil {
		t.Fatalf("CountTexts error: %v", err)
	}
	if counts["a.txt"] != 5 || counts["b.txt"] != 11 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if total != 16 {
		t.Fatalf("expected total 16, got %d", total)
	}
}

func TestCountTextsErrors(t *testing.T) {
	if _, _, err := CountTexts(nil, map[string]string{"a": "b"}); err == nil {
		t.Fatalf("expected error for nil counter")
	}
	if _, _, err := CountTexts(failingCounter{}, map[string]string{"a": "b"}); err == nil {
		t.Fatalf("expected counter error to propagate")
	}
}

func TestNewCounterRejectsUnknownName(t *testing.T) {
	if _, err := NewCounter("not-a-model"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}

func TestNewCounterDefault(t *testing.T) {
	counter, err := NewCounter("")
	if err != nil {
		t.Skipf("tiktoken encoding unavailable: %v", err)
	}
	if counter.Name() != defaultEncodingName {
		t.Fatalf("expected %s, got %s", defaultEncodingName, counter.Name())
	}
	tokens, err := counter.CountString("hello world")
	if err != nil {
		t.Fatalf("CountString error: %v", err)
	}
	if tokens <= 0 {
		t.Fatalf("expected positive token count, got %d", tokens)
	}
}
