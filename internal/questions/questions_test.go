package questions

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestBankResourceShape(t *testing.T) {
	entries, err := bankFS.ReadDir("banks")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		raw, err := bankFS.ReadFile("banks/" + entry.Name())
		if err != nil {
			t.Fatalf("ReadFile %s failed: %v", entry.Name(), err)
		}
		var envelope struct {
			Questions []map[string]any `json:"questions"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("decode %s failed: %v", entry.Name(), err)
		}
		if len(envelope.Questions) == 0 {
			t.Fatalf("%s has no questions under the questions key", entry.Name())
		}
		for _, question := range envelope.Questions {
			if _, ok := question["expectedTime"]; !ok {
				t.Fatalf("%s question %v missing expectedTime", entry.Name(), question["id"])
			}
		}
	}
}

func TestTopics(t *testing.T) {
	topics := Topics()
	want := []string{"behavioral", "hr", "technical"}
	if len(topics) != len(want) {
		t.Fatalf("expected %d topics, got %v", len(want), topics)
	}
	for i, topic := range want {
		if topics[i] != topic {
			t.Fatalf("expected topics %v, got %v", want, topics)
		}
	}
}

func TestBankUnknownTopic(t *testing.T) {
	if _, err := Bank("philosophy"); !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("expected ErrUnknownTopic, got %v", err)
	}
}

func TestBankNormalizesTopic(t *testing.T) {
	bank, err := Bank("  HR ")
	if err != nil {
		t.Fatalf("Bank failed: %v", err)
	}
	if len(bank) == 0 {
		t.Fatal("expected non-empty hr bank")
	}
}

func TestRandomDrawsFromBank(t *testing.T) {
	for i := 0; i < 20; i++ {
		question, err := Random("technical")
		if err != nil {
			t.Fatalf("Random failed: %v", err)
		}
		if question.ID == "" || question.Text == "" {
			t.Fatalf("incomplete question: %#v", question)
		}
	}
}

func TestByID(t *testing.T) {
	question, err := ByID("hr", "hr_001")
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if question.Text != "Tell me about yourself." {
		t.Fatalf("unexpected question text %q", question.Text)
	}
	if len(question.Tips) != 3 || question.ExpectedTime != 180 {
		t.Fatalf("unexpected question detail: %#v", question)
	}

	if _, err := ByID("hr", "hr_999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByDifficulty(t *testing.T) {
	hard, err := ByDifficulty("behavioral", "hard")
	if err != nil {
		t.Fatalf("ByDifficulty failed: %v", err)
	}
	if len(hard) == 0 {
		t.Fatal("expected hard behavioral questions")
	}
	for _, question := range hard {
		if question.Difficulty != "hard" {
			t.Fatalf("unexpected difficulty %q", question.Difficulty)
		}
	}
}

func TestByCategory(t *testing.T) {
	matched, err := ByCategory("technical", "system design")
	if err != nil {
		t.Fatalf("ByCategory failed: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "tech_003" {
		t.Fatalf("unexpected matches: %#v", matched)
	}
}
