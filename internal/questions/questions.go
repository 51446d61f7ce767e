package questions

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
)

//go:embed banks/*.json
var bankFS embed.FS

// ErrUnknownTopic indicates a topic with no embedded question bank.
var ErrUnknownTopic = errors.New("unknown interview topic")

// ErrNotFound indicates a question id absent from the topic's bank.
var ErrNotFound = errors.New("question not found")

// Question is one prompt from an interview bank. ExpectedTime is the
// suggested answer length in seconds.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Type         string   `json:"type"`
	Difficulty   string   `json:"difficulty"`
	Category     string   `json:"category"`
	Tips         []string `json:"tips,omitempty"`
	ExpectedTime int      `json:"expectedTime"`
}

// bankFile is the on-disk shape of an embedded bank resource.
type bankFile struct {
	Questions []Question `json:"questions"`
}

var (
	loadOnce  sync.Once
	loadErr   error
	bankCache map[string][]Question
)

func load() error {
	loadOnce.Do(func() {
		entries, err := bankFS.ReadDir("banks")
		if err != nil {
			loadErr = fmt.Errorf("read question banks: %w", err)
			return
		}
		bankCache = make(map[string][]Question, len(entries))
		for _, entry := range entries {
			topic := strings.TrimSuffix(entry.Name(), ".json")
			raw, err := bankFS.ReadFile("banks/" + entry.Name())
			if err != nil {
				loadErr = fmt.Errorf("read bank %s: %w", topic, err)
				return
			}
			var bank bankFile
			if err := json.Unmarshal(raw, &bank); err != nil {
				loadErr = fmt.Errorf("decode bank %s: %w", topic, err)
				return
			}
			bankCache[topic] = bank.Questions
		}
	})
	return loadErr
}

// Topics lists the available interview topics, sorted.
func Topics() []string {
	if err := load(); err != nil {
		return nil
	}
	topics := make([]string, 0, len(bankCache))
	for topic := range bankCache {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Bank returns every question for the topic.
func Bank(topic string) ([]Question, error) {
	if err := load(); err != nil {
		return nil, err
	}
	bank, ok := bankCache[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}
	return bank, nil
}

// Random draws one question from the topic's bank.
func Random(topic string) (Question, error) {
	bank, err := Bank(topic)
	if err != nil {
		return Question{}, err
	}
	if len(bank) == 0 {
		return Question{}, fmt.Errorf("%w: empty bank %s", ErrNotFound, topic)
	}
	return bank[rand.Intn(len(bank))], nil
}

// ByID looks a question up across the topic's bank.
func ByID(topic, id string) (Question, error) {
	bank, err := Bank(topic)
	if err != nil {
		return Question{}, err
	}
	for _, question := range bank {
		if question.ID == id {
			return question, nil
		}
	}
	return Question{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ByDifficulty filters the topic's bank by difficulty level.
func ByDifficulty(topic, difficulty string) ([]Question, error) {
	bank, err := Bank(topic)
	if err != nil {
		return nil, err
	}
	var matched []Question
	for _, question := range bank {
		if strings.EqualFold(question.Difficulty, difficulty) {
			matched = append(matched, question)
		}
	}
	return matched, nil
}

// ByCategory filters the topic's bank by category name.
func ByCategory(topic, category string) ([]Question, error) {
	bank, err := Bank(topic)
	if err != nil {
		return nil, err
	}
	var matched []Question
	for _, question := range bank {
		if strings.EqualFold(question.Category, category) {
			matched = append(matched, question)
		}
	}
	return matched, nil
}
