package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation index is in sync with the files.
	// 1. Every topic listed in readme.md can be loaded.
	// 2. Every other .md file is listed in readme.md.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var listed []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			listed = append(listed, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range listed {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	if slices.Contains(all, "readme") {
		t.Errorf("GetAllTopics() = %v, should not contain readme", all)
	}

	content, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error = %v", err)
	}
	for _, topic := range all {
		c, _ := GetTopic(topic)
		if !strings.Contains(content, c) {
			t.Errorf("GetTopics(*) does not contain topic %q", topic)
		}
	}

	if _, err := GetTopics("filters", "nope"); err == nil {
		t.Errorf("GetTopics(nope) error = nil, want an error")
	}
}

// TestTopicTitles checks that every topic starts with a level 1 heading, the
// first line a reader sees in `ccs topic`.
func TestTopicTitles(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range append(all, "readme") {
		content, _ := GetTopic(topic)
		root := goldmark.DefaultParser().Parse(text.NewReader([]byte(content)))
		h, ok := root.FirstChild().(*ast.Heading)
		if !ok || h.Level != 1 {
			t.Errorf("topic %q does not start with a level 1 heading", topic)
		}
	}
}
