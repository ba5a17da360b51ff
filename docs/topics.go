// Package docs holds the user documentation, organized by topics.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Readme is the topic listing all the others.
const Readme = "readme"

// Files exposes the raw markdown files.
var Files fs.FS = docs

// Topic returns the markdown content of a topic.
func Topic(name string) (string, error) {
	content, err := docs.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found, available topics are %s: %w", name, strings.Join(List(), ", "), err)
	}
	return string(content), nil
}

// Topics concatenates topics. "*" stands for every topic but the readme.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == "*" {
			expanded = List()
		}
		for _, t := range expanded {
			content, err := Topic(t)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// List returns the sorted names of all topics, except the readme.
func List() []string {
	entries, _ := fs.Glob(docs, "*.md")
	topics := make([]string, 0, len(entries))
	for _, e := range entries {
		name := strings.TrimSuffix(path.Base(e), ".md")
		if name != Readme {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics)
	return topics
}
