package cmd

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/etnz/cryptofolio/docs"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// shellBlock is the info string of the documentation examples run by tests.
const shellBlock = "cpt-shell"

// Block represents a fenced code block in the markdown file.
type Block struct {
	Content string
	File    string
	Line    int
}

// parseMarkdown returns the shell examples of a markdown file.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := fs.ReadFile(docs.Files, file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil || string(fcb.Info.Segment.Value(content)) != shellBlock {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			b.Write(line.Value(content))
		}
		blocks = append(blocks, &Block{
			Content: b.String(),
			File:    file,
			Line:    bytes.Count(content[:fcb.Info.Segment.Start], []byte{'\n'}) + 1,
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// TestDocumentationExamples runs every shell example of the documentation in a
// fresh session. Examples must not print any error.
func TestDocumentationExamples(t *testing.T) {
	files, err := fs.Glob(docs.Files, "*.md")
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, file := range files {
		for _, block := range parseMarkdown(t, file) {
			count++
			t.Run(block.File, func(t *testing.T) {
				t.Chdir(t.TempDir())
				var out, errOut bytes.Buffer
				s, err := NewSession(testConfig(), fakePrices{"Bitcoin": 50000}, &out, &errOut)
				if err != nil {
					t.Fatal(err)
				}
				if err := s.Run(context.Background(), strings.NewReader(block.Content), false); err != nil {
					t.Fatalf("%s:%d: Run() error = %v", block.File, block.Line, err)
				}
				if errOut.Len() > 0 {
					t.Errorf("%s:%d: example printed errors:\n%s", block.File, block.Line, errOut.String())
				}
			})
		}
	}
	if count == 0 {
		t.Errorf("no %q example found in the documentation", shellBlock)
	}
}

// TestDocumentationCommands checks that every example only uses shell commands.
func TestDocumentationCommands(t *testing.T) {
	known := map[string]bool{"help": true}
	for _, c := range sessionCommands() {
		known[c.cmd.Name()] = true
	}
	files, _ := fs.Glob(docs.Files, "*.md")
	for _, file := range files {
		for _, block := range parseMarkdown(t, file) {
			for _, line := range strings.Split(block.Content, "\n") {
				fields := strings.Fields(line)
				if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
					continue
				}
				if !known[fields[0]] {
					t.Errorf("%s:%d: unknown command %q", block.File, block.Line, fields[0])
				}
			}
		}
	}
}
