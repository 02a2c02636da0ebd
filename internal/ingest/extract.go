package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	pdf "github.com/dslipak/pdf"
	"golang.org/x/net/html"
)

var textExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".java": true,
	".py":   true,
	".json": true,
}

// IsSupported reports whether ExtractText knows how to read path.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".pdf" || ext == ".html" || ext == ".htm" || textExtensions[ext]
}

// ExtractText returns the readable text of a supported file, trimmed and UTF-8 clean.
func ExtractText(path string) (string, error) {
	var content string

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".pdf":
		text, err := extractTextFromPDF(path)
		if err != nil {
			return "", fmt.Errorf("read pdf %s: %w", path, err)
		}
		content = text

	case ext == ".html" || ext == ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		content = extractMainText(string(data))

	case textExtensions[ext]:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		content = string(data)

	default:
		return "", fmt.Errorf("unsupported file type: %s", path)
	}

	return sanitizeUTF8(strings.TrimSpace(content)), nil
}

func extractTextFromPDF(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	buf := bytes.NewBuffer(nil)
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// extractMainText returns the visible text nodes of a page, one per line.
// Content of script, style and noscript elements and single-rune fragments are dropped.
func extractMainText(page string) string {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return ""
	}

	var lines []string
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode && hiddenElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); utf8.RuneCountInString(t) > 1 {
				lines = append(lines, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return strings.Join(lines, "\n")
}

var hiddenElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
}

// sanitizeUTF8 drops invalid bytes; the upstream rejects non-UTF-8 payloads.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
