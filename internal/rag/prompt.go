package rag

import (
	"strings"

	wl "github.com/abadojack/whatlanggo"
)

const (
	langAuto = "auto"

	promptInstructions = "You are a helpful assistant.\n" +
		"Answer the question strictly using the provided context.\n" +
		"If the answer is not present, say you don't know.\n"
)

// BuildPrompt grounds the question in the caller's context chunks.
// Chunks are joined with a blank line. An empty language adds no language directive.
func BuildPrompt(question string, context []string, language string) string {
	var b strings.Builder

	b.WriteString(promptInstructions)
	if language != "" {
		b.WriteString("Respond in ")
		b.WriteString(language)
		b.WriteString(".\n")
	}

	b.WriteString("\nContext:\n")
	b.WriteString(strings.Join(context, "\n\n"))
	b.WriteString("\n\nQuestion:\n")
	b.WriteString(question)
	b.WriteString("\n\nAnswer:\n")

	return b.String()
}

func resolveLanguage(lang, question string) string {
	lang = strings.TrimSpace(lang)
	if !strings.EqualFold(lang, langAuto) {
		return lang
	}
	return detectLang(question)
}

// detectLang returns the English name of the question's language, or "" when
// the detector is not confident, which is typical for very short questions.
func detectLang(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	info := wl.Detect(s)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.String()
}
