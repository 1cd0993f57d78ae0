package deepseek

import (
	"fmt"
	"strings"
)

// TranslationPrompt builds the system instructions for a translation
// request. Keep updates centralized here so it is easy to tweak without
// hunting through call sites.
func TranslationPrompt(sourceName, targetName string) string {
	sourceName = strings.TrimSpace(sourceName)
	if sourceName == "" || strings.EqualFold(sourceName, "unknown") {
		return fmt.Sprintf(
			"You are a professional translator. Translate the following transcript into %s. "+
				"Detect the source language yourself. Preserve the meaning, tone, and paragraph "+
				"structure of the original. Respond only with the translated text, without "+
				"commentary or notes.",
			targetName,
		)
	}
	return fmt.Sprintf(
		"You are a professional translator. Translate the following transcript from %s into %s. "+
			"Preserve the meaning, tone, and paragraph structure of the original. Respond only "+
			"with the translated text, without commentary or notes.",
		sourceName, targetName,
	)
}
