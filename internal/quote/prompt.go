package quote

import "strings"

const promptHeader = "You are a motivational coach for a software development team. " +
	"Write one short, punchy motivational quote for developers starting their day. " +
	"Do not add hashtags or surrounding quotation marks."

// languageDirective describes the desired output shape for a language code.
// Unknown codes behave as EN.
func languageDirective(lang string) string {
	switch lang {
	case "MM":
		return "Write the quote in Burmese (Myanmar language) only."
	case "EN_MM":
		return "Write the quote in English on the first line, then its Burmese (Myanmar language) translation on the second line."
	default:
		return "Write the quote in English only."
	}
}

// BuildPrompt renders the generation prompt: the fixed instruction, the
// language directive, and a bulleted Context block when task lines exist.
func BuildPrompt(lang string, contextLines []string) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n")
	sb.WriteString(languageDirective(lang))
	if len(contextLines) > 0 {
		sb.WriteString("\n\nContext:\n")
		for _, line := range contextLines {
			sb.WriteString("- ")
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString("\nIf it fits naturally, nod to what the team has been working on.")
	}
	return sb.String()
}
