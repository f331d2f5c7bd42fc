package draft

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write questions for academic quiz bowl competitions.

Rules:
- Each question is read aloud by a moderator, so write complete sentences with no lists, tables or formulas that need to be seen.
- Questions should get more specific as they go on, so stronger players can buzz early.
- The answer must be short: a name, a word, a number or a short phrase. Never a sentence.
- Match the requested competition level. District questions cover core curriculum, Regional questions go deeper, State questions are the hardest.
- Every question must have exactly one defensible answer.
- Do not repeat or paraphrase any question from the "already in the bank" list.`

// buildUserMessage constructs the user message for a batch.
func buildUserMessage(input Input, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write %d question(s).\n", input.Count)
	fmt.Fprintf(&b, "Competition level: %s\n", input.Criteria.Difficulty)
	fmt.Fprintf(&b, "Season: %d\n", input.Criteria.Year)
	if len(input.Criteria.Subjects) > 0 {
		fmt.Fprintf(&b, "Subject: %s\n", strings.Join(input.Criteria.Subjects, " or "))
	} else {
		b.WriteString("Subject: any, spread across subjects\n")
	}

	b.WriteString("\nAlready in the bank:\n")
	b.WriteString(buildDedup(input.Existing, cfg.MaxExisting))

	return b.String()
}

// buildDedup formats existing questions for the prompt, keeping the most
// recent max entries. Returns "None" if there are none.
func buildDedup(existing []string, max int) string {
	if len(existing) == 0 {
		return "None"
	}
	if max > 0 && len(existing) > max {
		existing = existing[len(existing)-max:]
	}

	var b strings.Builder
	for i, q := range existing {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}
	return strings.TrimRight(b.String(), "\n")
}
