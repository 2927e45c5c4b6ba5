package evaluation

import "strings"

const systemPrompt = "You are an expert interviewer for technical machine learning interviews. " +
	"Evaluate the candidate's answer to the question and give short advice (2-3 sentences) on how to improve it."

// BuildPrompt renders the critique prompt. The reference answer is included only when present.
func BuildPrompt(req Request, maxTokens int, temperature float64) Prompt {
	var user strings.Builder
	user.WriteString("Question: ")
	user.WriteString(req.Question)
	user.WriteString("\n\n")
	if req.ReferenceAnswer != "" {
		user.WriteString("Reference answer (for context): ")
		user.WriteString(req.ReferenceAnswer)
		user.WriteString("\n\n")
	}
	user.WriteString("Candidate's answer: ")
	user.WriteString(req.UserAnswer)
	user.WriteString("\n\n")
	user.WriteString("Assess the answer and briefly say what is missing and how to strengthen this knowledge.")

	return Prompt{
		System:      systemPrompt,
		User:        user.String(),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}
