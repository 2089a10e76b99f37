package styling

import "strings"

// ComposePrompt appends the user's answer to the follow-up question, if any.
func ComposePrompt(prompt, answer string) string {
	prompt = strings.TrimSpace(prompt)
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return prompt
	}
	return prompt + "\n\n추가 정보: " + answer
}
