package provider

import "time"

const defaultFriendliModel = "LGAI-EXAONE/K-EXAONE-236B-A23B"

// NewFriendli creates a provider backed by the FriendliAI serverless API
// (OpenAI-compatible). Serverless models can be slow to first token, so the
// client timeout is generous.
func NewFriendli(token, model string) Provider {
	if model == "" {
		model = defaultFriendliModel
	}
	return newChatClient("Friendli", "https://api.friendli.ai/serverless/v1", token, model, false, 300*time.Second)
}
