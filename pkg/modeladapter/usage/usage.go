// Package usage reads token accounting from chat completion replies.
package usage

import "github.com/tidwall/gjson"

// TokenCount holds the token counts and cost reported for a single call.
type TokenCount struct {
	InputTokens  int
	OutputTokens int
	Cost         float64 // Credits charged, when the provider reports it.
}

// Total returns the sum of input and output tokens.
func (tc TokenCount) Total() int {
	return tc.InputTokens + tc.OutputTokens
}

// Add returns the element-wise sum of tc and other.
func (tc TokenCount) Add(other TokenCount) TokenCount {
	return TokenCount{
		InputTokens:  tc.InputTokens + other.InputTokens,
		OutputTokens: tc.OutputTokens + other.OutputTokens,
		Cost:         tc.Cost + other.Cost,
	}
}

// Parse extracts the usage object of a raw reply body. The bool is false when
// the body carries no usage object.
func Parse(body []byte) (TokenCount, bool) {
	u := gjson.GetBytes(body, "usage")
	if !u.IsObject() {
		return TokenCount{}, false
	}

	return TokenCount{
		InputTokens:  int(u.Get("prompt_tokens").Int()),
		OutputTokens: int(u.Get("completion_tokens").Int()),
		Cost:         u.Get("cost").Float(),
	}, true
}
