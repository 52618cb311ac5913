package internal

import (
	"github.com/pkoukk/tiktoken-go"
)

// TruncateTokens bounds the text posted for embedding. Oversized rows would
// blow up embedding latency and cost, so anything beyond maxTokens is cut at
// a token boundary. maxTokens <= 0 disables truncation.
func TruncateTokens(text string, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		return text, nil
	}
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return "", err
	}
	tokens := enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text, nil
	}
	return enc.Decode(tokens[:maxTokens]), nil
}
