package dto

import "encoding/json"

// SuggestContent is the delimited question batch. It encodes as false when
// empty, matching the {content: string|false} contract.
type SuggestContent string

func (c SuggestContent) MarshalJSON() ([]byte, error) {
	if c == "" {
		return []byte("false"), nil
	}
	return json.Marshal(string(c))
}

func (c *SuggestContent) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "false", "null":
		*c = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = SuggestContent(s)
	return nil
}

type SuggestResponse struct {
	Content SuggestContent `json:"content"`
	Error   string         `json:"error,omitempty"`
}

type QuestionsResponse struct {
	Questions []string `json:"questions"`
	Fallback  bool     `json:"fallback"`
}
