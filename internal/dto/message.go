package dto

type SendMessageRequest struct {
	Username string `json:"username"`
	Content  string `json:"content"`
}

type AcceptMessagesRequest struct {
	AcceptMessages bool `json:"acceptMessages"`
}
