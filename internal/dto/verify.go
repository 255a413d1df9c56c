package dto

type VerifyCodeRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
}

type ResendCodeRequest struct {
	Username string `json:"username"`
}
