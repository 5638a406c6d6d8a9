package inbound

type SignupRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Age      int32  `json:"age"`
}

type LoginRequest struct {
	Email string `json:"email"`
}

type OTPResendRequest struct {
	Email string `json:"email"`
}

type VerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyResponse struct {
	AccessToken string `json:"access_token"`
}

type MessageResponse struct {
	Detail string `json:"detail"`
}
