package event

// OTPIssuedDestination is the topic carrying freshly issued email codes.
const OTPIssuedDestination string = "otp_issued"

// OTPIssuedMessage is published whenever a one-time passcode is issued and
// must be delivered to the user's email address.
type OTPIssuedMessage struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Code     string `json:"code"`
	Purpose  string `json:"purpose"`
}
