package entity

// ChallengePurpose records which flow issued a one-time passcode.
type ChallengePurpose int16

const (
	// ChallengePurposeUnknown is mean purpose is not known / not set.
	ChallengePurposeUnknown ChallengePurpose = 0

	// ChallengePurposeSignup mean the code was issued during account creation.
	ChallengePurposeSignup ChallengePurpose = 1

	// ChallengePurposeLogin mean the code was issued to sign in a verified user.
	ChallengePurposeLogin ChallengePurpose = 2
)

func (cp ChallengePurpose) String() string {
	switch cp {
	case ChallengePurposeSignup:
		return "Signup"
	case ChallengePurposeLogin:
		return "Login"
	default:
		return "Unknown"
	}
}
