package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gonote/internal/identity/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/config"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
	"github.com/shandysiswandi/gonote/internal/pkg/hash"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/jwt"
	"github.com/shandysiswandi/gonote/internal/pkg/validator"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

type fakeDB struct {
	usersByEmail map[string]*entity.User
	usersByID    map[int64]*entity.User
	challenges   map[int64]entity.Challenge

	createErr  error
	published  []OTPIssuedEvent
	consumeErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		usersByEmail: map[string]*entity.User{},
		usersByID:    map[int64]*entity.User{},
		challenges:   map[int64]entity.Challenge{},
	}
}

func (f *fakeDB) addUser(u entity.User) {
	cp := u
	f.usersByEmail[u.Email] = &cp
	f.usersByID[u.ID] = &cp
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return u, nil
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.usersByID[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	return u, nil
}

func (f *fakeDB) CreateUserWithChallenge(_ context.Context, user entity.User, chal entity.Challenge) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.usersByEmail[user.Email]; ok {
		return goerror.ErrConflict
	}

	f.addUser(user)
	f.challenges[chal.UserID] = chal

	return nil
}

func (f *fakeDB) UpsertChallenge(_ context.Context, chal entity.Challenge) error {
	f.challenges[chal.UserID] = chal

	return nil
}

func (f *fakeDB) ConsumeChallenge(_ context.Context, email, codeHash string, now time.Time) (*entity.User, error) {
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}

	u, ok := f.usersByEmail[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	chal, ok := f.challenges[u.ID]
	if !ok || chal.CodeHash != codeHash || !chal.ExpiresAt.After(now) {
		return nil, goerror.ErrNotFound
	}

	delete(f.challenges, u.ID)
	u.IsVerified = true

	return u, nil
}

func (f *fakeDB) DeleteChallenge(_ context.Context, userID int64) error {
	delete(f.challenges, userID)

	return nil
}

type fakeMessaging struct {
	err    error
	events []OTPIssuedEvent
}

func (f *fakeMessaging) PublishOTPIssued(_ context.Context, msg OTPIssuedEvent) error {
	if f.err != nil {
		return f.err
	}

	f.events = append(f.events, msg)

	return nil
}

type fakeLimiter struct {
	locked   bool
	failures int
	resets   int
}

func (f *fakeLimiter) Allowed(context.Context, string) (bool, error) { return !f.locked, nil }

func (f *fakeLimiter) RecordFailure(context.Context, string) error {
	f.failures++

	return nil
}

func (f *fakeLimiter) Reset(context.Context, string) error {
	f.resets++

	return nil
}

type fakeConfig struct {
	config.Config
}

func (fakeConfig) GetMinute(string) time.Duration { return 10 * time.Minute }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type stubOTP struct{ code string }

func (s stubOTP) Generate() (string, error) { return s.code, nil }

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++

	return s.next
}

type stubStringID struct{}

func (stubStringID) Generate() string { return "00000000-0000-0000-0000-000000000001" }

type fixture struct {
	uc   *Usecase
	db   *fakeDB
	mq   *fakeMessaging
	lim  *fakeLimiter
	hmac hash.Hash
	jwt  jwt.JWT
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("init validator: %v", err)
	}

	clk := fixedClock{now: testNow}
	token, err := jwt.NewHS512(jwt.Config{
		Secret:     []byte(strings.Repeat("s", 64)),
		Issuer:     "gonote-test",
		Audiences:  []string{"gonote-test"},
		TTLMinutes: time.Hour,
		Clock:      clk,
		UUID:       stubStringID{},
	})
	if err != nil {
		t.Fatalf("init jwt: %v", err)
	}

	db := newFakeDB()
	mq := &fakeMessaging{}
	lim := &fakeLimiter{}
	hmac := hash.NewHMACSHA256("test-hmac-secret")

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		Validator:     v10,
		Config:        fakeConfig{},
		HMAC:          hmac,
		Limiter:       lim,
		UID:           &seqNumberID{},
		OTP:           stubOTP{code: "123456"},
		Clock:         clk,
		JWT:           token,
		Instrument:    instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: db, mq: mq, lim: lim, hmac: hmac, jwt: token}
}

func (f *fixture) addVerifiedUser(t *testing.T, email string) entity.User {
	t.Helper()

	u := entity.User{ID: 100, Email: email, FullName: "Existing User", Age: 30, IsVerified: true}
	f.db.addUser(u)

	return u
}

func (f *fixture) addUnverifiedUser(t *testing.T, email string) entity.User {
	t.Helper()

	u := entity.User{ID: 200, Email: email, FullName: "Pending User", Age: 25}
	f.db.addUser(u)

	return u
}

func seedChallenge(t *testing.T, f *fixture, userID int64, code string, expiresAt time.Time) {
	t.Helper()

	h, err := f.hmac.Hash(code)
	if err != nil {
		t.Fatalf("hash code: %v", err)
	}

	f.db.challenges[userID] = entity.Challenge{
		UserID:    userID,
		CodeHash:  string(h),
		Purpose:   entity.ChallengePurposeSignup,
		ExpiresAt: expiresAt,
	}
}

func assertBusinessCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a goerror, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (message %q)", want, gerr.Code(), gerr.Msg())
	}
}

func TestSignup(t *testing.T) {
	f := newFixture(t)

	// Act
	err := f.uc.Signup(context.Background(), SignupInput{
		Email:    "  New.User@Example.COM ",
		FullName: "New User",
		Age:      28,
	})

	// Assert
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	user, ok := f.db.usersByEmail["new.user@example.com"]
	if !ok {
		t.Fatal("user was not stored under the normalized email")
	}
	if user.IsVerified {
		t.Fatal("new account must start unverified")
	}

	chal, ok := f.db.challenges[user.ID]
	if !ok {
		t.Fatal("signup did not store a challenge")
	}
	if got := chal.ExpiresAt; !got.Equal(testNow.Add(10 * time.Minute)) {
		t.Fatalf("unexpected challenge expiry: %v", got)
	}

	if len(f.mq.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(f.mq.events))
	}
	if f.mq.events[0].Code != "123456" {
		t.Fatalf("published code mismatch: %q", f.mq.events[0].Code)
	}
	if f.mq.events[0].Purpose != entity.ChallengePurposeSignup {
		t.Fatalf("published purpose mismatch: %v", f.mq.events[0].Purpose)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.addVerifiedUser(t, "taken@example.com")

	err := f.uc.Signup(context.Background(), SignupInput{
		Email:    "taken@example.com",
		FullName: "Another User",
		Age:      40,
	})

	assertBusinessCode(t, err, goerror.CodeConflict)
}

func TestSignupInvalidInput(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"missing email", SignupInput{FullName: "Some User", Age: 20}},
		{"bad email", SignupInput{Email: "not-an-email", FullName: "Some User", Age: 20}},
		{"name too short", SignupInput{Email: "a@b.com", FullName: "X", Age: 20}},
		{"name with digits", SignupInput{Email: "a@b.com", FullName: "User 123", Age: 20}},
		{"too young", SignupInput{Email: "a@b.com", FullName: "Some User", Age: 9}},
		{"too old", SignupInput{Email: "a@b.com", FullName: "Some User", Age: 121}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := f.uc.Signup(context.Background(), tc.in); err == nil {
				t.Fatal("expected a validation error, got nil")
			}
		})
	}
}

func TestSignupPublishFailureRollsBackChallenge(t *testing.T) {
	f := newFixture(t)
	f.mq.err = errors.New("broker down")

	err := f.uc.Signup(context.Background(), SignupInput{
		Email:    "new@example.com",
		FullName: "New User",
		Age:      28,
	})

	if err == nil {
		t.Fatal("expected a server error when publish fails")
	}
	if len(f.db.challenges) != 0 {
		t.Fatal("challenge must be removed after a publish failure")
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	user := f.addVerifiedUser(t, "known@example.com")

	err := f.uc.Login(context.Background(), LoginInput{Email: "Known@Example.com"})

	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, ok := f.db.challenges[user.ID]; !ok {
		t.Fatal("login did not store a challenge")
	}
	if len(f.mq.events) != 1 || f.mq.events[0].Purpose != entity.ChallengePurposeLogin {
		t.Fatalf("expected one login event, got %+v", f.mq.events)
	}
}

func TestLoginUnknownAccount(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Login(context.Background(), LoginInput{Email: "missing@example.com"})

	assertBusinessCode(t, err, goerror.CodeNotFound)
}

func TestLoginUnverifiedAccount(t *testing.T) {
	f := newFixture(t)
	f.addUnverifiedUser(t, "pending@example.com")

	err := f.uc.Login(context.Background(), LoginInput{Email: "pending@example.com"})

	assertBusinessCode(t, err, goerror.CodeForbidden)
}

func TestOTPResend(t *testing.T) {
	f := newFixture(t)
	user := f.addUnverifiedUser(t, "pending@example.com")
	seedChallenge(t, f, user.ID, "999999", testNow.Add(time.Minute))

	err := f.uc.OTPResend(context.Background(), OTPResendInput{Email: "pending@example.com"})

	if err != nil {
		t.Fatalf("otp resend failed: %v", err)
	}

	// The stored challenge must now match the freshly generated code.
	h, _ := f.hmac.Hash("123456")
	if got := f.db.challenges[user.ID].CodeHash; got != string(h) {
		t.Fatal("resend did not replace the pending challenge")
	}
}

func TestOTPResendAlreadyVerified(t *testing.T) {
	f := newFixture(t)
	f.addVerifiedUser(t, "done@example.com")

	err := f.uc.OTPResend(context.Background(), OTPResendInput{Email: "done@example.com"})

	assertBusinessCode(t, err, goerror.CodeConflict)
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	user := f.addUnverifiedUser(t, "pending@example.com")
	seedChallenge(t, f, user.ID, "123456", testNow.Add(time.Minute))

	out, err := f.uc.Verify(context.Background(), VerifyInput{Email: "pending@example.com", Code: "123456"})

	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if out.AccessToken == "" {
		t.Fatal("missing access token")
	}
	if !f.db.usersByEmail["pending@example.com"].IsVerified {
		t.Fatal("verify must mark the account verified")
	}
	if f.lim.resets != 1 {
		t.Fatal("verify must reset the failure counter on success")
	}

	clm, err := f.jwt.Verify(out.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if clm.UserID != user.ID {
		t.Fatalf("token user mismatch: got %d want %d", clm.UserID, user.ID)
	}
}

func TestVerifyCodeConsumedOnce(t *testing.T) {
	f := newFixture(t)
	user := f.addUnverifiedUser(t, "pending@example.com")
	seedChallenge(t, f, user.ID, "123456", testNow.Add(time.Minute))

	in := VerifyInput{Email: "pending@example.com", Code: "123456"}

	if _, err := f.uc.Verify(context.Background(), in); err != nil {
		t.Fatalf("first verify failed: %v", err)
	}

	_, err := f.uc.Verify(context.Background(), in)
	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestVerifyWrongCode(t *testing.T) {
	f := newFixture(t)
	user := f.addUnverifiedUser(t, "pending@example.com")
	seedChallenge(t, f, user.ID, "123456", testNow.Add(time.Minute))

	_, err := f.uc.Verify(context.Background(), VerifyInput{Email: "pending@example.com", Code: "654321"})

	assertBusinessCode(t, err, goerror.CodeUnauthorized)
	if f.lim.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", f.lim.failures)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	f := newFixture(t)
	user := f.addUnverifiedUser(t, "pending@example.com")
	seedChallenge(t, f, user.ID, "123456", testNow.Add(-time.Second))

	_, err := f.uc.Verify(context.Background(), VerifyInput{Email: "pending@example.com", Code: "123456"})

	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestVerifyLockedOut(t *testing.T) {
	f := newFixture(t)
	f.lim.locked = true

	_, err := f.uc.Verify(context.Background(), VerifyInput{Email: "pending@example.com", Code: "123456"})

	assertBusinessCode(t, err, goerror.CodeTooManyRequest)
}

func TestVerifyInvalidCodeFormat(t *testing.T) {
	f := newFixture(t)

	cases := []string{"", "12345", "1234567", "abcdef"}
	for _, code := range cases {
		if _, err := f.uc.Verify(context.Background(), VerifyInput{Email: "a@b.com", Code: code}); err == nil {
			t.Fatalf("expected a validation error for code %q", code)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	user := f.addVerifiedUser(t, "known@example.com")

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: user.ID, UserEmail: user.Email})

	got, err := f.uc.Authenticate(ctx)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if got != user.ID {
		t.Fatalf("user id mismatch: got %d want %d", got, user.ID)
	}
}

func TestAuthenticateMissingClaims(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Authenticate(context.Background())

	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	f := newFixture(t)

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: 404})

	_, err := f.uc.Authenticate(ctx)

	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestAuthenticateUnverifiedUser(t *testing.T) {
	f := newFixture(t)
	user := f.addUnverifiedUser(t, "pending@example.com")

	ctx := jwt.SetAuth(context.Background(), jwt.Claims{UserID: user.ID})

	_, err := f.uc.Authenticate(ctx)

	assertBusinessCode(t, err, goerror.CodeForbidden)
}
