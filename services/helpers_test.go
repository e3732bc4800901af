package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jamaah_server/models"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func newTestKV(t *testing.T) KVStore {
	t.Helper()
	mr := miniredis.RunT(t)
	return &RedisKV{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
}

// fakeProvider is an in-memory AuthProvider for service tests.
type fakeProvider struct {
	nextID   int
	accounts map[string]*models.AuthUser // by user ID
	byToken  map[string]*models.AuthUser

	passwords map[string]string // userID -> last set password

	signInErr   error
	signedOut   []string
	createCalls int
	updateCalls int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		accounts:  map[string]*models.AuthUser{},
		byToken:   map[string]*models.AuthUser{},
		passwords: map[string]string{},
	}
}

func (p *fakeProvider) GetUserByToken(_ context.Context, accessToken string) (*models.AuthUser, error) {
	user, ok := p.byToken[accessToken]
	if !ok {
		return nil, fmt.Errorf("auth provider: invalid token")
	}
	return user, nil
}

func (p *fakeProvider) AdminCreateUser(_ context.Context, email, password string, metadata map[string]string) (*models.AuthUser, error) {
	p.createCalls++
	p.nextID++
	user := &models.AuthUser{
		ID:       fmt.Sprintf("user-%d", p.nextID),
		Email:    email,
		Metadata: metadata,
	}
	p.accounts[user.ID] = user
	p.passwords[user.ID] = password
	return user, nil
}

func (p *fakeProvider) AdminUpdateUser(_ context.Context, userID, password string, metadata map[string]string) error {
	p.updateCalls++
	user, ok := p.accounts[userID]
	if !ok {
		return fmt.Errorf("auth provider: user not found")
	}
	if password != "" {
		p.passwords[userID] = password
	}
	if metadata != nil {
		if user.Metadata == nil {
			user.Metadata = map[string]string{}
		}
		for k, v := range metadata {
			user.Metadata[k] = v
		}
	}
	return nil
}

func (p *fakeProvider) SignInWithPassword(_ context.Context, email, password string) (*models.AuthSession, error) {
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	for _, user := range p.accounts {
		if user.Email == email && p.passwords[user.ID] == password {
			return &models.AuthSession{AccessToken: "token-" + user.ID, User: *user}, nil
		}
	}
	return nil, fmt.Errorf("auth provider: Invalid login credentials")
}

func (p *fakeProvider) SignOut(_ context.Context, accessToken string) error {
	p.signedOut = append(p.signedOut, accessToken)
	return nil
}

// fakeSender records credential deliveries.
type fakeSender struct {
	sent []CredentialMessage
	err  error
}

func (s *fakeSender) SendCredentials(_ context.Context, msg CredentialMessage) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newMemberService(t *testing.T) (*MemberService, *fakeProvider, *fakeSender) {
	t.Helper()
	kv := newTestKV(t)
	provider := newFakeProvider()
	sender := &fakeSender{}
	svc := &MemberService{
		KV:            kv,
		Provider:      provider,
		Notifications: &NotificationService{KV: kv, Log: testLogger()},
		Sender:        sender,
		Log:           testLogger(),
	}
	return svc, provider, sender
}
