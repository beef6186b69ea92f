package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-freedom/pkg/identity"
)

// CredentialCall records one CheckCredentials invocation.
type CredentialCall struct {
	Email    string
	Password string
}

// StubService is a scripted identity.Service. Calls are recorded; when Gate
// is non-nil every call blocks until the gate is closed (or receives a
// value) or the call context ends, which lets tests hold a submission in
// flight.
type StubService struct {
	mu sync.Mutex

	Gate chan struct{}

	Identity    identity.Identity
	Session     identity.Session
	CreateErr   error
	CheckErr    error
	PanicWith   any
	createCalls []identity.Profile
	checkCalls  []CredentialCall
	started     chan struct{}
}

var _ identity.Service = (*StubService)(nil)

// NewStubService returns a stub that succeeds with canned values.
func NewStubService() *StubService {
	return &StubService{
		Identity: identity.Identity{ID: "user-1", Email: "siddhartha@mail.com", FirstName: "Siddhartha", LastName: "Banerjee"},
		Session:  identity.Session{Token: "token-1", UserID: "user-1"},
		started:  make(chan struct{}, 16),
	}
}

// Hold installs a gate so calls block until Release.
func (s *StubService) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gate = make(chan struct{})
}

// Release unblocks every held call.
func (s *StubService) Release() {
	s.mu.Lock()
	gate := s.Gate
	s.Gate = nil
	s.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// Started receives once per call after it has been recorded.
func (s *StubService) Started() <-chan struct{} {
	return s.started
}

func (s *StubService) CreateAccount(ctx context.Context, profile identity.Profile) (identity.Identity, error) {
	s.mu.Lock()
	s.createCalls = append(s.createCalls, profile)
	gate, user, err, p := s.Gate, s.Identity, s.CreateErr, s.PanicWith
	s.mu.Unlock()

	s.notify()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return identity.Identity{}, ctx.Err()
		}
	}
	if p != nil {
		panic(p)
	}
	if err != nil {
		return identity.Identity{}, err
	}
	return user, nil
}

func (s *StubService) CheckCredentials(ctx context.Context, email, password string) (identity.Session, error) {
	s.mu.Lock()
	s.checkCalls = append(s.checkCalls, CredentialCall{Email: email, Password: password})
	gate, session, err, p := s.Gate, s.Session, s.CheckErr, s.PanicWith
	s.mu.Unlock()

	s.notify()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return identity.Session{}, ctx.Err()
		}
	}
	if p != nil {
		panic(p)
	}
	if err != nil {
		return identity.Session{}, err
	}
	return session, nil
}

// CreateCalls returns the recorded CreateAccount payloads.
func (s *StubService) CreateCalls() []identity.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]identity.Profile(nil), s.createCalls...)
}

// CheckCalls returns the recorded CheckCredentials arguments.
func (s *StubService) CheckCalls() []CredentialCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CredentialCall(nil), s.checkCalls...)
}

func (s *StubService) notify() {
	if s.started == nil {
		return
	}
	select {
	case s.started <- struct{}{}:
	default:
	}
}
