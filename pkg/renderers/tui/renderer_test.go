package tui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-freedom/pkg/form"
	"github.com/goliatone/go-freedom/pkg/identity"
	"github.com/goliatone/go-freedom/pkg/model"
	"github.com/goliatone/go-freedom/pkg/render"
	"github.com/goliatone/go-freedom/pkg/submit"
	"github.com/goliatone/go-freedom/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirm      []bool
	selectIdx    []int
	infoMessages []string
	prompts      []string
	inputPos     int
	passPos      int
	confirmPos   int
	selectPos    int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMachine(t *testing.T, mode model.FormMode, svc identity.Service, router form.Router) *form.Machine {
	t.Helper()
	m, err := form.New(mode, submit.New(svc, submit.WithLogger(quietLogger())), router, form.WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	return m
}

func newRenderer(t *testing.T, driver PromptDriver) *Renderer {
	t.Helper()
	r, err := New(WithPromptDriver(driver), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRun_SignInRepromptsInvalidField(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"not-an-email", "a@b.com"},
		passwords: []string{"secret1"},
	}
	svc := testsupport.NewStubService()
	router := &testsupport.RecordingRouter{}
	m := newMachine(t, model.FormModeSignIn, svc, router)

	state, err := newRenderer(t, driver).Run(context.Background(), m, render.RenderOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if state != form.StateSignedIn {
		t.Fatalf("state = %s, want signed-in", state)
	}
	if diff := cmp.Diff([]string{"Email", "Email", "Password"}, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if !containsMessage(driver.infoMessages, "! Email: Invalid email address") {
		t.Fatalf("expected inline validation message, got %v", driver.infoMessages)
	}
	want := []testsupport.CredentialCall{{Email: "a@b.com", Password: "secret1"}}
	if diff := cmp.Diff(want, svc.CheckCalls()); diff != "" {
		t.Fatalf("credential calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/"}, router.Paths()); diff != "" {
		t.Fatalf("navigation mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_RejectedThenGiveUp(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"a@b.com"},
		passwords: []string{"secret1"},
		confirm:   []bool{false},
	}
	svc := testsupport.NewStubService()
	svc.CheckErr = identity.ErrInvalidCredentials
	m := newMachine(t, model.FormModeSignIn, svc, &testsupport.RecordingRouter{})

	state, err := newRenderer(t, driver).Run(context.Background(), m, render.RenderOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if state != form.StateFailed {
		t.Fatalf("state = %s, want failed", state)
	}
	if !containsMessage(driver.infoMessages, "! Invalid email or password.") {
		t.Fatalf("expected form-level error, got %v", driver.infoMessages)
	}
	if diff := cmp.Diff(testsupport.SignInValues(), m.Values()); diff != "" {
		t.Fatalf("values not preserved (-want +got):\n%s", diff)
	}
}

func TestRun_TooManyAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x", "y"}}
	r, err := New(WithPromptDriver(driver), WithMaxAttempts(2), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	m := newMachine(t, model.FormModeSignIn, testsupport.NewStubService(), &testsupport.RecordingRouter{})

	_, err = r.Run(context.Background(), m, render.RenderOptions{})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRun_SignUpAnnouncesLinkStep(t *testing.T) {
	values := testsupport.SignUpValues()
	var inputs []string
	for _, field := range model.FieldsFor(model.FormModeSignUp) {
		if field.Kind != model.FieldKindPassword {
			inputs = append(inputs, values[field.Name])
		}
	}
	driver := &stubDriver{inputs: inputs, passwords: []string{values["password"]}}
	svc := testsupport.NewStubService()
	m := newMachine(t, model.FormModeSignUp, svc, &testsupport.RecordingRouter{})

	state, err := newRenderer(t, driver).Run(context.Background(), m, render.RenderOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if state != form.StateAuthenticatedUnlinked {
		t.Fatalf("state = %s, want authenticated-unlinked", state)
	}
	if len(svc.CreateCalls()) != 1 {
		t.Fatalf("expected one CreateAccount call")
	}
	last := driver.infoMessages[len(driver.infoMessages)-1]
	if !strings.HasPrefix(last, "Link Account") {
		t.Fatalf("expected link account announcement, got %q", last)
	}
}

func TestChooseMode(t *testing.T) {
	r := newRenderer(t, &stubDriver{selectIdx: []int{1}})
	mode, err := r.ChooseMode(context.Background())
	if err != nil {
		t.Fatalf("choose: %v", err)
	}
	if mode != model.FormModeSignUp {
		t.Fatalf("mode = %s", mode)
	}
}

func TestRender_PrettyAndJSON(t *testing.T) {
	view := form.View{
		Mode:       model.FormModeSignIn,
		State:      form.StateFailed,
		Submission: form.SubmissionFailed,
		FormError:  "Invalid email or password.",
		Fields: []form.FieldView{
			{Name: "email", Label: "Email", Kind: model.FieldKindEmail, InputType: "email", Value: "a@b.com"},
			{Name: "password", Label: "Password", Kind: model.FieldKindPassword, InputType: "password", Value: "secret1", Error: "Required"},
		},
	}

	r := newRenderer(t, &stubDriver{})
	out, err := r.Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Sign In\n" +
		"Please enter your details\n" +
		"! Invalid email or password.\n" +
		"  Email: a@b.com\n" +
		"  Password:  (Required)\n" +
		"[Sign In]\n" +
		"Don't have an account? Sign Up (/sign-up)\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}

	jsonRenderer, err := New(WithPromptDriver(&stubDriver{}), WithOutputFormat(OutputFormatJSON))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if jsonRenderer.ContentType() != "application/json" {
		t.Fatalf("content type = %q", jsonRenderer.ContentType())
	}
	raw, err := jsonRenderer.Render(context.Background(), view, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	var page render.Page
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Title != "Sign In" || page.FormError != "Invalid email or password." {
		t.Fatalf("unexpected page %+v", page)
	}
}

func containsMessage(messages []string, want string) bool {
	for _, msg := range messages {
		if msg == want {
			return true
		}
	}
	return false
}
