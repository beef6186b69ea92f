package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// SignInValues returns credentials that pass the SignIn schema.
func SignInValues() map[string]string {
	return map[string]string{
		"email":    "a@b.com",
		"password": "secret1",
	}
}

// SignUpValues returns a full profile that passes the SignUp schema.
func SignUpValues() map[string]string {
	return map[string]string{
		"firstName":  "Siddhartha",
		"lastName":   "Banerjee",
		"address1":   "221 Park Street",
		"city":       "Kolkata",
		"state":      "WB",
		"postalCode": "700016",
		"dob":        "14-04-1990",
		"ssn":        "1234",
		"email":      "siddhartha@mail.com",
		"password":   "secret12",
	}
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
