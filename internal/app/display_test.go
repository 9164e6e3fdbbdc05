package app

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/opttab/opttab-go/pkg/opttab"
)

func TestDescribeErrorHTTP(t *testing.T) {
	var buf bytes.Buffer
	err := fmt.Errorf("create: %w", &opttab.HTTPError{StatusCode: 401, Body: []byte(`{"message":"Invalid API key"}`)})
	DescribeError(&buf, err)

	want := "API Error: 401\nResponse: {\"message\":\"Invalid API key\"}\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestDescribeErrorGeneric(t *testing.T) {
	var buf bytes.Buffer
	DescribeError(&buf, errors.New("dial tcp: no such host"))
	if buf.String() != "Error: dial tcp: no such host\n" {
		t.Fatalf("got %q", buf.String())
	}

	buf.Reset()
	DescribeError(&buf, nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error should print nothing")
	}
}

func TestPrintJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]any{"a": "<b>"}); err != nil {
		t.Fatalf("PrintJSON: %v", err)
	}
	if buf.String() != "{\n  \"a\": \"<b>\"\n}\n" {
		t.Fatalf("got %q", buf.String())
	}
}
