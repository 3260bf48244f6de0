package pkgerror

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestTypeString(t *testing.T) {
	if got := TypeBusiness.String(); got != "ERROR_TYPE_BUSINESS" {
		t.Fatalf("unexpected business string: %q", got)
	}
	if got := TypeServer.String(); got != "ERROR_TYPE_SERVER" {
		t.Fatalf("unexpected server string: %q", got)
	}
	if got := Type(99).String(); got != "ERROR_TYPE_UNKNOWN" {
		t.Fatalf("unexpected unknown type string: %q", got)
	}
}

func TestCodeString(t *testing.T) {
	if got := CodeNoData.String(); got != "ERROR_CODE_NO_DATA" {
		t.Fatalf("unexpected no data string: %q", got)
	}
	if got := CodeTooManyRequests.String(); got != "ERROR_CODE_TOO_MANY_REQUESTS" {
		t.Fatalf("unexpected too many requests string: %q", got)
	}
	if got := CodeInternal.String(); got != "ERROR_CODE_INTERNAL" {
		t.Fatalf("unexpected internal string: %q", got)
	}
	if got := Code(99).String(); got != "ERROR_CODE_INTERNAL" {
		t.Fatalf("unexpected default code string: %q", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	root := errors.New("boom")
	err := NewServerMsg(root, "Internal server error")
	gerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !errors.Is(err, root) {
		t.Fatalf("expected wrapped error")
	}
	if got := gerr.Msg(); got != "Internal server error" {
		t.Fatalf("unexpected msg: %q", got)
	}
	if got := gerr.Type(); got != TypeServer {
		t.Fatalf("unexpected type: %v", got)
	}
	if got := gerr.Code(); got != CodeInternal {
		t.Fatalf("unexpected code: %v", got)
	}
	if got := gerr.Error(); got != "boom" {
		t.Fatalf("unexpected error string: %q", got)
	}
	if got := gerr.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", got)
	}
}

func TestBusinessErrors(t *testing.T) {
	biz := NewBusiness("No valid JSON data found", CodeNoData).(*Error)
	if got := biz.Error(); got != "No valid JSON data found" {
		t.Fatalf("unexpected business error: %q", got)
	}
	if got := biz.StatusCode(); got != http.StatusBadRequest {
		t.Fatalf("unexpected business status: %d", got)
	}
	if errors.Unwrap(biz) != nil {
		t.Fatalf("business error must not wrap anything")
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	business := new(nil, "", TypeBusiness, CodeInternal).(*Error)
	if got := business.Error(); got != "Logical business not meet with requirement" {
		t.Fatalf("unexpected business fallback: %q", got)
	}

	server := new(nil, "", TypeServer, CodeInternal).(*Error)
	if got := server.Error(); got != "Internal error" {
		t.Fatalf("unexpected server fallback: %q", got)
	}
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := NewBusiness("message", CodeTooManyRequests).(*Error)
	str := err.String()
	if !strings.Contains(str, "ERROR_TYPE_BUSINESS") {
		t.Fatalf("expected error type in string: %q", str)
	}
	if !strings.Contains(str, "ERROR_CODE_TOO_MANY_REQUESTS") {
		t.Fatalf("expected error code in string: %q", str)
	}
	if !strings.Contains(str, "message") {
		t.Fatalf("expected message in string: %q", str)
	}
}

func TestServerMsgAndIsCode(t *testing.T) {
	root := errors.New("disk full")
	err := NewServerMsg(root, "An error occurred during summary report generation")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if got := gerr.Msg(); got != "An error occurred during summary report generation" {
		t.Fatalf("unexpected msg: %q", got)
	}
	if got := gerr.StatusCode(); got != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", got)
	}
	if !IsCode(err, CodeInternal) {
		t.Fatalf("expected internal code")
	}
	if IsCode(root, CodeInternal) {
		t.Fatalf("plain error must not match a code")
	}

	limited := NewBusiness("too many requests", CodeTooManyRequests).(*Error)
	if got := limited.StatusCode(); got != http.StatusTooManyRequests {
		t.Fatalf("unexpected too many requests status: %d", got)
	}
}
