package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownAndUnknownCodes(t *testing.T) {
	meta := MetadataFor(CodePercentageOutOfRange)
	if meta.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400 for percentage out of range, got %d", meta.HTTPStatus)
	}
	if !meta.DetailsAllowed {
		t.Fatal("validation kinds should allow details")
	}

	meta = MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown codes should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestBackendFailuresAreRetryable(t *testing.T) {
	for _, code := range []Code{CodeFetchFailed, CodeCreateFailed, CodeUpdateFailed, CodeDeleteFailed, CodeToggleFailed} {
		if !MetadataFor(code).Retryable {
			t.Fatalf("expected %s to be retryable", code)
		}
	}
	if MetadataFor(CodeNotFound).Retryable {
		t.Fatal("not found should not be retryable")
	}
}

func TestIsValidationCode(t *testing.T) {
	for _, code := range []Code{CodeInvalidQuantity, CodeMissingValue, CodePercentageOutOfRange, CodeNegativeValue, CodeValidation} {
		if !IsValidationCode(code) {
			t.Fatalf("expected %s to be a validation code", code)
		}
	}
	if IsValidationCode(CodeFetchFailed) {
		t.Fatal("fetch failure is not a validation code")
	}
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	base := New(CodeNotFound, "rule gone")
	wrapped := fmt.Errorf("while deleting: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error through wrap chain")
	}
	if typed.Code() != CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", typed.Code())
	}
	if !Is(wrapped, CodeNotFound) {
		t.Fatal("Is should match through the chain")
	}
}

type fakeStatusErr struct{ status int }

func (f *fakeStatusErr) Error() string   { return fmt.Sprintf("backend status %d", f.status) }
func (f *fakeStatusErr) StatusCode() int { return f.status }

func TestDumpCarriesUpstreamStatus(t *testing.T) {
	cause := &fakeStatusErr{status: 503}
	err := Wrap(CodeFetchFailed, cause, "list rules")

	dump := Dump(err)
	if dump.Code != CodeFetchFailed {
		t.Fatalf("expected FETCH_FAILED, got %s", dump.Code)
	}
	if dump.UpstreamStatus != 503 {
		t.Fatalf("expected upstream status 503, got %d", dump.UpstreamStatus)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected full chain in dump, got %v", dump.Chain)
	}
}

func TestDumpNilError(t *testing.T) {
	if dump := Dump(nil); dump.TopMessage != "" || dump.Code != "" {
		t.Fatalf("expected empty dump for nil error, got %+v", dump)
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors should not convert")
	}
}
