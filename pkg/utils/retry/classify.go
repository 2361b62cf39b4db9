package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
)

// Status codes for which retrying cannot succeed. Everything else
// (network errors, 5xx, rate limits, timeouts) is considered transient.
var terminalCodes = map[int]struct{}{
	http.StatusUnauthorized:        {},
	http.StatusNotFound:            {},
	http.StatusUnprocessableEntity: {},
}

// ClassifiedError is the outcome of classifying a failed remote call
type ClassifiedError struct {
	Terminal   bool   // Retrying cannot succeed
	StatusCode int    // Transport status code, 0 when unknown
	Code       string // Raw error code as reported by the service
	Message    string // Human-readable composite message
}

func (e *ClassifiedError) Error() string {
	return e.Message
}

// Classify inspects err and decides whether the failed call is worth
// retrying, extracting a human-readable message along the way. It never
// fails; an unrecognized error is classified as retryable with its own
// message.
func Classify(ctx context.Context, err error) *ClassifiedError {
	logger := ctxlog.From(ctx)

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &ClassifiedError{
			Terminal:   false,
			StatusCode: http.StatusForbidden,
			Code:       strconv.Itoa(http.StatusForbidden),
			Message:    collapse(rateErr.Message),
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &ClassifiedError{
			Terminal:   false,
			StatusCode: http.StatusForbidden,
			Code:       strconv.Itoa(http.StatusForbidden),
			Message:    collapse(abuseErr.Message),
		}
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}
		_, terminal := terminalCodes[status]
		ce := &ClassifiedError{
			Terminal:   terminal,
			StatusCode: status,
			Code:       strconv.Itoa(status),
		}

		if ghErr.Message == "" {
			// The response body was not a structured error document; the
			// transport error's own message is the best we have.
			logger.Debug("remote error body is not structured, using raw message",
				"status", status,
				"error", err,
			)
			ce.Message = collapse(err.Error())
			return ce
		}

		ce.Message = formatStructured(ce.Code, status, ghErr.Message, ghErr.Errors)
		return ce
	}

	// Network-level failures and anything else the transport surfaces
	// without a status code.
	return &ClassifiedError{
		Terminal: false,
		Message:  collapse(err.Error()),
	}
}

// formatStructured renders `<code> <status>: <message> (<sub-codes>)`,
// omitting the parenthesized list when there are no sub-errors.
func formatStructured(code string, status int, message string, subErrors []github.Error) string {
	msg := fmt.Sprintf("%s %d: %s", code, status, collapse(message))
	if len(subErrors) == 0 {
		return msg
	}

	codes := make([]string, 0, len(subErrors))
	for _, e := range subErrors {
		codes = append(codes, e.Code)
	}
	return fmt.Sprintf("%s (%s)", msg, strings.Join(codes, ", "))
}

func collapse(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
