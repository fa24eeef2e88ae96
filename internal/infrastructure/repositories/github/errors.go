package github

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/autolicense/internal/domain/entities"
)

// translateError maps a go-github failure onto the domain error taxonomy.
func translateError(op string, resp *gh.Response, err error) error {
	if err == nil {
		return nil
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return entities.NewStatusError(op, errResp.Response.StatusCode, errorBody(errResp.Message, errResp.Response))
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return entities.NewStatusError(op, rateErr.Response.StatusCode, errorBody(rateErr.Message, rateErr.Response))
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return entities.NewStatusError(op, abuseErr.Response.StatusCode, errorBody(abuseErr.Message, abuseErr.Response))
	}

	if resp != nil && resp.Response != nil {
		// a successful status with an error means the body could not be decoded
		if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
			return &entities.ParseError{Op: op, Field: "body", Err: err}
		}
		return entities.NewStatusError(op, resp.StatusCode, err.Error())
	}

	return &entities.NetworkError{Op: op, Err: err}
}

// errorBody returns the raw response body, which go-github puts back after
// decoding an error. The parsed message is the fallback when it is empty.
func errorBody(message string, resp *http.Response) string {
	if resp.Body != nil {
		data, err := io.ReadAll(resp.Body)
		resp.Body = io.NopCloser(bytes.NewReader(data))
		if err == nil && len(bytes.TrimSpace(data)) > 0 {
			return string(data)
		}
	}
	if message != "" {
		return message
	}
	return http.StatusText(resp.StatusCode)
}
