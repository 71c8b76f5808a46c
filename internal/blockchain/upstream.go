package blockchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/chainsearch/chainsearch/internal/apperr"
)

// DefaultBaseURL is the explorer root every handler derives its endpoints from.
const DefaultBaseURL = "https://api.blockchain.info"

// resource describes the thing being fetched so that failures can name it.
type resource struct {
	notFound string
	failure  string
}

func addressTransactionsResource(address string) resource {
	return resource{
		notFound: fmt.Sprintf("Address '%s' does not exist.", address),
		failure:  fmt.Sprintf("Failed to retrieve data for address '%s'", address),
	}
}

func transactionResource(tx string) resource {
	return resource{
		notFound: fmt.Sprintf("Transaction '%s' does not exist.", tx),
		failure:  fmt.Sprintf("Failed to retrieve data for transaction '%s'", tx),
	}
}

func balanceResource(address string) resource {
	return resource{
		notFound: fmt.Sprintf("Address '%s' does not exist.", address),
		failure:  fmt.Sprintf("Failed to retrieve balance for address '%s'", address),
	}
}

// upstream issues the single outbound GET of each operation.
type upstream struct {
	httpClient *http.Client
}

// getJSON fetches endpoint and decodes a 200 body into out. 404 becomes
// NotFound, any other status or a transport error becomes UpstreamFailure.
func (u upstream) getJSON(ctx context.Context, endpoint string, params url.Values, res resource, out any) error {
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperr.Wrap(apperr.ErrUpstreamFailure, err, "%s", res.failure)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return apperr.Wrap(apperr.ErrUpstreamFailure, err, "%s", res.failure)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return apperr.New(apperr.ErrNotFound, "%s", res.notFound)
	default:
		return apperr.Wrap(apperr.ErrUpstreamFailure, fmt.Errorf("status %d", resp.StatusCode), "%s", res.failure)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return apperr.Wrap(apperr.ErrSchemaValidation, err, "unexpected payload shape")
		}
		return apperr.Wrap(apperr.ErrUpstreamFailure, err, "%s", res.failure)
	}
	return nil
}

func join(base string, segments ...string) string {
	escaped := make([]string, 0, len(segments)+1)
	escaped = append(escaped, strings.TrimRight(base, "/"))
	for _, s := range segments {
		escaped = append(escaped, url.PathEscape(s))
	}
	return strings.Join(escaped, "/")
}

// numeric holds a JSON value that explorers send either as a quoted string or
// as a bare number.
type numeric string

func (n *numeric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = numeric(s)
		return nil
	}
	*n = numeric(b)
	return nil
}
