package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/payquery/payquery/internal/query"
)

func zeroBackOff() backoff.BackOff { return &backoff.ZeroBackOff{} }

func newTestClient(url string, opts ...Option) *Client {
	return New(url, "tok-123", append([]Option{WithBackOff(zeroBackOff)}, opts...)...)
}

func TestNew(t *testing.T) {
	c := New("https://api-sandbox.payabli.com/", "tok")
	assert.Equal(t, "https://api-sandbox.payabli.com", c.BaseURL)
	assert.Equal(t, "tok", c.Token)
	assert.Equal(t, defaultTimeout, c.HTTPClient.Timeout)
	assert.Equal(t, defaultRetries, c.retries)

	hc := &http.Client{}
	c = New("x", "tok", WithHTTPClient(hc), WithTimeout(5*time.Second), WithRetries(0), WithUserAgent("pq/test"))
	assert.Same(t, hc, c.HTTPClient)
	assert.Equal(t, 5*time.Second, hc.Timeout)
	assert.Equal(t, 0, c.retries)
	assert.Equal(t, "pq/test", c.UserAgent)

	c = New("x", "tok", WithRetries(-2))
	assert.Equal(t, defaultRetries, c.retries, "negative retries are ignored")
}

func TestURL(t *testing.T) {
	c := New("https://api-qa.payabli.com", "tok")
	params := []query.Param{{Key: "status(eq)", Value: "paid"}, {Key: "limitRecord", Value: "5"}}

	assert.Equal(t,
		"https://api-qa.payabli.com/api/Query/transactions/acme/?status%28eq%29=paid&limitRecord=5",
		c.URL([]string{"transactions", "acme"}, params))
	assert.Equal(t,
		"https://api-qa.payabli.com/api/Query/batches/org/7/",
		c.URL([]string{"batches", "org", "7"}, nil))
}

func TestQuery(t *testing.T) {
	var gotPath, gotQuery, gotToken, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotToken = r.Header.Get(TokenHeader)
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Records":[{"id":1},{"id":2}],"Summary":{"totalRecords":2}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	params := []query.Param{
		{Key: "totalAmount(gt)", Value: "100"},
		{Key: "method(eq)", Value: "card"},
		{Key: "limitRecord", Value: "2"},
	}
	resp, err := c.Query(context.Background(), []string{"transactions", "acme01"}, params)
	require.NoError(t, err)

	assert.Equal(t, "/api/Query/transactions/acme01/", gotPath)
	assert.Equal(t, "totalAmount%28gt%29=100&method%28eq%29=card&limitRecord=2", gotQuery, "params keep their order")
	assert.Equal(t, "tok-123", gotToken)
	assert.Equal(t, "application/json", gotAccept)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "200 OK", resp.Status)
	assert.Equal(t, 1, resp.Attempts)

	recs, err := resp.Records()
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestQuery_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.WriteHeader(http.StatusServiceUnavailable)
		case 2:
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_, _ = w.Write([]byte(`{"Records":[]}`))
		}
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).Query(context.Background(), []string{"payouts", "ep"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 3, resp.Attempts)
}

func TestQuery_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, WithRetries(2)).Query(context.Background(), []string{"x"}, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
	assert.Contains(t, se.Error(), "upstream down")
	assert.Equal(t, int32(3), calls.Load(), "one attempt plus two retries")
}

func TestQuery_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"responseText":"Invalid filter"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Query(context.Background(), []string{"x"}, nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "400 Bad Request", se.Status)
	assert.False(t, se.Temporary())
	assert.Equal(t, `API returned 400 Bad Request: {"responseText":"Invalid filter"}`, se.Error())
	assert.Equal(t, int32(1), calls.Load())
}

func TestQuery_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(srv.URL).Query(ctx, []string{"x"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestQuery_MissingToken(t *testing.T) {
	_, err := New("http://127.0.0.1:1", "").Query(context.Background(), nil, nil)
	assert.ErrorContains(t, err, "token")
}

func TestResponseRecords_NoEnvelope(t *testing.T) {
	r := &Response{Body: []byte(`{"responseText":"ok"}`)}
	_, err := r.Records()
	assert.EqualError(t, err, "response has no Records array")
}

func TestStatusError(t *testing.T) {
	assert.True(t, (&StatusError{StatusCode: 500}).Temporary())
	assert.True(t, (&StatusError{StatusCode: 429}).Temporary())
	assert.False(t, (&StatusError{StatusCode: 404}).Temporary())

	assert.Equal(t, "API returned 502 Bad Gateway", (&StatusError{Status: "502 Bad Gateway"}).Error())

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	msg := (&StatusError{Status: "500 Internal Server Error", Body: long}).Error()
	assert.Less(t, len(msg), 600)
	assert.Contains(t, msg, "...")
}
