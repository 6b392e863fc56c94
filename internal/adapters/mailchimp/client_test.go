package mailchimp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conferencesite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequest() domain.SubscribeRequest {
	return domain.SubscribeRequest{
		Email:       "ivan@example.com",
		MergeFields: map[string]string{"FNAME": "Ivan", "LNAME": "Petrov"},
	}
}

func TestClient_Subscribe(t *testing.T) {
	var (
		gotPath   string
		gotUser   string
		gotPass   string
		gotMember memberRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMember))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "abc", "status": "subscribed"}`))
	}))
	defer server.Close()

	c := NewClient(Config{APIKey: "key-us6", BaseURL: server.URL + "/3.0/"}, server.Client())
	require.NoError(t, c.Subscribe(context.Background(), "list 1", testRequest()))

	assert.Equal(t, "/3.0/lists/list 1/members", gotPath)
	assert.Equal(t, "apikey", gotUser)
	assert.Equal(t, "key-us6", gotPass)
	assert.Equal(t, "ivan@example.com", gotMember.EmailAddress)
	assert.Equal(t, "subscribed", gotMember.Status)
	assert.Equal(t, "Ivan", gotMember.MergeFields["FNAME"])
}

func TestClient_Subscribe_DoubleOptIn(t *testing.T) {
	var gotMember memberRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotMember)
	}))
	defer server.Close()

	req := testRequest()
	req.DoubleOptIn = true
	c := NewClient(Config{APIKey: "key-us6", BaseURL: server.URL}, nil)
	require.NoError(t, c.Subscribe(context.Background(), "l", req))
	assert.Equal(t, "pending", gotMember.Status)
}

func TestClient_Subscribe_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"member exists", http.StatusBadRequest, `{"title": "Member Exists", "status": 400, "detail": "ivan@example.com is already a list member."}`, domain.ErrAlreadySubscribed},
		{"invalid resource", http.StatusBadRequest, `{"title": "Invalid Resource", "status": 400}`, domain.ErrMailingList},
		{"unauthorized", http.StatusUnauthorized, `{"title": "API Key Invalid", "status": 401}`, domain.ErrMailingList},
		{"throttled", http.StatusTooManyRequests, `{"title": "Too Many Requests", "status": 429}`, domain.ErrMailingListUnavailable},
		{"server error", http.StatusInternalServerError, `not json`, domain.ErrMailingListUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/problem+json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(Config{APIKey: "key-us6", BaseURL: server.URL}, server.Client())
			err := c.Subscribe(context.Background(), "l", testRequest())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Subscribe_MemberExistsIsNotTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"title": "Member Exists"}`))
	}))
	defer server.Close()

	err := NewClient(Config{APIKey: "k-us1", BaseURL: server.URL}, nil).Subscribe(context.Background(), "l", testRequest())
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	assert.NotErrorIs(t, err, domain.ErrMailingListUnavailable)
}

func TestClient_Subscribe_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	err := NewClient(Config{APIKey: "k-us1", BaseURL: url}, nil).Subscribe(context.Background(), "l", testRequest())
	assert.ErrorIs(t, err, domain.ErrMailingListUnavailable)
}

func TestClient_Subscribe_ContextDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := NewClient(Config{APIKey: "k-us1", BaseURL: server.URL}, nil).Subscribe(ctx, "l", testRequest())
	assert.ErrorIs(t, err, domain.ErrMailingListUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Subscribe_NotConfigured(t *testing.T) {
	err := NewClient(Config{}, nil).Subscribe(context.Background(), "l", testRequest())
	assert.ErrorIs(t, err, domain.ErrMailingList)

	err = NewClient(Config{APIKey: "k-us1"}, nil).Subscribe(context.Background(), "", testRequest())
	assert.ErrorIs(t, err, domain.ErrMailingList)

	err = NewClient(Config{APIKey: "nodatacenter"}, nil).Subscribe(context.Background(), "l", testRequest())
	assert.ErrorIs(t, err, domain.ErrMailingList)
}

func TestBaseURLForKey(t *testing.T) {
	got, err := BaseURLForKey("0123456789abcdef-us6")
	require.NoError(t, err)
	assert.Equal(t, "https://us6.api.mailchimp.com/3.0", got)

	for _, key := range []string{"", "abc", "abc-", "abc-US6", "abc-us6.evil.com/x"} {
		_, err := BaseURLForKey(key)
		assert.Error(t, err, key)
	}
}
