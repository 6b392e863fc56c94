package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, http.StatusNotFound, ErrCodeNotFound, "event not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestParseRegistrationForm(t *testing.T) {
	form := url.Values{
		"regform_email":     {"ivan@example.com"},
		"regform_firstName": {"Ivan"},
		"regform_lastName":  {"Petrov"},
		"regform_twitter":   {"ivan"},
		"email":             {"ignored@example.com"},
	}
	req := httptest.NewRequest(http.MethodPost, "/events/e/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	sub, err := ParseRegistrationForm(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", sub.Email)
	assert.Equal(t, "Ivan", sub.FirstName)
	assert.Equal(t, "Petrov", sub.LastName)
	assert.Equal(t, "ivan", sub.Twitter)
	assert.Empty(t, sub.Company)
}

func TestFlash(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, "Спасибо, ваша заявка принята", false)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/events/e/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	msg, ok := PopFlash(rec, req)
	assert.True(t, ok)
	assert.Equal(t, "Спасибо, ваша заявка принята", msg)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)

	_, ok = PopFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}
