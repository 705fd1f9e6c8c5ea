package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpupo63/devprojects-api/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithPayload(t *testing.T, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	p, err := readPayload(req)
	require.NoError(t, err)
	return req.WithContext(ctxWithPayload(req.Context(), p))
}

func TestReadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		keys []string
	}{
		{"empty body", "", []string{}},
		{"whitespace", "  \n", []string{}},
		{"null", "null", []string{}},
		{"object", `{"b":1,"a":"x"}`, []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := readPayload(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))
			require.NoError(t, err)
			assert.Equal(t, tt.keys, p.Keys())
		})
	}
}

func TestReadPayload_Rejects(t *testing.T) {
	for _, body := range []string{`{"a":`, `[1,2]`, `"text"`} {
		_, err := readPayload(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
		assert.True(t, errs.IsInvalidJSONError(err), body)
	}
}

func TestPayloadAccessors(t *testing.T) {
	req := requestWithPayload(t, `{"name":"Ana","developerId":4,"ratio":1.5,"endDate":null}`)
	p := ctxGetPayload(req.Context())

	assert.True(t, p.IsNull("endDate"))
	assert.False(t, p.IsNull("name"))
	assert.False(t, p.IsNull("absent"))

	name, ok := p.String("name")
	assert.True(t, ok)
	assert.Equal(t, "Ana", name)

	_, ok = p.String("developerId")
	assert.False(t, ok)

	id, ok := p.Int64("developerId")
	assert.True(t, ok)
	assert.Equal(t, int64(4), id)

	_, ok = p.Int64("ratio")
	assert.False(t, ok)

	assert.Equal(t, []string{"email"}, p.Missing([]string{"name", "email"}))
	assert.Equal(t, []string{"developerId", "endDate", "ratio"}, p.Unknown([]string{"name"}))

	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, p.Decode(&dst))
	assert.Equal(t, "Ana", dst.Name)

	var wrong struct {
		Name int `json:"name"`
	}
	assert.True(t, errs.IsMalformedPayloadError(p.Decode(&wrong)))
}

func TestValidationGuards(t *testing.T) {
	keys := []string{"name", "email"}

	tests := []struct {
		name  string
		guard guard
		body  string
		check func(error) bool
	}{
		{"required present", requireFields(keys), `{"name":"a","email":"b"}`, nil},
		{"required missing", requireFields(keys), `{"name":"a"}`, errs.IsMissingRequiredFieldError},
		{"unknown rejected", rejectUnknownFields(keys), `{"name":"a","age":1}`, errs.IsUnknownFieldError},
		{"same count but wrong key", rejectUnknownFields(keys), `{"name":"a","mail":"b"}`, errs.IsUnknownFieldError},
		{"empty patch", rejectUnknownFields(keys), `{}`, errs.IsMissingRequiredFieldError},
		{"subset accepted", rejectUnknownFields(keys), `{"email":"b"}`, nil},
		{"any field present", requireAnyField(keys), `{"email":"b","extra":1}`, nil},
		{"no known field", requireAnyField(keys), `{"extra":1}`, errs.IsMissingRequiredFieldError},
		{"enum absent", requireEnum("os", "OS", []string{"Linux"}), `{}`, nil},
		{"enum valid", requireEnum("os", "OS", []string{"Linux"}), `{"os":"Linux"}`, nil},
		{"enum invalid", requireEnum("os", "OS", []string{"Linux"}), `{"os":"BeOS"}`, errs.IsInvalidFieldError},
		{"enum not a string", requireEnum("os", "OS", []string{"Linux"}), `{"os":1}`, errs.IsInvalidFieldError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.guard(requestWithPayload(t, tt.body))
			if tt.check == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestGuarded_StopsAtFirstRejection(t *testing.T) {
	var calls []string
	pass := func(name string) guard {
		return func(*http.Request) error {
			calls = append(calls, name)
			return nil
		}
	}
	reject := func(*http.Request) error {
		calls = append(calls, "reject")
		return errs.NewNotFound("Developer")
	}
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, "handler")
	}

	h := guarded(NewResponder(zerolog.Nop()), handler, pass("first"), reject, pass("never"))
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "reject"}, calls)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Developer not found"}`, rec.Body.String())
}

func TestResponder_WriteError(t *testing.T) {
	responder := NewResponder(zerolog.Nop())

	rec := httptest.NewRecorder()
	responder.WriteError(rec, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	responder.WriteError(rec, errs.NewDatabaseError("find", "developer", errors.New("connection refused")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"database query failed"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	responder.WriteError(rec, errs.NewUnknownFieldsError([]string{"name"}, []string{"age"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Allowed keys are name","details":"unexpected keys: age"}`, rec.Body.String())
}

func TestTransactionError(t *testing.T) {
	notFound := errs.NewNotFound("Developer")
	assert.Same(t, notFound, transactionError("delete developer", notFound))

	err := transactionError("delete developer", errors.New("commit failed"))
	assert.True(t, errs.IsTransactionFailedError(err))

	rec := httptest.NewRecorder()
	NewResponder(zerolog.Nop()).WriteError(rec, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"transaction failed","field":"transaction"}`, rec.Body.String())
}
