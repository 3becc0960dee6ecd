package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/daie-pos/services"
)

func rawBody(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestParseOrderPatch_OnlyPresentKeys(t *testing.T) {
	p, err := parseOrderPatch(rawBody(t, `{"nota": "sin sal", "mesa": null, "version": 3, "unknown": true}`))
	require.NoError(t, err)

	assert.True(t, p.Note.Set)
	assert.Equal(t, "sin sal", *p.Note.Value)
	assert.True(t, p.TableID.Set)
	assert.Nil(t, p.TableID.Value)
	assert.True(t, p.Version.Set)
	assert.Equal(t, uint(3), p.Version.Value)

	assert.False(t, p.ClientID.Set)
	assert.False(t, p.WaiterID.Set)
	assert.False(t, p.Status.Set)
	assert.False(t, p.PaymentMethod.Set)
	assert.False(t, p.PaymentReference.Set)
}

func TestParseOrderPatch_Rejects(t *testing.T) {
	for _, body := range []string{
		`{"total": "10.00"}`,
		`{"vuelto": "0"}`,
		`{"cliente_id": null}`,
		`{"mesero_id": "two"}`,
		`{"estado": 7}`,
	} {
		_, err := parseOrderPatch(rawBody(t, body))
		assert.Error(t, err, body)
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[error]int{
		services.ErrNotFound:            http.StatusNotFound,
		services.ErrInvalid:             http.StatusBadRequest,
		services.ErrInsufficientPayment: http.StatusBadRequest,
		services.ErrInvalidState:        http.StatusConflict,
		services.ErrConflict:            http.StatusConflict,
		services.ErrStorage:             http.StatusInternalServerError,
		errors.New("boom"):              http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, statusFor(err), err.Error())
	}
}
