package baseclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	response := NewResponse([]byte(`{"id":1,"tags":["a"]}`), 200)
	assert.True(t, response.OK())

	actual, err := response.JSON()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"id": float64(1), "tags": []interface{}{"a"}}, actual)

	target := struct {
		ID int `json:"id"`
	}{}
	require.NoError(t, response.Decode(&target))
	assert.Equal(t, 1, target.ID)
	assert.Equal(t, `Response{status=200 body={"id":1,"tags":["a"]}}`, response.String())

	empty := NewResponse(nil, 204)
	actual, err = empty.JSON()
	assert.NoError(t, err)
	assert.Nil(t, actual)

	broken := NewResponse([]byte("<html>"), 502)
	assert.False(t, broken.OK())
	_, err = broken.JSON()
	assert.ErrorIs(t, err, ErrDeserialize)
	assert.ErrorIs(t, broken.Decode(&target), ErrDeserialize)
}

type money struct {
	Amount   int
	Currency string
}

func (m *money) ToJSON() interface{} {
	return map[string]interface{}{"amount": m.Amount, "currency": m.Currency}
}

func TestAsJSON(t *testing.T) {
	assert.Equal(t, map[string]interface{}{"amount": 5, "currency": "USD"}, AsJSON(&money{Amount: 5, Currency: "USD"}))
	assert.Equal(t, "plain", AsJSON("plain"))
	assert.Nil(t, AsJSON(nil))
}
