package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voyage/internal/types"
)

func TestCleanJSONString(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSONString("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSONString("  {\"a\":1} "))
}

func TestDecodeStructured_Weather(t *testing.T) {
	raw := "```json\n{\"is_favorable\": false, \"summary\": \"wet\", \"concerns\": [\"heavy rain\"], \"recommendations\": \"pack\"}\n```"

	var got WeatherAssessment
	require.NoError(t, decodeStructured(raw, WeatherAssessmentSchema, &got))
	assert.False(t, got.IsFavorable)
	assert.Equal(t, []string{"heavy rain"}, got.Concerns)
}

func TestDecodeStructured_MissingField(t *testing.T) {
	var got WeatherAssessment
	err := decodeStructured(`{"summary": "ok"}`, WeatherAssessmentSchema, &got)
	require.ErrorIs(t, err, types.ErrParse)
	assert.Contains(t, err.Error(), "is_favorable")
}

func TestDecodeStructured_NotJSON(t *testing.T) {
	var got AlternateDestinations
	err := decodeStructured("sorry, I cannot help", AlternateDestinationsSchema, &got)
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestDecodeStructured_WrongType(t *testing.T) {
	var got AlternateDestinations
	err := decodeStructured(`{"destinations": "goa", "reasons": []}`, AlternateDestinationsSchema, &got)
	assert.ErrorIs(t, err, types.ErrParse)
}

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(AlternateDestinationsSchema)
	require.NotNil(t, s)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, genai.TypeArray, s.Properties["destinations"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["destinations"].Items.Type)
	assert.ElementsMatch(t, []string{"destinations", "reasons"}, s.Required)
}

func TestSchemaExample(t *testing.T) {
	ex := WeatherAssessmentSchema.Example()
	assert.Contains(t, ex, `"is_favorable": <boolean`)
	assert.Contains(t, ex, `"concerns": [<string>, ...]`)
}

func TestOpenAIProvider_GenerateStructured(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"destinations\":[\"goa\",\"jaipur\"],\"reasons\":[\"dry\",\"sunny\"]}"}}]}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "")
	require.NoError(t, err)
	p.endpoint = srv.URL

	var out AlternateDestinations
	require.NoError(t, p.GenerateStructured(context.Background(), "suggest", AlternateDestinationsSchema, &out))
	assert.Equal(t, []string{"goa", "jaipur"}, out.Destinations)
	require.NotNil(t, gotReq.ResponseFormat)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
	assert.Contains(t, gotReq.Messages[0].Content, `"destinations"`)
}

func TestOpenAIProvider_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "")
	require.NoError(t, err)
	p.endpoint = srv.URL

	_, err = p.GenerateText(context.Background(), "hi")
	require.ErrorIs(t, err, types.ErrUpstream)
	assert.Contains(t, err.Error(), "bad key")
}

func TestOpenAIProvider_StatusWithoutErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	p, err := NewOpenAIProvider("sk-test", "")
	require.NoError(t, err)
	p.endpoint = srv.URL

	_, err = p.GenerateText(context.Background(), "hi")
	require.ErrorIs(t, err, types.ErrUpstream)
	assert.Contains(t, err.Error(), "status 502")
	assert.NotContains(t, err.Error(), "empty choices")
}

func TestNewProviders_EmptyKey(t *testing.T) {
	_, err := NewOpenAIProvider(" ", "")
	assert.ErrorIs(t, err, types.ErrConfig)

	_, err = NewGeminiProvider(context.Background(), "", "")
	assert.ErrorIs(t, err, types.ErrConfig)
}
