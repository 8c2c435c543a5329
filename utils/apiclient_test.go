package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docmindhq/docmind-be/types"
)

func TestNewAPIClientRequiresBaseURL(t *testing.T) {
	_, err := NewAPIClient("", nil)
	require.Error(t, err)
	var cfgErr *types.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestGetJoinsPathsAndMergesHeaders(t *testing.T) {
	var gotPath, gotDefault, gotExtra, gotOverride string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDefault = r.Header.Get("x-api-key")
		gotExtra = r.Header.Get("X-Request-Id")
		gotOverride = r.Header.Get("Accept")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client, err := NewAPIClient(srv.URL+"/", map[string]string{
		"x-api-key": "secret",
		"Accept":    "application/json",
	})
	require.NoError(t, err)

	body, err := client.Get(context.Background(), "/v1/things", nil, map[string]string{
		"X-Request-Id": "req-1",
		"Accept":       "application/pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/things", gotPath)
	assert.Equal(t, "secret", gotDefault)
	assert.Equal(t, "req-1", gotExtra)
	assert.Equal(t, "application/pdf", gotOverride, "per-call headers win on conflict")
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestGetEncodesQueryParams(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewAPIClient(srv.URL, nil)
	require.NoError(t, err)

	params := url.Values{}
	params.Set("q", "hello world")
	_, err = client.Get(context.Background(), "search", params, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", gotQuery.Get("q"))
}

func TestNonSuccessStatusReturnsRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	client, err := NewAPIClient(srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Get(context.Background(), "/x", nil, nil)
	require.Error(t, err)

	var reqErr *types.RequestFailedError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
	assert.Equal(t, "upstream exploded", reqErr.Body)
}

func TestPostJSONRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		json.NewEncoder(w).Encode(map[string]string{"echo": in["msg"]})
	}))
	defer srv.Close()

	client, err := NewAPIClient(srv.URL, nil)
	require.NoError(t, err)

	var out map[string]string
	err = client.PostJSON(context.Background(), "/echo", map[string]string{"msg": "hi"}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "hi", out["echo"])
}

func TestPostMultipartSendsFieldsAndFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "doc-1", r.FormValue("documentId"))

		file, header, err := r.FormFile("file1")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-fake"), content)

		w.Write([]byte(`{"documentId":"doc-1"}`))
	}))
	defer srv.Close()

	client, err := NewAPIClient(srv.URL, nil)
	require.NoError(t, err)

	var out map[string]string
	err = client.PostMultipart(context.Background(), "/upload",
		map[string]string{"documentId": "doc-1"},
		[]FilePart{{FieldName: "file1", FileName: "report.pdf", Data: []byte("%PDF-fake")}},
		nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", out["documentId"])
}
