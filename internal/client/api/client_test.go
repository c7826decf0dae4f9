package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(ctx context.Context) (string, error) { return s.token, s.err }

func newClient(t *testing.T, handler http.Handler, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/api", tokens, 5*time.Second)
	require.NoError(t, err)
	return c
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotReqID string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	})

	c := newClient(t, h, staticTokens{token: "t1"})
	require.NoError(t, c.Get(context.Background(), "/videos/public", nil, nil))

	assert.Equal(t, "Bearer t1", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestClient_NoTokenProceedsUnauthenticated(t *testing.T) {
	var gotAuth string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	})

	c := newClient(t, h, staticTokens{token: ""})
	require.NoError(t, c.Get(context.Background(), "/videos/public", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClient_KeepsBasePathPrefix(t *testing.T) {
	var gotPath string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})

	c := newClient(t, h, nil)
	require.NoError(t, c.Get(context.Background(), "/videos/5", nil, nil))
	assert.Equal(t, "/api/videos/5", gotPath)
}

func TestClient_QueryParams(t *testing.T) {
	var gotQuery url.Values
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	})

	c := newClient(t, h, nil)
	params := url.Values{}
	params.Set("page", "0")
	params.Set("size", "12")
	require.NoError(t, c.Get(context.Background(), "/videos/public", params, nil))

	assert.Equal(t, "0", gotQuery.Get("page"))
	assert.Equal(t, "12", gotQuery.Get("size"))
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{401, KindAuth},
		{403, KindAuth},
		{404, KindNotFound},
		{400, KindValidation},
		{422, KindValidation},
		{500, KindServer},
		{503, KindServer},
	}

	for _, tc := range tests {
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"message":"nope"}`))
		})
		c := newClient(t, h, nil)

		err := c.Get(context.Background(), "/videos/1", nil, nil)
		require.Error(t, err)
		assert.True(t, IsKind(err, tc.kind), "status %d should map to %s", tc.status, tc.kind)

		apiErr := err.(*Error)
		assert.Equal(t, tc.status, apiErr.Status)
		assert.Equal(t, "nope", apiErr.Message)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	c, err := New("http://127.0.0.1:1/api", nil, 200*time.Millisecond)
	require.NoError(t, err)

	err = c.Get(context.Background(), "/videos/public", nil, nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNetwork))
}

func TestClient_DecodesPayload(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":5,"title":"cats"}`))
	})
	c := newClient(t, h, nil)

	var out struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, c.Get(context.Background(), "/videos/5", nil, &out))
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "cats", out.Title)
}

func TestClient_DecodeFailureKeepsStatus(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	c := newClient(t, h, nil)

	var out struct{ ID int64 }
	err := c.Get(context.Background(), "/users/me", nil, &out)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDecode))

	// a 2xx recorded on the failure counts as an embedded success signal
	assert.True(t, SuccessIndicated(err))
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	var gotContentType, gotBody string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{}`))
	})
	c := newClient(t, h, nil)

	body := map[string]string{"content": "nice video"}
	require.NoError(t, c.Post(context.Background(), "/comments/video/5", body, nil))

	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"content":"nice video"}`, gotBody)
}

func TestClient_Multipart(t *testing.T) {
	var gotTitle, gotFile, gotFilename string
	var thumbPresent bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotTitle = r.FormValue("data")

		f, hdr, err := r.FormFile("video")
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, hdr.Size)
		f.Read(buf)
		gotFile = string(buf)
		gotFilename = hdr.Filename

		_, _, err = r.FormFile("thumbnail")
		thumbPresent = err == nil

		w.Write([]byte(`{}`))
	})
	c := newClient(t, h, nil)

	form := NewForm().
		AddJSON("data", map[string]string{"title": "cats"}).
		AddFile("video", "cats.mp4", strings.NewReader("video-bytes"))

	require.NoError(t, c.PostMultipart(context.Background(), "/videos/upload", form, nil))

	assert.JSONEq(t, `{"title":"cats"}`, gotTitle)
	assert.Equal(t, "video-bytes", gotFile)
	assert.Equal(t, "cats.mp4", gotFilename)
	assert.False(t, thumbPresent, "omitted optional file must not be sent")
}

func TestSuccessIndicated(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"plain error", assert.AnError, false},
		{"real failure", &Error{Kind: KindServer, Status: 500}, false},
		{"2xx status on failure", &Error{Kind: KindDecode, Status: 200}, true},
		{"id echoed in body", &Error{Kind: KindValidation, Status: 400, Body: []byte(`{"id":7}`)}, true},
		{"no signal in body", &Error{Kind: KindValidation, Status: 400, Body: []byte(`{"message":"bad"}`)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SuccessIndicated(tc.err))
		})
	}
}
