package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, handler http.HandlerFunc) *CloudinaryStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := NewCloudinaryStore("demo", "key", "secret")
	store.baseURL = server.URL
	return store
}

func TestDeletePhotoOK(t *testing.T) {
	var gotPublicID string
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPublicID = r.PostFormValue("public_id")
		assert.NotEmpty(t, r.PostFormValue("signature"))
		w.Write([]byte(`{"result":"ok"}`))
	})

	require.NoError(t, store.DeletePhoto(context.Background(), "posts/abc123"))
	assert.Equal(t, "posts/abc123", gotPublicID)
}

func TestDeletePhotoNotFoundCountsAsSuccess(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result":"not found"}`))
	})
	assert.NoError(t, store.DeletePhoto(context.Background(), "gone"))
}

func TestDeletePhotoErrorSurfaces(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"invalid signature"}}`))
	})
	err := store.DeletePhoto(context.Background(), "posts/abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid signature")
}

func TestNoopPhotoStore(t *testing.T) {
	assert.NoError(t, NoopPhotoStore{}.DeletePhoto(context.Background(), "anything"))
}
