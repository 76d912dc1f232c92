package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fbclone-backend/application/auth"
	"fbclone-backend/application/gate"
	"fbclone-backend/application/ports"
	"fbclone-backend/application/relationships"
	"fbclone-backend/application/social"
	"fbclone-backend/application/views"
	"fbclone-backend/infrastructure/config"
	"fbclone-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	logger := zaptest.NewLogger(t)
	rel := relationships.NewEngine(store.Requests(), store.Likes())
	deps := &views.Deps{
		Users:   store.Users(),
		Posts:   store.Posts(),
		Replies: store.Replies(),
		Rel:     rel,
	}

	svc := social.NewService(
		store.Users(), store.Posts(), store.Replies(),
		store.Likes(), store.Requests(), store.Sessions(),
		rel, deps, ports.NopPublisher{}, logger,
	)
	resolver := auth.NewResolver(store.Sessions(), logger)
	ops := social.NewOperations(gate.NewGate(resolver, logger, nil), svc)

	router := NewRouter(ops, &config.Config{Environment: "test"}, logger)
	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

const preHash = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"

func createAccount(t *testing.T, srv *httptest.Server, handle string) string {
	t.Helper()
	resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", "", map[string]any{
		"handle":           handle,
		"name":             "User " + handle,
		"password_prehash": preHash,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var account struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &account))
	require.NotEmpty(t, account.ID)
	return account.ID
}

func loginAccount(t *testing.T, srv *httptest.Server, accountID string) string {
	t.Helper()
	resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/sessions", "", map[string]any{
		"account_id":       accountID,
		"password_prehash": preHash,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAccountSessionFlow(t *testing.T) {
	srv := newTestServer(t)

	accountID := createAccount(t, srv, "alice")
	token := loginAccount(t, srv, accountID)

	resp, env := doJSON(t, srv, http.MethodGet, "/api/v1/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, accountID, me.ID)
	assert.Equal(t, "alice", me.Username)

	// Without a credential, /me is unauthorized
	resp, _ = doJSON(t, srv, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logout invalidates the token
	resp, _ = doJSON(t, srv, http.MethodDelete, "/api/v1/sessions", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodGet, "/api/v1/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDuplicateHandleConflict(t *testing.T) {
	srv := newTestServer(t)

	createAccount(t, srv, "alice")
	resp, _ := doJSON(t, srv, http.MethodPost, "/api/v1/accounts", "", map[string]any{
		"handle":           "alice",
		"name":             "Impostor",
		"password_prehash": preHash,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPostReplyLikeFlow(t *testing.T) {
	srv := newTestServer(t)

	aliceID := createAccount(t, srv, "alice")
	bobID := createAccount(t, srv, "bob")
	aliceTok := loginAccount(t, srv, aliceID)
	bobTok := loginAccount(t, srv, bobID)

	// Alice posts
	resp, env := doJSON(t, srv, http.MethodPost, "/api/v1/posts", aliceTok, map[string]any{
		"message": "hello world",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))

	// Bob replies and likes
	resp, _ = doJSON(t, srv, http.MethodPost, "/api/v1/posts/"+post.ID+"/replies", bobTok, map[string]any{
		"message": "hi alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env = doJSON(t, srv, http.MethodPut, "/api/v1/likes/"+post.ID, bobTok, map[string]any{"value": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled struct {
		Value bool `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.True(t, toggled.Value)

	// Bob sees his like and the reply on the expanded post
	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/posts/"+post.ID+"?expand=replies,poster", bobTok, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var full struct {
		Message string `json:"message"`
		Likes   int    `json:"likes"`
		Liked   bool   `json:"liked"`
		Poster  struct {
			ID string `json:"id"`
		} `json:"poster"`
		Replies []struct {
			Message string `json:"message"`
		} `json:"replies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &full))
	assert.Equal(t, "hello world", full.Message)
	assert.Equal(t, 1, full.Likes)
	assert.True(t, full.Liked)
	assert.Equal(t, aliceID, full.Poster.ID)
	require.Len(t, full.Replies, 1)
	assert.Equal(t, "hi alice", full.Replies[0].Message)

	// Anonymous lookup works but is never "liked"
	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &full))
	assert.False(t, full.Liked)
}

func TestFriendToggleEndpoint(t *testing.T) {
	srv := newTestServer(t)

	aliceID := createAccount(t, srv, "alice")
	bobID := createAccount(t, srv, "bob")
	aliceTok := loginAccount(t, srv, aliceID)
	bobTok := loginAccount(t, srv, bobID)

	resp, env := doJSON(t, srv, http.MethodPut, "/api/v1/friends/"+bobID, aliceTok, map[string]any{"value": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var toggled struct {
		Value bool `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.True(t, toggled.Value)

	resp, env = doJSON(t, srv, http.MethodPut, "/api/v1/friends/"+aliceID, bobTok, map[string]any{"value": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Mutual now: alice shows up in bob's expanded friends
	resp, env = doJSON(t, srv, http.MethodGet, "/api/v1/users/"+bobID+"?expand=friends", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user struct {
		Friends []struct {
			ID string `json:"id"`
		} `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	require.Len(t, user.Friends, 1)
	assert.Equal(t, aliceID, user.Friends[0].ID)

	// Anonymous mutation attempts fall back to false
	resp, env = doJSON(t, srv, http.MethodPut, "/api/v1/friends/"+bobID, "", map[string]any{"value": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &toggled))
	assert.False(t, toggled.Value)
}

func TestLookupMissingUser(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, srv, http.MethodGet, "/api/v1/users/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/api/v1/users/by-handle/ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserLookupByHandle(t *testing.T) {
	srv := newTestServer(t)

	accountID := createAccount(t, srv, "alice")

	resp, env := doJSON(t, srv, http.MethodGet, "/api/v1/users/by-handle/alice", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, accountID, user.ID)
}
