package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	auction "github.com/niazroky/Commerce/internal/auction/domain"
	"github.com/niazroky/Commerce/internal/community/application"
	"github.com/niazroky/Commerce/internal/community/application/mocks"
	"github.com/niazroky/Commerce/internal/community/domain"
	"github.com/niazroky/Commerce/internal/shared/httpserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	service *mocks.MockCommunityService
	server  *httpserver.Server
	auth    *httpserver.Authenticator
}

func newHarness(t *testing.T) harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := harness{
		service: mocks.NewMockCommunityService(ctrl),
		server:  httpserver.NewServer(nil),
		auth:    httpserver.NewAuthenticator("test-secret"),
	}
	NewCommunityHandler(h.service, h.auth).Register(h.server.Router())
	return h
}

func (h harness) do(t *testing.T, method, target, body, userID string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		raw, err := h.auth.Issue(userID, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+raw)
	}
	resp, err := h.server.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestAddCommentHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		userID         string
		mockSetup      func(s *mocks.MockCommunityService)
		expectedStatus int
	}{
		{
			name:   "created",
			body:   `{"body":"is it brass?"}`,
			userID: "bob",
			mockSetup: func(s *mocks.MockCommunityService) {
				s.EXPECT().
					AddComment(gomock.Any(), application.AddCommentDTO{ListingID: 4, AuthorID: "bob", Body: "is it brass?"}).
					Return(application.CommentDTO{ID: uuid.New(), ListingID: 4, AuthorID: "bob", Body: "is it brass?"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty body",
			body:           `{"body":"  "}`,
			userID:         "bob",
			mockSetup:      func(s *mocks.MockCommunityService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "too long",
			body:   `{"body":"` + strings.Repeat("x", 200) + `"}`,
			userID: "bob",
			mockSetup: func(s *mocks.MockCommunityService) {
				s.EXPECT().AddComment(gomock.Any(), gomock.Any()).Return(application.CommentDTO{}, domain.ErrCommentTooLong)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown listing",
			body:   `{"body":"hi"}`,
			userID: "bob",
			mockSetup: func(s *mocks.MockCommunityService) {
				s.EXPECT().AddComment(gomock.Any(), gomock.Any()).Return(application.CommentDTO{}, auction.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "anonymous",
			body:           `{"body":"hi"}`,
			mockSetup:      func(s *mocks.MockCommunityService) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			tt.mockSetup(h.service)
			status, _ := h.do(t, http.MethodPost, "/listings/4/comments", tt.body, tt.userID)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestListCommentsHandler(t *testing.T) {
	h := newHarness(t)
	h.service.EXPECT().ListComments(gomock.Any(), auction.ListingID(4)).
		Return([]application.CommentDTO{{AuthorID: "bob", Body: "first"}, {AuthorID: "alice", Body: "second"}}, nil)

	status, env := h.do(t, http.MethodGet, "/listings/4/comments", "", "")
	require.Equal(t, http.StatusOK, status)
	var comments []application.CommentDTO
	require.NoError(t, json.Unmarshal(env.Data, &comments))
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Body)

	status, _ = h.do(t, http.MethodGet, "/listings/zero/comments", "", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWatchlistHandlers(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		h := newHarness(t)
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
			status, _ := h.do(t, method, "/watchlist/4", "", "")
			assert.Equal(t, http.StatusUnauthorized, status, method)
		}
		status, _ := h.do(t, http.MethodGet, "/watchlist", "", "")
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("watch and unwatch", func(t *testing.T) {
		h := newHarness(t)
		gomock.InOrder(
			h.service.EXPECT().Watch(gomock.Any(), "bob", auction.ListingID(4)).Return(nil),
			h.service.EXPECT().IsWatching(gomock.Any(), "bob", auction.ListingID(4)).Return(true, nil),
			h.service.EXPECT().Unwatch(gomock.Any(), "bob", auction.ListingID(4)).Return(nil),
		)

		status, env := h.do(t, http.MethodPut, "/watchlist/4", "", "bob")
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"watching":true}`, string(env.Data))

		status, env = h.do(t, http.MethodGet, "/watchlist/4", "", "bob")
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"watching":true}`, string(env.Data))

		status, env = h.do(t, http.MethodDelete, "/watchlist/4", "", "bob")
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"watching":false}`, string(env.Data))
	})

	t.Run("unknown listing", func(t *testing.T) {
		h := newHarness(t)
		h.service.EXPECT().Watch(gomock.Any(), "bob", auction.ListingID(99)).Return(auction.ErrListingNotFound)
		status, _ := h.do(t, http.MethodPut, "/watchlist/99", "", "bob")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("list", func(t *testing.T) {
		h := newHarness(t)
		h.service.EXPECT().Watchlist(gomock.Any(), "bob").
			Return([]application.WatchedListingDTO{{ListingID: 4, Title: "Lamp", State: "active", CurrentPrice: 150}}, nil)

		status, env := h.do(t, http.MethodGet, "/watchlist", "", "bob")
		require.Equal(t, http.StatusOK, status)
		var list []application.WatchedListingDTO
		require.NoError(t, json.Unmarshal(env.Data, &list))
		require.Len(t, list, 1)
		assert.Equal(t, int64(150), list[0].CurrentPrice)
	})
}
