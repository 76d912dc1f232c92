package handlers

import (
	"encoding/json"
	"net/http"

	"fbclone-backend/application/social"
	"fbclone-backend/application/views"
	"fbclone-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SocialHandler handles user lookup and relationship HTTP requests.
type SocialHandler struct {
	ops    *social.Operations
	logger *zap.Logger
}

// NewSocialHandler creates a new social handler.
func NewSocialHandler(ops *social.Operations, logger *zap.Logger) *SocialHandler {
	return &SocialHandler{ops: ops, logger: logger}
}

// GetUser handles GET /users/{userID}.
func (h *SocialHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user := h.ops.LookupUser.Call(r.Context(), bearerToken(r), chi.URLParam(r, "userID"))
	if user == nil {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	h.respondUser(w, r, user)
}

// GetUserByHandle handles GET /users/by-handle/{handle}.
func (h *SocialHandler) GetUserByHandle(w http.ResponseWriter, r *http.Request) {
	user := h.ops.LookupHandle.Call(r.Context(), bearerToken(r), chi.URLParam(r, "handle"))
	if user == nil {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	h.respondUser(w, r, user)
}

func (h *SocialHandler) respondUser(w http.ResponseWriter, r *http.Request, user *views.User) {
	dto, err := renderUser(r.Context(), user, parseExpand(r))
	if err != nil {
		h.logger.Error("Failed to render user", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render user")
		return
	}
	common.RespondJSON(w, http.StatusOK, dto)
}

// SetFriendStatus handles PUT /friends/{userID}.
func (h *SocialHandler) SetFriendStatus(w http.ResponseWriter, r *http.Request) {
	var req BoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	ok := h.ops.SetFriendStatus.Call(r.Context(), bearerToken(r), social.FriendStatusArgs{
		TargetID: chi.URLParam(r, "userID"),
		Desired:  req.Value,
	})
	common.RespondJSON(w, http.StatusOK, BoolResponse{Value: ok})
}

// SetLikeStatus handles PUT /likes/{contentID}.
func (h *SocialHandler) SetLikeStatus(w http.ResponseWriter, r *http.Request) {
	var req BoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	ok := h.ops.SetLikeStatus.Call(r.Context(), bearerToken(r), social.LikeStatusArgs{
		ContentID: chi.URLParam(r, "contentID"),
		Desired:   req.Value,
	})
	common.RespondJSON(w, http.StatusOK, BoolResponse{Value: ok})
}
