package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"fbclone-backend/application/social"
	domainsocial "fbclone-backend/domain/social"
	"fbclone-backend/pkg/common"
	"fbclone-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PostHandler handles post, reply and feed HTTP requests.
type PostHandler struct {
	ops    *social.Operations
	logger *zap.Logger
}

// NewPostHandler creates a new post handler.
func NewPostHandler(ops *social.Operations, logger *zap.Logger) *PostHandler {
	return &PostHandler{ops: ops, logger: logger}
}

// CreatePostRequest represents the request body for creating a post.
type CreatePostRequest struct {
	Message string     `json:"message" validate:"required,max=10000"`
	Images  []ImageRef `json:"images,omitempty" validate:"omitempty,max=10,dive"`
}

// CreateReplyRequest represents the request body for replying to a post.
type CreateReplyRequest struct {
	Message string `json:"message" validate:"required,max=10000"`
}

// CreatePost handles POST /posts.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	images := make([]domainsocial.Image, len(req.Images))
	for i, ref := range req.Images {
		images[i] = ref.toDomain()
	}

	post := h.ops.MakePost.Call(r.Context(), bearerToken(r), social.MakePostArgs{
		Message: req.Message,
		Images:  images,
	})
	if post == nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	dto, err := renderPost(r.Context(), post, nil)
	if err != nil {
		h.logger.Error("Failed to render created post", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render post")
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// GetPost handles GET /posts/{postID}.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post := h.ops.LookupPost.Call(r.Context(), bearerToken(r), chi.URLParam(r, "postID"))
	if post == nil {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "Post not found")
		return
	}

	dto, err := renderPost(r.Context(), post, parseExpand(r))
	if err != nil {
		h.logger.Error("Failed to render post", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render post")
		return
	}
	common.RespondJSON(w, http.StatusOK, dto)
}

// CreateReply handles POST /posts/{postID}/replies.
func (h *PostHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var req CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	reply := h.ops.MakeReply.Call(r.Context(), bearerToken(r), social.MakeReplyArgs{
		ReplyTo: chi.URLParam(r, "postID"),
		Message: req.Message,
	})
	if reply == nil {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "Post not found")
		return
	}

	dto, err := renderReply(r.Context(), reply, nil)
	if err != nil {
		h.logger.Error("Failed to render created reply", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render reply")
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// GetReply handles GET /replies/{replyID}.
func (h *PostHandler) GetReply(w http.ResponseWriter, r *http.Request) {
	reply := h.ops.LookupReply.Call(r.Context(), bearerToken(r), chi.URLParam(r, "replyID"))
	if reply == nil {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "Reply not found")
		return
	}

	dto, err := renderReply(r.Context(), reply, parseExpand(r))
	if err != nil {
		h.logger.Error("Failed to render reply", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render reply")
		return
	}
	common.RespondJSON(w, http.StatusOK, dto)
}

// GetFeed handles GET /feed.
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION", "page must be a non-negative integer")
			return
		}
		page = parsed
	}

	posts := h.ops.Feed.Call(r.Context(), bearerToken(r), page)

	dtos := make([]*PostDTO, len(posts))
	for i, p := range posts {
		dto, err := renderPost(r.Context(), p, nil)
		if err != nil {
			h.logger.Error("Failed to render feed post", zap.Error(err))
			common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render feed")
			return
		}
		dtos[i] = dto
	}
	common.RespondJSON(w, http.StatusOK, dtos)
}
