package handlers

import (
	"encoding/json"
	"net/http"

	"fbclone-backend/application/social"
	domainsocial "fbclone-backend/domain/social"
	"fbclone-backend/pkg/common"
	"fbclone-backend/pkg/utils"

	"go.uber.org/zap"
)

// AccountHandler handles account lifecycle and session HTTP requests.
type AccountHandler struct {
	ops    *social.Operations
	logger *zap.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(ops *social.Operations, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{ops: ops, logger: logger}
}

// ImageRef is the request form of an image reference.
type ImageRef struct {
	Bucket string `json:"bucket" validate:"required"`
	Region string `json:"region" validate:"required"`
	UUID   string `json:"uuid" validate:"required,uuid"`
	Ext    string `json:"ext" validate:"required,oneof=png jpg jpeg gif webp"`
}

func (i ImageRef) toDomain() domainsocial.Image {
	return domainsocial.Image{Bucket: i.Bucket, Region: i.Region, UUID: i.UUID, Ext: i.Ext}
}

// CreateAccountRequest represents the request body for creating an account.
type CreateAccountRequest struct {
	Handle          string    `json:"handle" validate:"required,min=1,max=32"`
	Name            string    `json:"name" validate:"required,min=1,max=100"`
	Avatar          *ImageRef `json:"avatar,omitempty"`
	PasswordPrehash string    `json:"password_prehash" validate:"required,hexadecimal,len=64"`
}

// CreateSessionRequest represents the request body for logging in.
type CreateSessionRequest struct {
	AccountID       string `json:"account_id" validate:"required"`
	PasswordPrehash string `json:"password_prehash" validate:"required,hexadecimal,len=64"`
}

// SessionResponse carries a fresh credential.
type SessionResponse struct {
	Token string `json:"token"`
}

// BoolRequest is the request body for boolean toggles.
type BoolRequest struct {
	Value bool `json:"value"`
}

// BoolResponse mirrors a boolean operation result.
type BoolResponse struct {
	Value bool `json:"value"`
}

// ChangePasswordRequest represents the request body for changing a password.
type ChangePasswordRequest struct {
	PasswordPrehash string `json:"password_prehash" validate:"required,hexadecimal,len=64"`
}

// CreateAccount handles POST /accounts.
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	args := social.MakeAccountArgs{
		Handle:  req.Handle,
		Name:    req.Name,
		PreHash: req.PasswordPrehash,
	}
	if req.Avatar != nil {
		args.Avatar = req.Avatar.toDomain()
	}

	account := h.ops.MakeAccount.Call(r.Context(), "", args)
	if account == nil {
		common.RespondError(w, http.StatusConflict, "CONFLICT", "Handle already taken")
		return
	}

	dto, err := renderUser(r.Context(), account, nil)
	if err != nil {
		h.logger.Error("Failed to render created account", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render account")
		return
	}
	common.RespondJSON(w, http.StatusCreated, dto)
}

// CreateSession handles POST /sessions.
func (h *AccountHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	token := h.ops.Login.Call(r.Context(), "", social.LoginArgs{
		AccountID: req.AccountID,
		PreHash:   req.PasswordPrehash,
	})
	if token == "" {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
		return
	}
	common.RespondJSON(w, http.StatusCreated, SessionResponse{Token: token})
}

// DeleteSession handles DELETE /sessions.
func (h *AccountHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	cleared := h.ops.Logout.Call(r.Context(), "", bearerToken(r))
	common.RespondJSON(w, http.StatusOK, BoolResponse{Value: cleared})
}

// GetMe handles GET /me.
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	profile := h.ops.MyProfile.Call(r.Context(), bearerToken(r), struct{}{})
	if profile == nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	dto, err := renderUser(r.Context(), profile, parseExpand(r))
	if err != nil {
		h.logger.Error("Failed to render profile", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "Failed to render profile")
		return
	}
	common.RespondJSON(w, http.StatusOK, dto)
}

// SetPrivacy handles PUT /me/privacy.
func (h *AccountHandler) SetPrivacy(w http.ResponseWriter, r *http.Request) {
	var req BoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	ok := h.ops.SetPrivacy.Call(r.Context(), bearerToken(r), req.Value)
	common.RespondJSON(w, http.StatusOK, BoolResponse{Value: ok})
}

// SetPassword handles PUT /me/password.
func (h *AccountHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	ok := h.ops.SetPassword.Call(r.Context(), bearerToken(r), req.PasswordPrehash)
	common.RespondJSON(w, http.StatusOK, BoolResponse{Value: ok})
}
