package membership

import (
	"errors"
	"net/http"
	"path/filepath"

	"memberpay/internal/api"
	"memberpay/internal/auth"
	"memberpay/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSize = 5 << 20 // 5MB

// Allowed upload types and the extension each is stored with.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type Handler struct {
	svc       Service
	uploadDir string
	baseURL   string
}

func NewHandler(svc Service, uploadDir, baseURL string) *Handler {
	return &Handler{
		svc:       svc,
		uploadDir: uploadDir,
		baseURL:   baseURL,
	}
}

// Register godoc
// @Summary      Register a new member
// @Tags         membership
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration data"
// @Success      201      {object}  api.Response
// @Failure      400      {object}  api.Response
// @Router       /registration [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, api.CodeFailure, api.BindingMessage(err))
		return
	}

	err := h.svc.Register(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrEmailExists):
		api.Error(c, http.StatusBadRequest, api.CodeFailure, "Email already registered")
		return
	case err != nil:
		logger.Errorf("register %s: %v", req.Email, err)
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Registration failed")
		return
	}

	api.Created(c, "Registration successful, please log in")
}

// Login godoc
// @Summary      Log in
// @Tags         membership
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  api.Response{data=TokenData}
// @Failure      400      {object}  api.Response
// @Router       /login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, api.CodeFailure, api.BindingMessage(err))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		api.Error(c, http.StatusBadRequest, api.CodeBadCredentials, "Wrong email or password")
		return
	}

	api.OK(c, "Login successful", TokenData{Token: token})
}

// GetProfile godoc
// @Summary      Get profile
// @Tags         membership
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response{data=Profile}
// @Failure      401  {object}  api.Response
// @Router       /profile [get]
func (h *Handler) GetProfile(c *gin.Context) {
	email, ok := auth.GetEmail(c)
	if !ok {
		api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), email)
	if err != nil {
		logger.Errorf("get profile %s: %v", email, err)
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Failed to get profile")
		return
	}

	api.OK(c, "Success", profile)
}

// UpdateProfile godoc
// @Summary      Update profile names
// @Tags         membership
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      UpdateProfileRequest  true  "New names"
// @Success      200      {object}  api.Response{data=Profile}
// @Failure      400      {object}  api.Response
// @Failure      401      {object}  api.Response
// @Router       /profile/update [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	email, ok := auth.GetEmail(c)
	if !ok {
		api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, api.CodeFailure, api.BindingMessage(err))
		return
	}

	profile, err := h.svc.UpdateProfile(c.Request.Context(), email, req)
	if err != nil {
		logger.Errorf("update profile %s: %v", email, err)
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Failed to update profile")
		return
	}

	api.OK(c, "Profile updated", profile)
}

// UploadProfileImage godoc
// @Summary      Upload profile image
// @Tags         membership
// @Security     BearerAuth
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "JPEG or PNG, max 5MB"
// @Success      200   {object}  api.Response{data=ProfileWithImageURL}
// @Failure      400   {object}  api.Response
// @Failure      401   {object}  api.Response
// @Router       /profile/image [put]
func (h *Handler) UploadProfileImage(c *gin.Context) {
	email, ok := auth.GetEmail(c)
	if !ok {
		api.Error(c, http.StatusUnauthorized, api.CodeBadToken, "Token is invalid or expired")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		api.Error(c, http.StatusBadRequest, api.CodeFailure, "Field file must not be empty")
		return
	}

	if file.Size > maxImageSize {
		api.Error(c, http.StatusBadRequest, api.CodeFailure, "Image must not exceed 5MB")
		return
	}

	ext, ok := imageExtensions[file.Header.Get("Content-Type")]
	if !ok {
		api.Error(c, http.StatusBadRequest, api.CodeFailure, "Image format not supported")
		return
	}

	filename := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		logger.Errorf("save profile image for %s: %v", email, err)
		api.Error(c, http.StatusInternalServerError, api.CodeUploadFailure, "Failed to upload profile image")
		return
	}

	profile, err := h.svc.SetProfileImage(c.Request.Context(), email, filename)
	if err != nil {
		logger.Errorf("set profile image for %s: %v", email, err)
		api.Error(c, http.StatusInternalServerError, api.CodeUploadFailure, "Failed to upload profile image")
		return
	}

	api.OK(c, "Profile image uploaded", ProfileWithImageURL{
		Profile:         *profile,
		ProfileImageURL: h.baseURL + "/images/" + filename,
	})
}

// List godoc
// @Summary      List registered members
// @Tags         membership
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.Response{data=[]MemberSummary}
// @Failure      401  {object}  api.Response
// @Router       /registration [get]
func (h *Handler) List(c *gin.Context) {
	members, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list members: %v", err)
		api.Error(c, http.StatusInternalServerError, api.CodeFailure, "Failed to list members")
		return
	}

	api.OK(c, "Membership list", members)
}
