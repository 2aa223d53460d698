package api

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"social-demo/backend/internal/constants"
	apperrors "social-demo/backend/pkg/errors"
)

type profileForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func errorPage(c *gin.Context, status int, message, back string) {
	c.HTML(status, pageError, gin.H{"Message": message, "Back": back})
}

func (h *Handler) addProfile(c *gin.Context) {
	var form profileForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
		errorPage(c, http.StatusBadRequest, constants.MsgInvalidBody, linkAddProfile)
		return
	}

	profile, err := h.svc.Register(form.Name, form.Email, form.Password)
	if err != nil {
		errorPage(c, http.StatusOK, apperrors.PublicMessage(err, "All fields are required!"), linkAddProfile)
		return
	}

	c.HTML(http.StatusOK, pageProfileCreated, gin.H{"Name": profile.Name, "Email": profile.Email})
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
		errorPage(c, http.StatusBadRequest, constants.MsgInvalidBody, linkLogin)
		return
	}

	profile, err := h.svc.Login(form.Email, form.Password)
	if err != nil {
		c.HTML(http.StatusOK, pageLoginFailed, gin.H{"Message": apperrors.PublicMessage(err, "Invalid email or password!")})
		return
	}

	c.HTML(http.StatusOK, pageLoginSuccess, gin.H{"Name": profile.Name})
}

// formFile fetches the uploaded file in field, if any
func formFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewUploadTooLarge(tooLarge.Limit, err)
		}
		return nil, apperrors.NewNoFileUploaded(field)
	}
	return fh, nil
}

// storageFailure renders the error page for a failed write, inviting a retry
// when the failure may be transient
func (h *Handler) storageFailure(c *gin.Context, err error, message, back string) {
	retryable := apperrors.IsRetryable(err)
	h.logger.Error("Failed to store upload", zap.Error(err), zap.Bool("retryable", retryable))
	if retryable {
		message += " Please try again."
	}
	errorPage(c, http.StatusInternalServerError, message, back)
}

func (h *Handler) uploadVideo(c *gin.Context) {
	fh, err := formFile(c, constants.FormFieldVideo)
	if apperrors.IsErrorType(err, apperrors.ErrorTypeTooLarge) {
		errorPage(c, http.StatusRequestEntityTooLarge, apperrors.PublicMessage(err, ""), linkVideos)
		return
	}
	if err != nil {
		h.logger.Debug("Video upload without file", zap.Error(err))
		errorPage(c, http.StatusOK, "No video file uploaded!", linkVideos)
		return
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded video", zap.Error(err))
		errorPage(c, http.StatusInternalServerError, "Could not read the uploaded video.", linkVideos)
		return
	}
	defer src.Close()

	video, err := h.svc.UploadVideo(c.PostForm("title"), fh.Filename, src)
	if err != nil {
		h.storageFailure(c, err, "Could not store the uploaded video.", linkVideos)
		return
	}

	c.HTML(http.StatusOK, pageVideoUploaded, gin.H{
		"Title":        video.Title,
		"OriginalName": video.OriginalName,
		"Path":         video.Path,
		"MimeType":     video.MimeType,
	})
}

func (h *Handler) uploadProfilePicture(c *gin.Context) {
	fh, err := formFile(c, constants.FormFieldProfilePicture)
	if apperrors.IsErrorType(err, apperrors.ErrorTypeTooLarge) {
		errorPage(c, http.StatusRequestEntityTooLarge, apperrors.PublicMessage(err, ""), linkProfilePictures)
		return
	}
	if err != nil {
		h.logger.Debug("Profile picture upload without file", zap.Error(err))
		errorPage(c, http.StatusOK, "No profile picture uploaded!", linkProfilePictures)
		return
	}

	src, err := fh.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded picture", zap.Error(err))
		errorPage(c, http.StatusInternalServerError, "Could not read the uploaded picture.", linkProfilePictures)
		return
	}
	defer src.Close()

	email := c.PostForm("email")
	stored, err := h.svc.UploadProfilePicture(email, fh.Filename, src)
	switch {
	case apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound):
		errorPage(c, http.StatusOK, "Profile not found! Please make sure you entered the correct email.", linkProfilePictures)
		return
	case err != nil:
		h.storageFailure(c, err, "Could not store the uploaded picture.", linkProfilePictures)
		return
	}

	c.HTML(http.StatusOK, pagePictureUploaded, gin.H{"Email": email, "Path": stored.URL})
}
