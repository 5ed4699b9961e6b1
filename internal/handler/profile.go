package handler

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/repository"
	"github.com/plastiside/plastiside/internal/storage"
)

// Uploads larger than this are rejected before reading into memory.
const maxUploadBytes = 10 << 20

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	Users *repository.UserRepo
	Blobs storage.BlobStore
}

func NewProfileHandler(u *repository.UserRepo, b storage.BlobStore) *ProfileHandler {
	return &ProfileHandler{Users: u, Blobs: b}
}

type profileResp struct {
	userPart
	Status       string  `json:"status"`
	BusinessName *string `json:"businessName,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func toProfileResp(u model.User) profileResp {
	return profileResp{
		userPart:     toUserPart(u),
		Status:       u.Status,
		BusinessName: u.BusinessName,
		CreatedAt:    u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// principalID pulls the authenticated user's id set by the JWT middleware.
func principalID(c echo.Context) uint64 {
	id, _ := c.Get("user_id").(uint64)
	return id
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, principalID(c))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": toProfileResp(u)})
}

type updateProfileReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Update changes the caller's names.  Empty fields are left untouched.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid := principalID(c)
	if err := h.Users.UpdateProfile(ctx, uid, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile updated", "user": toProfileResp(u)})
}

// readUpload pulls a multipart file field into memory, enforcing the
// size cap.  Returns the content and the original extension.
func readUpload(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", err
	}
	if fh.Size > maxUploadBytes {
		return nil, "", fmt.Errorf("file too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	content, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, "", err
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	return content, ext, nil
}

// UploadAvatar stores a new avatar image and saves its reference.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	content, ext, err := readUpload(c, "avatar")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no file provided"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	uid := principalID(c)
	filename := fmt.Sprintf("%d-%s%s", uid, uuid.New(), ext)
	url, err := h.Blobs.Save(ctx, storage.DirAvatars, filename, content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "upload failed"})
	}
	if err := h.Users.UpdateAvatar(ctx, uid, url); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "avatar uploaded", "avatar": url})
}
