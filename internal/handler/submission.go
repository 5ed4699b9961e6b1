package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/plastiside/plastiside/internal/config"
	"github.com/plastiside/plastiside/internal/model"
	"github.com/plastiside/plastiside/internal/queue"
	"github.com/plastiside/plastiside/internal/repository"
	queue_publisher "github.com/plastiside/plastiside/internal/service"
	"github.com/plastiside/plastiside/internal/storage"
)

// SubmissionHandler exposes the submission ledger and verification
// workflow over HTTP.  Role checks live in the router's middleware
// chain; handlers only translate between transport and repository.
type SubmissionHandler struct {
	Cfg         config.Config
	Submissions *repository.SubmissionRepo
	Blobs       storage.BlobStore
}

func NewSubmissionHandler(cfg config.Config, s *repository.SubmissionRepo, b storage.BlobStore) *SubmissionHandler {
	return &SubmissionHandler{Cfg: cfg, Submissions: s, Blobs: b}
}

// ----- DTOs -----

type createSubmissionReq struct {
	PlasticType string  `json:"plasticType" form:"plasticType"`
	Weight      float64 `json:"weight" form:"weight"`
	Quantity    int     `json:"quantity" form:"quantity"`
	Location    string  `json:"location" form:"location"`
	Description string  `json:"description" form:"description"`
}

type submissionResp struct {
	ID           uint64  `json:"id"`
	UserID       uint64  `json:"userId"`
	PlasticType  string  `json:"plasticType"`
	Weight       float64 `json:"weight"`
	Quantity     int     `json:"quantity"`
	Location     string  `json:"location"`
	Description  *string `json:"description,omitempty"`
	PhotoURL     *string `json:"photoUrl,omitempty"`
	PointsEarned int64   `json:"pointsEarned"`
	Status       string  `json:"status"`
	VerifiedBy   *uint64 `json:"verifiedBy,omitempty"`
	VerifiedAt   *string `json:"verifiedAt,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func toSubmissionResp(s model.Submission) submissionResp {
	resp := submissionResp{
		ID:           s.ID,
		UserID:       s.UserID,
		PlasticType:  s.PlasticType,
		Weight:       s.Weight,
		Quantity:     s.Quantity,
		Location:     s.Location,
		Description:  s.Description,
		PhotoURL:     s.PhotoURL,
		PointsEarned: s.PointsEarned,
		Status:       s.Status,
		VerifiedBy:   s.VerifiedBy,
		CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
	}
	if s.VerifiedAt != nil {
		iso := s.VerifiedAt.UTC().Format(time.RFC3339)
		resp.VerifiedAt = &iso
	}
	return resp
}

// Create records a plastic batch for the calling user.  The owner is
// always the authenticated principal.  Points are computed and granted
// inside the ledger transaction; the grant stands regardless of the
// later verification outcome.
func (h *SubmissionHandler) Create(c echo.Context) error {
	var req createSubmissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.PlasticType = strings.TrimSpace(req.PlasticType)
	req.Location = strings.TrimSpace(req.Location)
	if req.PlasticType == "" || req.Location == "" || req.Weight <= 0 || req.Quantity <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "plasticType, positive weight/quantity and location required"})
	}

	uid := principalID(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	var photoURL *string
	if content, ext, err := readUpload(c, "photo"); err == nil {
		filename := fmt.Sprintf("%d-%s%s", uid, uuid.New(), ext)
		url, err := h.Blobs.Save(ctx, storage.DirSubmissions, filename, content)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "photo upload failed"})
		}
		photoURL = &url
	}

	sub := model.Submission{
		UserID:      uid,
		PlasticType: req.PlasticType,
		Weight:      req.Weight,
		Quantity:    req.Quantity,
		Location:    req.Location,
		PhotoURL:    photoURL,
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		sub.Description = &d
	}

	if err := h.Submissions.Create(ctx, &sub); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create submission failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "submission created",
		"submission": toSubmissionResp(sub),
	})
}

// ListOwn returns the caller's submissions, newest first.
func (h *SubmissionHandler) ListOwn(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	subs, err := h.Submissions.ListByUser(ctx, principalID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]submissionResp, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubmissionResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"submissions": out})
}

type submissionWithOwnerResp struct {
	submissionResp
	Owner struct {
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	} `json:"owner"`
}

// ListAll returns every submission with owner info.  Admin only; the
// router's role table enforces that before this handler runs.
func (h *SubmissionHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	subs, err := h.Submissions.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]submissionWithOwnerResp, 0, len(subs))
	for _, s := range subs {
		var d submissionWithOwnerResp
		d.submissionResp = toSubmissionResp(s.Submission)
		d.Owner.Email = s.OwnerEmail
		d.Owner.FirstName = s.OwnerFirstName
		d.Owner.LastName = s.OwnerLastName
		out = append(out, d)
	}
	return c.JSON(http.StatusOK, echo.Map{"submissions": out})
}

type verifyReq struct {
	SubmissionID uint64 `json:"submissionId"`
	Status       string `json:"status"`
}

// Verify decides a pending submission.  Restricted to admins and
// collectors by the router; the target status must be verified or
// rejected.  A submission already decided returns 409 and nothing is
// mutated.
func (h *SubmissionHandler) Verify(c echo.Context) error {
	var req verifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.SubmissionID == 0 || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "submissionId and status required"})
	}
	if req.Status != model.SubmissionVerified && req.Status != model.SubmissionRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be verified or rejected"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	verifierID := principalID(c)
	updated, err := h.Submissions.Verify(ctx, req.SubmissionID, req.Status, verifierID, h.Cfg.RevokePointsOnReject)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "submission not found"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "submission already decided"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "verify failed"})
		}
	}

	// Fire-and-forget audit event; a broker outage must not fail the request.
	ev := queue.SubmissionVerifiedEvent{
		SubmissionID: updated.ID,
		OwnerID:      updated.UserID,
		VerifierID:   verifierID,
		PlasticType:  updated.PlasticType,
		Weight:       updated.Weight,
		Quantity:     updated.Quantity,
		PointsEarned: updated.PointsEarned,
		Status:       updated.Status,
		DecidedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishSubmissionVerified(context.Background(), ev) }()

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "submission " + updated.Status,
		"submission": toSubmissionResp(updated),
	})
}
