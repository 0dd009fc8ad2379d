package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/tracking"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// TrackingStore defines database operations for book tracking.
type TrackingStore interface {
	ListByUser(userID uint) ([]entities.BookTracking, error)
	GetByID(id uint) (*entities.BookTracking, error)
	Create(t *entities.BookTracking) (*entities.BookTracking, error)
	Update(userID, id uint, updates map[string]any) (*entities.BookTracking, error)
	Delete(userID, id uint) error
}

// TrackingBookStore is the slice of the books store the tracking handlers
// need to verify a tracked book exists.
type TrackingBookStore interface {
	GetByID(id uint) (*entities.Book, error)
}

type TrackingController struct {
	store     TrackingStore
	bookStore TrackingBookStore
}

func NewTrackingController(store TrackingStore, bookStore TrackingBookStore) *TrackingController {
	return &TrackingController{store: store, bookStore: bookStore}
}

// createTrackingRequest deliberately has no owner field: the owner is always
// the authenticated caller, never client-supplied.
type createTrackingRequest struct {
	BookID   uint                    `json:"book_id" binding:"required"`
	Status   entities.TrackingStatus `json:"status" binding:"omitempty,oneof=reading completed want_to_read"`
	Rating   *int                    `json:"rating" binding:"omitempty,min=1,max=5"`
	Progress *int                    `json:"progress" binding:"omitempty,min=0,max=100"`
}

type updateTrackingRequest struct {
	Status   *entities.TrackingStatus `json:"status" binding:"omitempty,oneof=reading completed want_to_read"`
	Rating   *int                     `json:"rating" binding:"omitempty,min=1,max=5"`
	Progress *int                     `json:"progress" binding:"omitempty,min=0,max=100"`
}

// ListTracking returns only the caller's tracking records.
// GET /api/booktracking
func (tc *TrackingController) ListTracking(c *gin.Context) {
	trackings, err := tc.store.ListByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list tracking")
		return
	}
	c.JSON(http.StatusOK, trackings)
}

// GetTracking returns one of the caller's tracking records. Records owned by
// other users are reported as not found, not forbidden, so reads never leak
// their existence.
// GET /api/booktracking/:id
func (tc *TrackingController) GetTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := tc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, tracking.ErrNotFound) {
			respondNotFound(c, "book tracking")
			return
		}
		respondInternalError(c, err, "get tracking")
		return
	}
	if t.UserID != GetUserID(c) {
		respondNotFound(c, "book tracking")
		return
	}
	c.JSON(http.StatusOK, t)
}

// CreateTracking starts tracking a book for the caller. The owner is forced
// to the authenticated user; a second tracking of the same book is a
// validation error.
// POST /api/booktracking
func (tc *TrackingController) CreateTracking(c *gin.Context) {
	var req createTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if _, err := tc.bookStore.GetByID(req.BookID); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondBadRequest(c, "book does not exist")
			return
		}
		respondInternalError(c, err, "create tracking")
		return
	}

	t := &entities.BookTracking{
		UserID: GetUserID(c),
		BookID: req.BookID,
		Status: entities.TrackingStatusWantToRead,
		Rating: req.Rating,
	}
	if req.Status != "" {
		t.Status = req.Status
	}
	if req.Progress != nil {
		t.Progress = *req.Progress
	}

	created, err := tc.store.Create(t)
	if err != nil {
		if errors.Is(err, tracking.ErrAlreadyTracked) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "create tracking")
		return
	}
	respondCreated(c, created)
}

// UpdateTracking changes status/rating/progress on a record the caller owns.
// PUT/PATCH /api/booktracking/:id
func (tc *TrackingController) UpdateTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := make(map[string]any)
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}

	t, err := tc.store.Update(GetUserID(c), id, updates)
	if err != nil {
		switch {
		case errors.Is(err, tracking.ErrNotFound):
			respondNotFound(c, "book tracking")
		case errors.Is(err, tracking.ErrNotOwner):
			respondForbidden(c, "you cannot update another user's book tracking")
		default:
			respondInternalError(c, err, "update tracking")
		}
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTracking removes a record the caller owns.
// DELETE /api/booktracking/:id
func (tc *TrackingController) DeleteTracking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := tc.store.Delete(GetUserID(c), id); err != nil {
		switch {
		case errors.Is(err, tracking.ErrNotFound):
			respondNotFound(c, "book tracking")
		case errors.Is(err, tracking.ErrNotOwner):
			respondForbidden(c, "you cannot delete another user's book tracking")
		default:
			respondInternalError(c, err, "delete tracking")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
