package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/database/books"
	"github.com/mrlokans/bookshelf/internal/database/comments"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// CommentsStore defines database operations for book comments.
type CommentsStore interface {
	ListByUser(userID uint) ([]entities.BookComment, error)
	GetByID(id uint) (*entities.BookComment, error)
	Create(comment *entities.BookComment) (*entities.BookComment, error)
	Update(userID, id uint, text string) (*entities.BookComment, error)
	Delete(userID, id uint) error
}

type CommentsController struct {
	store     CommentsStore
	bookStore TrackingBookStore
}

func NewCommentsController(store CommentsStore, bookStore TrackingBookStore) *CommentsController {
	return &CommentsController{store: store, bookStore: bookStore}
}

// createCommentRequest has no owner field; the owner is always the caller.
type createCommentRequest struct {
	BookID  uint   `json:"book" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

type updateCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// ListComments returns only the caller's comments.
// GET /api/bookcomments
func (cc *CommentsController) ListComments(c *gin.Context) {
	userComments, err := cc.store.ListByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list comments")
		return
	}
	c.JSON(http.StatusOK, userComments)
}

// GetComment returns one of the caller's comments. Other users' comments are
// reported as not found so reads never leak their existence.
// GET /api/bookcomments/:id
func (cc *CommentsController) GetComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	comment, err := cc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, comments.ErrNotFound) {
			respondNotFound(c, "book comment")
			return
		}
		respondInternalError(c, err, "get comment")
		return
	}
	if comment.UserID != GetUserID(c) {
		respondNotFound(c, "book comment")
		return
	}
	c.JSON(http.StatusOK, comment)
}

// CreateComment posts a comment on a book as the authenticated caller.
// POST /api/bookcomments
func (cc *CommentsController) CreateComment(c *gin.Context) {
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if _, err := cc.bookStore.GetByID(req.BookID); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondBadRequest(c, "book does not exist")
			return
		}
		respondInternalError(c, err, "create comment")
		return
	}

	comment := &entities.BookComment{
		UserID:  GetUserID(c),
		BookID:  req.BookID,
		Comment: req.Comment,
	}

	created, err := cc.store.Create(comment)
	if err != nil {
		respondInternalError(c, err, "create comment")
		return
	}
	respondCreated(c, created)
}

// UpdateComment edits a comment the caller owns.
// PUT/PATCH /api/bookcomments/:id
func (cc *CommentsController) UpdateComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	comment, err := cc.store.Update(GetUserID(c), id, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, comments.ErrNotFound):
			respondNotFound(c, "book comment")
		case errors.Is(err, comments.ErrNotOwner):
			respondForbidden(c, "you cannot update another user's book comment")
		default:
			respondInternalError(c, err, "update comment")
		}
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment the caller owns.
// DELETE /api/bookcomments/:id
func (cc *CommentsController) DeleteComment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.store.Delete(GetUserID(c), id); err != nil {
		switch {
		case errors.Is(err, comments.ErrNotFound):
			respondNotFound(c, "book comment")
		case errors.Is(err, comments.ErrNotOwner):
			respondForbidden(c, "you cannot delete another user's book comment")
		default:
			respondInternalError(c, err, "delete comment")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
