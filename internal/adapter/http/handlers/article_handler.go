package handlers

import (
	"errors"
	"net/http"

	request "cistilnica/internal/adapter/http/dto/request"
	response "cistilnica/internal/adapter/http/dto/response"
	"cistilnica/internal/usecase"
	"cistilnica/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidArticlePayload = pkg.NewDomainErrorSimple("INVALID_ARTICLE_INPUT", "Invalid article payload", http.StatusBadRequest)

// ArticleHandler handles the catalog article HTTP surface.
type ArticleHandler struct {
	usecase usecase.IArticleUseCase
}

func NewArticleHandler(uc usecase.IArticleUseCase) *ArticleHandler {
	return &ArticleHandler{usecase: uc}
}

// List handles GET /api/articles.
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapArticleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromArticles(articles))
}

// GetByID handles GET /api/articles/:id.
func (h *ArticleHandler) GetByID(c *gin.Context) {
	a, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapArticleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromArticle(a))
}

// Create handles POST /api/articles.
func (h *ArticleHandler) Create(c *gin.Context) {
	var payload request.CreateArticleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidArticlePayload.HTTPStatus, errInvalidArticlePayload.ToHTTPError())
		return
	}

	a, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapArticleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Article created", "article": response.FromArticle(a)})
}

// Update handles PUT /api/articles/:id.
func (h *ArticleHandler) Update(c *gin.Context) {
	var payload request.UpdateArticleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidArticlePayload.HTTPStatus, errInvalidArticlePayload.ToHTTPError())
		return
	}

	a, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToUpdate())
	if err != nil {
		appErr := mapArticleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article updated", "article": response.FromArticle(a)})
}

// Delete handles DELETE /api/articles/:id.
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapArticleError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

func mapArticleError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidArticleID),
		errors.Is(err, usecase.ErrInvalidArticleName),
		errors.Is(err, usecase.ErrInvalidArticleUnit),
		errors.Is(err, usecase.ErrNegativePrice),
		errors.Is(err, usecase.ErrNegativeVAT):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrArticleNotFound):
		return pkg.NewDomainErrorSimple("ARTICLE_NOT_FOUND", "Article not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
