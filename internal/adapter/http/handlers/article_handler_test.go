package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cistilnica/internal/adapter/http/handlers/mocks"
	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestArticleHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIArticleUseCase(ctrl)
		h := NewArticleHandler(uc)

		r := gin.New()
		r.POST("/api/articles", h.Create)

		req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing name maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIArticleUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Article{}, usecase.ErrInvalidArticleName)
		h := NewArticleHandler(uc)

		r := gin.New()
		r.POST("/api/articles", h.Create)

		req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString(`{"price":5}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success returns computed final price", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIArticleUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Article{
			ID: "art-1", Name: "Srajca", Unit: "kos", Price: 5, VATPercent: 22, FinalPrice: 6.10,
		}, nil)
		h := NewArticleHandler(uc)

		r := gin.New()
		r.POST("/api/articles", h.Create)

		req := httptest.NewRequest(http.MethodPost, "/api/articles", bytes.NewBufferString(`{"name":"Srajca","unit":"kos","price":5,"vatPercent":22}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var resp struct {
			Article struct {
				FinalPrice float64 `json:"finalPrice"`
			} `json:"article"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if resp.Article.FinalPrice != 6.10 {
			t.Fatalf("expected final price 6.10, got %v", resp.Article.FinalPrice)
		}
	})
}

func TestArticleHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIArticleUseCase(ctrl)
		uc.EXPECT().Update(gomock.Any(), "missing", gomock.Any()).Return(entities.Article{}, usecase.ErrArticleNotFound)
		h := NewArticleHandler(uc)

		r := gin.New()
		r.PUT("/api/articles/:id", h.Update)

		req := httptest.NewRequest(http.MethodPut, "/api/articles/missing", bytes.NewBufferString(`{"price":7}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIArticleUseCase(ctrl)
		uc.EXPECT().Update(gomock.Any(), "art-1", gomock.Any()).Return(entities.Article{ID: "art-1", Name: "Srajca", Price: 7, VATPercent: 22, FinalPrice: 8.54}, nil)
		h := NewArticleHandler(uc)

		r := gin.New()
		r.PUT("/api/articles/:id", h.Update)

		req := httptest.NewRequest(http.MethodPut, "/api/articles/art-1", bytes.NewBufferString(`{"price":7}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestArticleHandler_ListAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIArticleUseCase(ctrl)
		uc.EXPECT().List(gomock.Any()).Return([]entities.Article{{ID: "art-1"}, {ID: "art-2"}}, nil)
		h := NewArticleHandler(uc)

		r := gin.New()
		r.GET("/api/articles", h.List)

		req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if len(resp) != 2 {
			t.Fatalf("expected 2 articles, got %d", len(resp))
		}
	})

	t.Run("get not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIArticleUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Article{}, usecase.ErrArticleNotFound)
		h := NewArticleHandler(uc)

		r := gin.New()
		r.GET("/api/articles/:id", h.GetByID)

		req := httptest.NewRequest(http.MethodGet, "/api/articles/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestArticleHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIArticleUseCase(ctrl)
	uc.EXPECT().Delete(gomock.Any(), "art-1").Return(nil)
	h := NewArticleHandler(uc)

	r := gin.New()
	r.DELETE("/api/articles/:id", h.Delete)

	req := httptest.NewRequest(http.MethodDelete, "/api/articles/art-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
