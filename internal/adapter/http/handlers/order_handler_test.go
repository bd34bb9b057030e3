package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cistilnica/internal/adapter/http/handlers/mocks"
	"cistilnica/internal/domain/entities"
	"cistilnica/internal/usecase"
	"cistilnica/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func sampleOrder() entities.Order {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return entities.Order{
		ID:          "ord-1",
		OrderNumber: "2026-08-001",
		Name:        "Ana Novak",
		Service:     "čiščenje",
		PickupMode:  entities.PickupModePersonal,
		Status:      entities.OrderStatusNaroceno,
		StatusHistory: []entities.StatusChange{
			{Status: entities.OrderStatusNaroceno, Timestamp: now},
		},
		Items: []entities.OrderItem{
			{ArticleID: "art-1", Name: "Srajca", Unit: "kos", Price: 5, VATPercent: 22, FinalPrice: 6.10, Quantity: 3, LineTotal: 18.30},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/order", h.Create)

		req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("invalid email maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Order{}, usecase.ErrInvalidEmail)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/order", h.Create)

		req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewBufferString(`{"name":"Ana","email":"not-an-email"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(sampleOrder(), nil)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.POST("/order", h.Create)

		body := `{"name":"Ana Novak","service":"čiščenje","items":[{"articleId":"art-1","quantity":3}]}`
		req := httptest.NewRequest(http.MethodPost, "/order", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var resp struct {
			Message string `json:"message"`
			Order   struct {
				OrderNumber string  `json:"orderNumber"`
				Total       float64 `json:"total"`
			} `json:"order"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if resp.Order.OrderNumber != "2026-08-001" {
			t.Fatalf("expected order number 2026-08-001, got %s", resp.Order.OrderNumber)
		}
		if resp.Order.Total != 18.30 {
			t.Fatalf("expected total 18.30, got %v", resp.Order.Total)
		}
	})
}

func TestOrderHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Order{}, usecase.ErrOrderNotFound)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/order/:id", h.GetByID)

		req := httptest.NewRequest(http.MethodGet, "/order/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/order/:id", h.GetByID)

		req := httptest.NewRequest(http.MethodGet, "/order/ord-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			ID            string `json:"id"`
			StatusHistory []struct {
				Status string `json:"status"`
			} `json:"statusHistory"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if resp.ID != "ord-1" {
			t.Fatalf("expected id ord-1, got %s", resp.ID)
		}
		if len(resp.StatusHistory) != 1 || resp.StatusHistory[0].Status != "Naročeno" {
			t.Fatalf("unexpected status history: %+v", resp.StatusHistory)
		}
	})
}

func TestOrderHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.PUT("/order/:id", h.Update)

		req := httptest.NewRequest(http.MethodPut, "/order/ord-1", bytes.NewBufferString("not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("version conflict maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).Return(entities.Order{}, interfaces.ErrVersionConflict)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.PUT("/order/:id", h.Update)

		req := httptest.NewRequest(http.MethodPut, "/order/ord-1", bytes.NewBufferString(`{"name":"Ana"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		updated := sampleOrder()
		updated.Name = "Ana Kovač"
		uc.EXPECT().Update(gomock.Any(), "ord-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, upd usecase.OrderUpdate) (entities.Order, error) {
				if upd.Name == nil || *upd.Name != "Ana Kovač" {
					t.Fatalf("expected name update, got %+v", upd.Name)
				}
				if upd.Service != nil {
					t.Fatalf("expected absent service to stay nil")
				}
				return updated, nil
			})
		h := NewOrderHandler(uc)

		r := gin.New()
		r.PUT("/order/:id", h.Update)

		req := httptest.NewRequest(http.MethodPut, "/order/ord-1", bytes.NewBufferString(`{"name":"Ana Kovač"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.PATCH("/order/:id/status", h.UpdateStatus)

		req := httptest.NewRequest(http.MethodPatch, "/order/ord-1/status", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown status maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().UpdateStatus(gomock.Any(), "ord-1", entities.OrderStatus("Izmišljeno")).
			Return(entities.Order{}, usecase.ErrInvalidStatus)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.PATCH("/order/:id/status", h.UpdateStatus)

		req := httptest.NewRequest(http.MethodPatch, "/order/ord-1/status", bytes.NewBufferString(`{"status":"Izmišljeno"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		accepted := sampleOrder()
		accepted.Status = entities.OrderStatusSprejeto
		uc.EXPECT().UpdateStatus(gomock.Any(), "ord-1", entities.OrderStatusSprejeto).Return(accepted, nil)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.PATCH("/order/:id/status", h.UpdateStatus)

		req := httptest.NewRequest(http.MethodPatch, "/order/ord-1/status", bytes.NewBufferString(`{"status":"Sprejeto"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestOrderHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Order{}, usecase.ErrOrderNotFound)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.DELETE("/order/:id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/order/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success returns deleted order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "ord-1").Return(sampleOrder(), nil)
		uc.EXPECT().Delete(gomock.Any(), "ord-1").Return(nil)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.DELETE("/order/:id", h.Delete)

		req := httptest.NewRequest(http.MethodDelete, "/order/ord-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			Message string `json:"message"`
			Order   struct {
				ID string `json:"id"`
			} `json:"order"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if resp.Order.ID != "ord-1" {
			t.Fatalf("expected deleted order in body, got %+v", resp)
		}
	})
}

func TestOrderHandler_Listings(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().ListActive(gomock.Any()).Return([]entities.Order{sampleOrder()}, nil)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/orders", h.ListActive)

		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
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
		if len(resp) != 1 || resp[0].ID != "ord-1" {
			t.Fatalf("unexpected listing: %+v", resp)
		}
	})

	t.Run("archive propagates repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().ListArchive(gomock.Any()).Return(nil, errors.New("scan failed"))
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/api/archive", h.ListArchive)

		req := httptest.NewRequest(http.MethodGet, "/api/archive", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("completed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().ListCompleted(gomock.Any()).Return([]entities.Order{}, nil)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/api/completed", h.ListCompleted)

		req := httptest.NewRequest(http.MethodGet, "/api/completed", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != "[]" {
			t.Fatalf("expected empty array body, got %s", w.Body.String())
		}
	})

	t.Run("delivery", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIOrderUseCase(ctrl)
		uc.EXPECT().ListDelivery(gomock.Any()).Return([]entities.Order{sampleOrder()}, nil)
		h := NewOrderHandler(uc)

		r := gin.New()
		r.GET("/api/delivery", h.ListDelivery)

		req := httptest.NewRequest(http.MethodGet, "/api/delivery", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}
