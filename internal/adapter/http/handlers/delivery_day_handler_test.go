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

func TestDeliveryDayHandler_Save(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDeliveryDayUseCase(ctrl)
		h := NewDeliveryDayHandler(uc)

		r := gin.New()
		r.POST("/api/delivery-day", h.Save)

		req := httptest.NewRequest(http.MethodPost, "/api/delivery-day", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("bad date maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDeliveryDayUseCase(ctrl)
		uc.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.DeliveryDay{}, usecase.ErrInvalidDeliveryDate)
		h := NewDeliveryDayHandler(uc)

		r := gin.New()
		r.POST("/api/delivery-day", h.Save)

		req := httptest.NewRequest(http.MethodPost, "/api/delivery-day", bytes.NewBufferString(`{"date":"30.08.2026"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success replaces the record", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDeliveryDayUseCase(ctrl)
		uc.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in usecase.DeliveryDayInput) (entities.DeliveryDay, error) {
				if in.Date != "2026-08-30" {
					t.Fatalf("expected date 2026-08-30, got %s", in.Date)
				}
				return entities.DeliveryDay{Date: in.Date, Kilometers: in.Kilometers, Minutes: in.Minutes, OrderIDs: in.OrderIDs}, nil
			})
		h := NewDeliveryDayHandler(uc)

		r := gin.New()
		r.POST("/api/delivery-day", h.Save)

		body := `{"date":"2026-08-30","kilometers":12.5,"minutes":45,"orderIds":["ord-1","ord-2"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/delivery-day", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp struct {
			DeliveryDay struct {
				Date     string   `json:"date"`
				OrderIDs []string `json:"orderIds"`
			} `json:"deliveryDay"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unexpected unmarshal error: %v", err)
		}
		if resp.DeliveryDay.Date != "2026-08-30" || len(resp.DeliveryDay.OrderIDs) != 2 {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})
}

func TestDeliveryDayHandler_GetByDate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDeliveryDayUseCase(ctrl)
		uc.EXPECT().GetByDate(gomock.Any(), "2026-08-31").Return(entities.DeliveryDay{}, usecase.ErrDeliveryDayNotFound)
		h := NewDeliveryDayHandler(uc)

		r := gin.New()
		r.GET("/api/delivery-day/:date", h.GetByDate)

		req := httptest.NewRequest(http.MethodGet, "/api/delivery-day/2026-08-31", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIDeliveryDayUseCase(ctrl)
		uc.EXPECT().GetByDate(gomock.Any(), "2026-08-30").Return(entities.DeliveryDay{Date: "2026-08-30", Kilometers: 12.5}, nil)
		h := NewDeliveryDayHandler(uc)

		r := gin.New()
		r.GET("/api/delivery-day/:date", h.GetByDate)

		req := httptest.NewRequest(http.MethodGet, "/api/delivery-day/2026-08-30", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestDeliveryDayHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIDeliveryDayUseCase(ctrl)
	uc.EXPECT().List(gomock.Any()).Return([]entities.DeliveryDay{{Date: "2026-08-30"}, {Date: "2026-08-29"}}, nil)
	h := NewDeliveryDayHandler(uc)

	r := gin.New()
	r.GET("/api/delivery-day", h.List)

	req := httptest.NewRequest(http.MethodGet, "/api/delivery-day", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected unmarshal error: %v", err)
	}
	if len(resp) != 2 || resp[0].Date != "2026-08-30" {
		t.Fatalf("unexpected listing: %+v", resp)
	}
}
