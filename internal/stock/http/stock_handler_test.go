package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/allisson/deliveryqueue/internal/catalog/domain"
	"github.com/allisson/deliveryqueue/internal/stock/domain"
	"github.com/allisson/deliveryqueue/internal/stock/http/dto"
	"github.com/allisson/deliveryqueue/internal/stock/usecase"
	"github.com/allisson/deliveryqueue/internal/stock/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*StockItemHandler, *mocks.MockStockItemUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockStockItemUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewStockItemHandler(mockUseCase, logger), mockUseCase
}

// createTestContext creates a test Gin context with the given request.
func createTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func newTestItem(quantity int) *domain.StockItem {
	now := time.Now().UTC()
	return &domain.StockItem{
		ID:          uuid.Must(uuid.NewV7()),
		ProductID:   uuid.Must(uuid.NewV7()),
		ProductName: "Mesa",
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestStockItemHandler_CreateHandler(t *testing.T) {
	t.Run("Success_EmbedsProduct", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		item := newTestItem(0)
		zero := 0

		mockUseCase.On("Create", mock.Anything, usecase.CreateStockItemInput{ProductRef: "Mesa", Quantity: &zero}).
			Return(item, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/stock", map[string]any{"productRef": "Mesa", "quantity": 0})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.StockItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, item.ProductID.String(), response.Product.ID)
		assert.Equal(t, "Mesa", response.Product.Name)
		assert.Equal(t, 0, response.Quantity)
	})

	t.Run("Error_MissingQuantity", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/stock", map[string]any{"productRef": "Mesa"})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UnknownProduct", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).Return(nil, catalogDomain.ErrProductNotFound).Once()

		c, w := createTestContext(http.MethodPost, "/v1/stock", map[string]any{"productRef": "Sofa", "quantity": 1})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStockItemHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		item := newTestItem(3)

		mockUseCase.On("Get", mock.Anything, item.ID).Return(item, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/stock/"+item.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: item.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/stock/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, id).Return(nil, domain.ErrStockItemNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/stock/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStockItemHandler_ListHandler(t *testing.T) {
	handler, mockUseCase := setupTestHandler(t)
	items := []*domain.StockItem{newTestItem(1), newTestItem(2)}

	mockUseCase.On("List", mock.Anything, 0, 50).Return(items, nil).Once()

	c, w := createTestContext(http.MethodGet, "/v1/stock", nil)
	handler.ListHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.ListStockItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)
}

func TestStockItemHandler_UpdateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		item := newTestItem(8)
		eight := 8

		mockUseCase.On("Update", mock.Anything, item.ID, usecase.UpdateStockItemInput{Quantity: &eight}).
			Return(item, nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/stock/"+item.ID.String(), map[string]any{"quantity": 8})
		c.Params = gin.Params{{Key: "id", Value: item.ID.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_EmptyBody", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		c, w := createTestContext(http.MethodPut, "/v1/stock/"+id.String(), map[string]any{})
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestStockItemHandler_DeleteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, id).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/stock/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, id).Return(domain.ErrStockItemNotFound).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/stock/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.DeleteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
