package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ims/backend/internal/interfaces/http/dto"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError(t *testing.T) {
	type receiptRequest struct {
		ProductID string `json:"product_id" binding:"required,uuid"`
		Quantity  int64  `json:"quantity" binding:"required,gt=0"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/receipts", func(c *gin.Context) {
		var req receiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})

	t.Run("invalid input reports json field names", func(t *testing.T) {
		body := strings.NewReader(`{"product_id": "not-a-uuid", "quantity": -3}`)
		req := httptest.NewRequest("POST", "/receipts", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
		require.Len(t, resp.Error.Details, 2)
		assert.Equal(t, "product_id", resp.Error.Details[0].Field)
		assert.Equal(t, "Invalid UUID format", resp.Error.Details[0].Message)
		assert.Equal(t, "quantity", resp.Error.Details[1].Field)
	})

	t.Run("valid input passes", func(t *testing.T) {
		body := strings.NewReader(`{"product_id": "0f8fad5b-d9cb-469f-a165-70867728950e", "quantity": 5}`)
		req := httptest.NewRequest("POST", "/receipts", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMovementTypeValidation(t *testing.T) {
	type movementQuery struct {
		Type string `form:"type" binding:"omitempty,movementtype"`
	}

	SetupValidator()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/movements", func(c *gin.Context) {
		var q movementQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(q.Type))
	})

	for _, valid := range []string{"IN", "OUT", "ADJUSTMENT", ""} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/movements?type="+valid, nil))
		assert.Equal(t, http.StatusOK, w.Code, "type %q should be accepted", valid)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/movements?type=TRANSFER", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "valid movement type")
}
