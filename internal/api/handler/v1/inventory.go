package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/supply-chain-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/supply-chain-api/internal/domain"
	"github.com/vietanh2810/supply-chain-api/internal/service"
)

type InventoryService interface {
	AddStock(ctx context.Context, productID string, quantity decimal.Decimal) (domain.StockRecord, error)
	RecordSale(ctx context.Context, productID string, quantity decimal.Decimal, date time.Time) (domain.SaleRecord, error)
	ListStocks(ctx context.Context) ([]domain.StockRecord, error)
}

type AnalysisService interface {
	AnalyzeInventory(ctx context.Context) (domain.InventoryAnalysis, error)
	InventoryData(ctx context.Context) (domain.InventoryData, error)
}

type InventoryHandler struct {
	svc      InventoryService
	analysis AnalysisService
}

func NewInventoryHandler(svc InventoryService, analysis AnalysisService) *InventoryHandler {
	return &InventoryHandler{
		svc:      svc,
		analysis: analysis,
	}
}

// HandleAddStock godoc
// @Summary      Add stock
// @Description  Creates the product's stock record or adds to it.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request   body      request.AddStockRequest true "request body"
// @Success      201      {object}   response.StockResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /stocks [post]
// @Security     BearerAuth
func (h *InventoryHandler) HandleAddStock(ctx *gin.Context) {
	if _, ok := authorize(ctx, domain.RoleManager); !ok {
		return
	}

	var req request.AddStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	stock, err := h.svc.AddStock(ctx.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		response.RenderErr(ctx, inventoryErr(fmt.Errorf("v1.HandleAddStock -> h.svc.AddStock -> %w", err), req.ProductID))
		return
	}

	ctx.JSON(http.StatusCreated, response.StockResponse{
		Message: "stock added successfully",
		Stock:   stock,
	})
}

// HandleListStocks godoc
// @Summary      List stock levels
// @Tags         inventory
// @Produce      json
// @Success      200      {array}    domain.StockRecord
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /stocks [get]
// @Security     BearerAuth
func (h *InventoryHandler) HandleListStocks(ctx *gin.Context) {
	if _, ok := authorize(ctx); !ok {
		return
	}

	stocks, err := h.svc.ListStocks(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, storeFailure(fmt.Errorf("v1.HandleListStocks -> h.svc.ListStocks -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, stocks)
}

// HandleRecordSale godoc
// @Summary      Record a sale
// @Description  Stores the sale and decrements the product's stock in one transaction.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request   body      request.RecordSaleRequest true "request body"
// @Success      201      {object}   response.SaleResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /sales [post]
// @Security     BearerAuth
func (h *InventoryHandler) HandleRecordSale(ctx *gin.Context) {
	if _, ok := authorize(ctx, domain.RoleManager, domain.RoleCustomer); !ok {
		return
	}

	var req request.RecordSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	sale, err := h.svc.RecordSale(ctx.Request.Context(), req.ProductID, req.Quantity, req.SaleDate())
	if err != nil {
		response.RenderErr(ctx, inventoryErr(fmt.Errorf("v1.HandleRecordSale -> h.svc.RecordSale -> %w", err), req.ProductID))
		return
	}

	ctx.JSON(http.StatusCreated, response.SaleResponse{
		Message: "sale recorded successfully",
		Sale:    sale,
	})
}

// HandleInventoryAnalysis godoc
// @Summary      Inventory analysis
// @Description  Stock and sales series plus an AI-written narrative. When only the narrative fails the series are still returned with analysis_error set.
// @Tags         inventory
// @Produce      json
// @Success      200      {object}   response.AnalysisResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /inventory/analysis [get]
// @Security     BearerAuth
func (h *InventoryHandler) HandleInventoryAnalysis(ctx *gin.Context) {
	if _, ok := authorize(ctx, domain.RoleManager); !ok {
		return
	}

	analysis, err := h.analysis.AnalyzeInventory(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, analysisErr(fmt.Errorf("v1.HandleInventoryAnalysis -> h.analysis.AnalyzeInventory -> %w", err)))
		return
	}

	resp := response.AnalysisResponse{InventoryAnalysis: analysis}
	if !analysis.NarrativeAvailable {
		resp.AnalysisError = "analysis generation failed"
	}

	ctx.JSON(http.StatusOK, resp)
}

// HandleInventoryData godoc
// @Summary      Inventory chart data
// @Tags         inventory
// @Produce      json
// @Success      200      {object}   domain.InventoryData
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Failure      503      {object}   response.Err
// @Router       /inventory/data [get]
// @Security     BearerAuth
func (h *InventoryHandler) HandleInventoryData(ctx *gin.Context) {
	if _, ok := authorize(ctx); !ok {
		return
	}

	data, err := h.analysis.InventoryData(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, analysisErr(fmt.Errorf("v1.HandleInventoryData -> h.analysis.InventoryData -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, data)
}

func inventoryErr(err error, productID string) *response.Err {
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		return response.ErrBadRequest(service.ErrInvalidQuantity)
	case errors.Is(err, service.ErrInvalidProductID):
		return response.ErrBadRequest(service.ErrInvalidProductID)
	case errors.Is(err, service.ErrProductNotFound):
		return response.ErrNotFound("stock", "product_id", productID)
	case errors.Is(err, service.ErrInsufficientStock):
		return response.ErrConflict(err, "insufficient stock")
	case errors.Is(err, service.ErrStoreUnavailable):
		return response.ErrServiceUnavailable(err, "inventory store unavailable")
	default:
		return response.ErrInternalServerError(err)
	}
}

func analysisErr(err error) *response.Err {
	if errors.Is(err, service.ErrStoreUnavailable) {
		return response.ErrServiceUnavailable(err, "inventory analysis failed")
	}

	return &response.Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error",
		ErrorText:      "inventory analysis failed",
	}
}
