// Package handler はstockフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"warehouse_backend/internal/feature/stock/domain"
	"warehouse_backend/internal/feature/stock/domain/entity"
	"warehouse_backend/internal/feature/stock/transport/http/dto"
)

// StockUsecase は入出庫と一覧取得のユースケースを定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StockUsecase interface {
	StockIn(ctx context.Context, m entity.Movement) (*entity.HistoryEntry, error)
	StockOut(ctx context.Context, m entity.Movement) (*entity.HistoryEntry, error)
	ListStockItems(ctx context.Context) ([]entity.StockItem, error)
	ListHistory(ctx context.Context) ([]entity.HistoryEntry, error)
}

// StockHandler は在庫に関するHTTPリクエストを処理します。
type StockHandler struct {
	uc StockUsecase
}

// NewStockHandler は新しい StockHandler を作成します。
func NewStockHandler(uc StockUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// StockIn は入庫フォームの送信を処理します。
// - バインド失敗時は400を返却
// - 成功時は履歴の参照IDと共に200を返却
func (h *StockHandler) StockIn(c *gin.Context) {
	var req dto.StockInReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("stock-in validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	entry, err := h.uc.StockIn(c.Request.Context(), entity.Movement{
		PartyName:         req.SupplierName,
		Address:           req.Address,
		ContactNumber:     req.ContactNumber,
		CompanyName:       req.CompanyName,
		ItemName:          req.ItemName,
		Quantity:          req.Quantity,
		UnitOfMeasurement: req.UnitOfMeasurement,
		Date:              req.Date,
		Timestamp:         req.Timestamp,
	})
	if err != nil {
		writeMovementError(c, "stock-in", err)
		return
	}
	c.JSON(http.StatusOK, dto.MovementRes{Message: "Submission successful.", Reference: entry.Reference})
}

// StockOut は出庫フォームの送信を処理します。
// - 未登録の品目は404、在庫不足は409を返却
func (h *StockHandler) StockOut(c *gin.Context) {
	var req dto.StockOutReq
	if err := c.ShouldBind(&req); err != nil {
		slog.Warn("stock-out validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	entry, err := h.uc.StockOut(c.Request.Context(), entity.Movement{
		PartyName:         req.CustomerName,
		Address:           req.Address,
		ContactNumber:     req.ContactNumber,
		CompanyName:       req.CompanyName,
		ItemName:          req.ItemName,
		Quantity:          req.Quantity,
		UnitOfMeasurement: req.UnitOfMeasurement,
		Date:              req.Date,
		Timestamp:         req.Timestamp,
	})
	if err != nil {
		writeMovementError(c, "stock-out", err)
		return
	}
	c.JSON(http.StatusOK, dto.MovementRes{Message: "Submission successful.", Reference: entry.Reference})
}

// ListItems は在庫一覧を返します。
func (h *StockHandler) ListItems(c *gin.Context) {
	items, err := h.uc.ListStockItems(c.Request.Context())
	if err != nil {
		slog.Error("failed to fetch stock items", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stock items."})
		return
	}
	out := make([]dto.StockItem, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockItem{
			ID:                it.ID,
			ItemName:          it.ItemName,
			Quantity:          it.Quantity,
			UnitOfMeasurement: it.UnitOfMeasurement,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListHistory は入出庫履歴を発生順に返します。
func (h *StockHandler) ListHistory(c *gin.Context) {
	entries, err := h.uc.ListHistory(c.Request.Context())
	if err != nil {
		slog.Error("failed to fetch history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching history data."})
		return
	}
	out := make([]dto.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.HistoryEntry{
			ID:                e.ID,
			Reference:         e.Reference,
			TransactionType:   string(e.TransactionType),
			Name:              e.Name,
			Address:           e.Address,
			ContactNumber:     e.ContactNumber,
			CompanyName:       e.CompanyName,
			ItemName:          e.ItemName,
			Quantity:          e.Quantity,
			UnitOfMeasurement: e.UnitOfMeasurement,
			Date:              e.Date,
			Timestamp:         e.Timestamp,
		})
	}
	c.JSON(http.StatusOK, out)
}

// writeMovementError はユースケースのエラーをHTTPステータスとメッセージに変換します。
func writeMovementError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrItemNotFound):
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found in stock."})
	case errors.Is(err, domain.ErrInsufficientStock):
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock available."})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission failed. Please try again later."})
	}
}
