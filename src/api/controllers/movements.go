package controllers

import (
	"bytes"
	"context"
	"fmt"

	"carteira/src/models"
	"carteira/src/repositories"
	"carteira/src/schemas"
	"carteira/src/services"
	"carteira/src/utils"
	redis_utils "carteira/src/utils/redis"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"
)

type MovementsControllerI interface {
	GetAllMovements(ctx context.Context, userID uuid.UUID) ([]*schemas.MovementResponse, error)
	CreateMovement(ctx context.Context, userID uuid.UUID, req *schemas.CreateMovementRequest) (*schemas.MovementResponse, error)
	UpdateMovement(ctx context.Context, userID uuid.UUID, req *schemas.UpdateMovementRequest) (*schemas.MovementResponse, error)
	DeleteMovement(ctx context.Context, userID uuid.UUID, id int) error
	ExportMovements(ctx context.Context, userID uuid.UUID) (*bytes.Buffer, error)
}

// MovementsController owns the ledger write path. Every create, update
// and delete runs together with its carteira reconciliation in one
// database transaction, so a failure anywhere leaves both untouched.
type MovementsController struct {
	DB        txBeginner
	Movements repositories.MovementRepository
	Holdings  repositories.HoldingRepository
	Stocks    repositories.StockRepository
	Portfolio *services.PortfolioService
	Cache     *redis_utils.RedisHandler
}

func NewMovementsController(
	db txBeginner,
	movements repositories.MovementRepository,
	holdings repositories.HoldingRepository,
	stocks repositories.StockRepository,
	portfolio *services.PortfolioService,
	cache *redis_utils.RedisHandler,
) *MovementsController {
	return &MovementsController{
		DB:        db,
		Movements: movements,
		Holdings:  holdings,
		Stocks:    stocks,
		Portfolio: portfolio,
		Cache:     cache,
	}
}

func (c *MovementsController) GetAllMovements(ctx context.Context, userID uuid.UUID) ([]*schemas.MovementResponse, error) {
	movements, err := c.Movements.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responses := make([]*schemas.MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = movementResponse(&m.Movement, m.Ticker)
	}
	return responses, nil
}

func (c *MovementsController) CreateMovement(ctx context.Context, userID uuid.UUID, req *schemas.CreateMovementRequest) (*schemas.MovementResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}
	if err := c.checkStockExists(ctx, req.StockID); err != nil {
		return nil, err
	}

	movement := &models.Movement{
		UserID:    userID,
		StockID:   req.StockID,
		Date:      req.ParsedDate(),
		Kind:      req.Kind,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	}
	movement.ComputeTotalValue()

	tx, err := c.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if movement.Kind == models.MovementSell {
		if err := c.snapshotSell(ctx, tx, movement); err != nil {
			return nil, err
		}
	}

	if err := c.Movements.Create(ctx, movement, tx); err != nil {
		return nil, err
	}
	if err := c.Portfolio.Apply(ctx, tx, movement); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	c.invalidateDashboard(userID)
	return movementResponse(movement, ""), nil
}

func (c *MovementsController) UpdateMovement(ctx context.Context, userID uuid.UUID, req *schemas.UpdateMovementRequest) (*schemas.MovementResponse, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, utils.NewValidationError(fields)
	}

	old, err := c.Movements.GetByID(ctx, req.ID, userID)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, utils.NotFound("Movimentação não encontrada")
	}
	if err := c.checkStockExists(ctx, req.StockID); err != nil {
		return nil, err
	}

	updated := &models.Movement{
		ID:        old.ID,
		UserID:    userID,
		StockID:   req.StockID,
		Date:      req.ParsedDate(),
		Kind:      req.Kind,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	}
	updated.ComputeTotalValue()

	tx, err := c.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// The old effect comes off first; the new values are then validated
	// and applied against the reversed state. Rolling back on any
	// failure keeps the half-reversed carteira from ever being visible.
	if err := c.Portfolio.Reverse(ctx, tx, old); err != nil {
		return nil, err
	}
	if updated.Kind == models.MovementSell {
		if err := c.snapshotSell(ctx, tx, updated); err != nil {
			return nil, err
		}
	}

	if err := c.Movements.Update(ctx, updated, tx); err != nil {
		return nil, err
	}
	if err := c.Portfolio.Apply(ctx, tx, updated); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	c.invalidateDashboard(userID)
	return movementResponse(updated, ""), nil
}

func (c *MovementsController) DeleteMovement(ctx context.Context, userID uuid.UUID, id int) error {
	movement, err := c.Movements.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}
	if movement == nil {
		return utils.NotFound("Movimentação não encontrada")
	}

	tx, err := c.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := c.Portfolio.Reverse(ctx, tx, movement); err != nil {
		return err
	}
	if err := c.Movements.Delete(ctx, movement.ID, tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	c.invalidateDashboard(userID)
	return nil
}

// ExportMovements writes the owner's ledger to an XLSX workbook.
func (c *MovementsController) ExportMovements(ctx context.Context, userID uuid.UUID) (*bytes.Buffer, error) {
	movements, err := c.Movements.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := "Movimentações"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []interface{}{"Data", "Ação", "Tipo", "Preço", "Quantidade", "Valor Total", "Preço Médio Venda"}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, m := range movements {
		row := []interface{}{
			m.Date.Format("2006-01-02"),
			m.Ticker,
			m.Kind,
			m.UnitPrice.InexactFloat64(),
			m.Quantity,
			m.TotalValue.InexactFloat64(),
			m.AvgSellPrice.InexactFloat64(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return file.WriteToBuffer()
}

// snapshotSell enforces the sell business rules against the holding as
// seen inside the open transaction and records the average cost the
// realized result will later be computed from.
func (c *MovementsController) snapshotSell(ctx context.Context, tx pgx.Tx, m *models.Movement) error {
	holding, err := c.Holdings.GetByUserAndStock(ctx, m.UserID, m.StockID, tx)
	if err != nil {
		return err
	}
	if holding == nil {
		return utils.NewValidationError(map[string]string{
			"stock_id": "Não existe a ação em carteira para venda!",
		})
	}
	if m.Quantity > holding.Quantity {
		return utils.NewValidationError(map[string]string{
			"quantity": "Quantidade em carteira é menor que a de venda!",
		})
	}
	m.AvgSellPrice = holding.AverageCost
	return nil
}

func (c *MovementsController) checkStockExists(ctx context.Context, stockID int) error {
	stock, err := c.Stocks.GetByID(ctx, stockID)
	if err != nil {
		return err
	}
	if stock == nil {
		return utils.NewValidationError(map[string]string{
			"stock_id": "Ação não cadastrada",
		})
	}
	return nil
}

func (c *MovementsController) invalidateDashboard(userID uuid.UUID) {
	if c.Cache == nil {
		return
	}
	_ = c.Cache.Delete(redis_utils.DashboardKey(userID.String()))
}

func movementResponse(m *models.Movement, ticker string) *schemas.MovementResponse {
	return &schemas.MovementResponse{
		ID:           m.ID,
		StockID:      m.StockID,
		Ticker:       ticker,
		Date:         m.Date.Format("2006-01-02"),
		Kind:         m.Kind,
		UnitPrice:    m.UnitPrice,
		Quantity:     m.Quantity,
		TotalValue:   m.TotalValue,
		AvgSellPrice: m.AvgSellPrice,
	}
}
