package handler

import (
	"net/http"
	"smartsub/internal/dto"
	"smartsub/internal/middleware"
	"smartsub/internal/service"

	"github.com/labstack/echo/v4"
)

type BalanceHandler struct {
	balanceService service.BalanceService
}

func NewBalanceHandler(balanceService service.BalanceService) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

func (h *BalanceHandler) ViewBalance(c echo.Context) error {
	ctx := c.Request().Context()

	amount, err := h.balanceService.ViewBalance(ctx, middleware.CallerAddress(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.BalanceResponse{
		AmountWei: amount,
	})
}

func (h *BalanceHandler) WithdrawBalance(c echo.Context) error {
	ctx := c.Request().Context()

	amount, payoutRef, err := h.balanceService.WithdrawBalance(ctx, middleware.CallerAddress(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.WithdrawResponse{
		AmountWei: amount,
		PayoutRef: payoutRef,
	})
}

func (h *BalanceHandler) PaymentHistory(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.balanceService.PaymentHistory(ctx, middleware.CallerAddress(c))
	if err != nil {
		return err
	}

	records := make([]dto.PaymentRecord, len(payments))
	for i, p := range payments {
		records[i] = dto.PaymentRecord{
			Kind:           string(p.Kind),
			Payer:          p.Payer,
			Beneficiary:    p.Beneficiary,
			SubscriptionID: p.SubscriptionID,
			AmountWei:      p.AmountWei,
			PayoutRef:      p.PayoutRef,
			CreatedAt:      p.CreatedAt.Unix(),
		}
	}

	return c.JSON(http.StatusOK, records)
}
