package handler

import (
	"net/http"
	"smartsub/internal/dto"
	"smartsub/internal/middleware"
	"smartsub/internal/service"

	"github.com/labstack/echo/v4"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

func (h *PurchaseHandler) BuySub(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	var req dto.BuySubRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	buyer := middleware.CallerAddress(c)

	expiresAt, err := h.purchaseService.BuySub(ctx, buyer, id, req.AmountWei)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PurchaseResponse{
		SubscriptionID: id,
		ExpiresAt:      expiresAt,
	})
}

func (h *PurchaseHandler) GiftSub(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	var req dto.GiftSubRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payer := middleware.CallerAddress(c)

	expiresAt, err := h.purchaseService.GiftSub(ctx, payer, req.Recipient, id, req.AmountWei)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.PurchaseResponse{
		SubscriptionID: id,
		ExpiresAt:      expiresAt,
	})
}

func (h *PurchaseHandler) GetUserSub(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	expiresAt, err := h.purchaseService.UserSubExpiry(ctx, c.Param("address"), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.UserSubResponse{
		ExpiresAt: expiresAt,
	})
}

func (h *PurchaseHandler) IsUserSubscribed(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	subscribed, err := h.purchaseService.IsUserSubscribed(ctx, c.Param("address"), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.SubscribedResponse{
		Subscribed: subscribed,
	})
}

func (h *PurchaseHandler) GetActiveSubs(c echo.Context) error {
	ctx := c.Request().Context()

	active, err := h.purchaseService.GetActiveSubs(ctx, c.Param("address"))
	if err != nil {
		return err
	}

	resp := dto.ActiveSubsResponse{
		Titles:      make([]string, len(active)),
		IDs:         make([]uint64, len(active)),
		Expirations: make([]int64, len(active)),
	}
	for i, row := range active {
		resp.Titles[i] = row.Title
		resp.IDs[i] = row.SubscriptionID
		resp.Expirations[i] = row.ExpiresAt
	}

	return c.JSON(http.StatusOK, resp)
}
