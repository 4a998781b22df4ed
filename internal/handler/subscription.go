package handler

import (
	"net/http"
	"smartsub/internal/dto"
	"smartsub/internal/middleware"
	"smartsub/internal/model"
	"smartsub/internal/service"
	"strconv"

	"github.com/labstack/echo/v4"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

func (h *SubscriptionHandler) CreateSub(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateSubRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	owner := middleware.CallerAddress(c)

	id, err := h.subscriptionService.CreateSub(ctx, owner, req.Title, req.DurationSeconds, req.PriceWei, req.ActivateImmediately)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.CreateSubResponse{
		ID: id,
	})
}

func (h *SubscriptionHandler) GetSub(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	sub, exists, err := h.subscriptionService.GetSub(ctx, id)
	if err != nil {
		return err
	}

	if !exists {
		// never-created IDs read back as the zero record
		return c.JSON(http.StatusOK, dto.SubRecord{Exists: false})
	}

	return c.JSON(http.StatusOK, dto.SubRecord{
		Exists:          true,
		ID:              sub.ID,
		Title:           sub.Title,
		DurationSeconds: sub.DurationSeconds,
		PriceWei:        sub.PriceWei,
		Owner:           sub.Owner,
		State:           string(sub.State),
	})
}

func (h *SubscriptionHandler) IsSubActive(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	active, err := h.subscriptionService.IsSubActive(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"active": active,
	})
}

func (h *SubscriptionHandler) ActivateSub(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	if err := h.subscriptionService.ActivateSub(ctx, middleware.CallerAddress(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"state": string(model.StateActive),
	})
}

func (h *SubscriptionHandler) PauseSub(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	if err := h.subscriptionService.PauseSub(ctx, middleware.CallerAddress(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"state": string(model.StatePaused),
	})
}

func (h *SubscriptionHandler) SetSubPrice(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	var req dto.SetPriceRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	caller := middleware.CallerAddress(c)

	if err := h.subscriptionService.SetSubPrice(ctx, caller, id, req.PriceWei); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]uint64{
		"price_wei": req.PriceWei,
	})
}

func (h *SubscriptionHandler) SetSubDuration(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := subID(c)
	if err != nil {
		return err
	}

	var req dto.SetDurationRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	caller := middleware.CallerAddress(c)

	if err := h.subscriptionService.SetSubDuration(ctx, caller, id, req.DurationSeconds); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]uint64{
		"duration_seconds": req.DurationSeconds,
	})
}

// subID parses the :id route param. 0 is reserved for "does not exist" and
// is still parseable here; lookups on it simply find nothing.
func subID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid subscription id")
	}
	return id, nil
}
