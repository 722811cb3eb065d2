package handler

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/pricepulse-server/internal/service/api/auth"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/httputil"
	"github.com/darkkaiser/pricepulse-server/internal/service/api/v1/model/request"
	"github.com/darkkaiser/pricepulse-server/internal/service/extract"
	"github.com/darkkaiser/pricepulse-server/internal/service/watch"
	applog "github.com/darkkaiser/pricepulse-server/pkg/log"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const errMsgItemNotFound = "감시 상품을 찾을 수 없습니다"

// CreateItemHandler 새로운 감시 상품을 등록합니다.
//
// 상품명이 생략된 경우 상품 페이지에서 즉시 추출을 시도하며,
// 추출에 실패하더라도 등록 자체는 진행합니다. (상품명은 이후 가격 확인 시 채워집니다)
func (h *Handler) CreateItemHandler(c echo.Context) error {
	var req request.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError("요청 본문의 형식이 올바르지 않습니다")
	}
	if err := validateRequest(&req); err != nil {
		return httputil.NewBadRequestError(err.Error())
	}

	application := auth.MustGetApplication(c)

	normalizedURL, err := extract.NormalizeURL(req.URL)
	if err != nil {
		return httputil.NewBadRequestError(err.Error())
	}

	item := watch.NewItem(application.ID, normalizedURL, req.TargetPrice)
	item.ProductName = req.ProductName
	item.AddedBy = req.AddedBy
	if req.FrequencyMinutes > 0 {
		item.FrequencyMinutes = req.FrequencyMinutes
	}
	if req.NotificationChannel != "" {
		item.NotificationChannel = req.NotificationChannel
	}
	item.NotificationEmail = req.NotificationEmail

	if item.ProductName == "" {
		result, err := h.extractor.Extract(c.Request().Context(), item.URL)
		if err != nil {
			applog.WithComponentAndFields(component, log.Fields{
				"item_id": item.ItemID,
				"url":     item.URL,
				"error":   err,
			}).Warn("상품명 추출에 실패하여 상품명 없이 등록을 진행합니다")
		} else {
			item.ProductName = result.ProductName
			item.LastPrice = result.CurrentPrice
			item.CurrencyCode = result.CurrencyCode
		}
	}

	if err := h.store.Save(item); err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"item_id": item.ItemID,
			"error":   err,
		}).Error("감시 상품 저장이 실패하였습니다")

		return httputil.NewInternalServerError("감시 상품 저장이 실패하였습니다")
	}

	applog.WithComponentAndFields(component, log.Fields{
		"item_id":      item.ItemID,
		"user_id":      item.UserID,
		"url":          item.URL,
		"target_price": item.TargetPrice,
	}).Info("감시 상품이 등록되었습니다")

	return c.JSON(http.StatusCreated, item)
}

// ListItemsHandler 감시 상품 목록을 반환합니다.
//
// user_id 쿼리 파라미터가 지정되면 해당 사용자의 상품만 반환하고,
// 생략되면 인증된 애플리케이션이 등록한 상품을 반환합니다.
func (h *Handler) ListItemsHandler(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		userID = auth.MustGetApplication(c).ID
	}

	items, err := h.store.List()
	if err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"error": err,
		}).Error("감시 상품 목록 조회가 실패하였습니다")

		return httputil.NewInternalServerError("감시 상품 목록 조회가 실패하였습니다")
	}

	filtered := make([]*watch.Item, 0, len(items))
	for _, item := range items {
		if item.UserID == userID {
			filtered = append(filtered, item)
		}
	}

	return c.JSON(http.StatusOK, filtered)
}

// GetItemHandler 지정된 ID의 감시 상품을 반환합니다.
func (h *Handler) GetItemHandler(c echo.Context) error {
	item, err := h.loadItem(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateItemHandler 감시 상품의 일부 필드를 수정합니다.
//
// 요청 본문에 포함된 필드만 갱신되며, 나머지 필드는 기존 값을 유지합니다.
func (h *Handler) UpdateItemHandler(c echo.Context) error {
	var req request.UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return httputil.NewBadRequestError("요청 본문의 형식이 올바르지 않습니다")
	}
	if err := validateRequest(&req); err != nil {
		return httputil.NewBadRequestError(err.Error())
	}

	item, err := h.loadItem(c)
	if err != nil {
		return err
	}

	if req.TargetPrice != nil {
		item.TargetPrice = *req.TargetPrice
	}
	if req.ProductName != nil {
		item.ProductName = *req.ProductName
	}
	if req.Status != nil {
		status := watch.Status(*req.Status)
		if !status.IsValid() {
			return httputil.NewBadRequestError("감시 상태 값이 유효하지 않습니다 (상태: " + *req.Status + ")")
		}
		item.Status = status
	}
	if req.FrequencyMinutes != nil {
		item.FrequencyMinutes = *req.FrequencyMinutes
	}
	if req.NotificationChannel != nil {
		item.NotificationChannel = *req.NotificationChannel
	}
	if req.NotificationEmail != nil {
		item.NotificationEmail = *req.NotificationEmail
	}

	if err := h.store.Save(item); err != nil {
		applog.WithComponentAndFields(component, log.Fields{
			"item_id": item.ItemID,
			"error":   err,
		}).Error("감시 상품 저장이 실패하였습니다")

		return httputil.NewInternalServerError("감시 상품 저장이 실패하였습니다")
	}

	applog.WithComponentAndFields(component, log.Fields{
		"item_id": item.ItemID,
	}).Info("감시 상품이 수정되었습니다")

	return c.JSON(http.StatusOK, item)
}

// DeleteItemHandler 지정된 ID의 감시 상품을 삭제합니다.
func (h *Handler) DeleteItemHandler(c echo.Context) error {
	itemID := watch.ItemID(c.Param("item_id"))

	if err := h.store.Delete(itemID); err != nil {
		if errors.Is(err, watch.ErrItemNotFound) {
			return httputil.NewNotFoundError(errMsgItemNotFound)
		}

		applog.WithComponentAndFields(component, log.Fields{
			"item_id": itemID,
			"error":   err,
		}).Error("감시 상품 삭제가 실패하였습니다")

		return httputil.NewInternalServerError("감시 상품 삭제가 실패하였습니다")
	}

	applog.WithComponentAndFields(component, log.Fields{
		"item_id": itemID,
	}).Info("감시 상품이 삭제되었습니다")

	return c.NoContent(http.StatusNoContent)
}

// loadItem 경로 파라미터의 ID로 감시 상품을 읽어옵니다.
func (h *Handler) loadItem(c echo.Context) (*watch.Item, error) {
	itemID := watch.ItemID(c.Param("item_id"))

	item, err := h.store.Load(itemID)
	if err != nil {
		if errors.Is(err, watch.ErrItemNotFound) {
			return nil, httputil.NewNotFoundError(errMsgItemNotFound)
		}

		applog.WithComponentAndFields(component, log.Fields{
			"item_id": itemID,
			"error":   err,
		}).Error("감시 상품 조회가 실패하였습니다")

		return nil, httputil.NewInternalServerError("감시 상품 조회가 실패하였습니다")
	}

	return item, nil
}
