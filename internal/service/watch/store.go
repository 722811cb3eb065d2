package watch

import (
	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
)

// ErrItemNotFound 지정된 ID의 감시 상품이 존재하지 않을 때 반환하는 에러입니다.
var ErrItemNotFound = apperrors.New(apperrors.NotFound, "감시 상품을 찾을 수 없습니다")

// Store 감시 상품의 영속화를 담당하는 저장소 인터페이스입니다.
//
// 모든 메서드는 여러 고루틴에서 동시에 호출해도 안전해야 합니다.
type Store interface {
	// Save 감시 상품을 저장합니다. 동일한 ID가 이미 존재하면 덮어씁니다.
	Save(item *Item) error

	// Load 지정된 ID의 감시 상품을 읽어옵니다.
	// 존재하지 않으면 ErrItemNotFound를 반환합니다.
	Load(id ItemID) (*Item, error)

	// Delete 지정된 ID의 감시 상품을 삭제합니다.
	// 존재하지 않으면 ErrItemNotFound를 반환합니다.
	Delete(id ItemID) error

	// List 저장된 모든 감시 상품을 반환합니다.
	List() ([]*Item, error)
}
