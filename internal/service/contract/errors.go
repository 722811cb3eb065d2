package contract

import (
	apperrors "github.com/darkkaiser/pricepulse-server/internal/pkg/errors"
)

var (
	// ErrServiceStopped 서비스가 중지된 상태에서 요청이 들어왔을 때 반환하는 에러입니다.
	ErrServiceStopped = apperrors.New(apperrors.Unavailable, "서비스가 중지되어 요청을 처리할 수 없습니다")

	// ErrNotifierNotFound 지정된 ID의 Notifier가 존재하지 않을 때 반환하는 에러입니다.
	ErrNotifierNotFound = apperrors.New(apperrors.NotFound, "지정된 Notifier를 찾을 수 없습니다")
)
