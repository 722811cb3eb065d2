package handler

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	requestValidator     *validator.Validate
	requestValidatorOnce sync.Once
)

// getRequestValidator 요청 본문 검증기를 반환합니다.
//
// 검증 오류 메시지에 JSON 필드명 대신 한글 필드명을 노출하기 위해
// korean 태그를 필드명으로 등록합니다.
func getRequestValidator() *validator.Validate {
	requestValidatorOnce.Do(func() {
		requestValidator = validator.New()
		requestValidator.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := fld.Tag.Get("korean")
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			}
			return name
		})
	})
	return requestValidator
}

// validateRequest 요청 구조체를 검증하고, 실패 시 사용자에게 노출 가능한
// 한글 오류 메시지를 반환합니다.
func validateRequest(req any) error {
	err := getRequestValidator().Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, formatValidationError(fieldError))
	}
	return fmt.Errorf("%s", strings.Join(messages, ", "))
}

func formatValidationError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return fmt.Sprintf("%s은(는) 필수 입력 항목입니다", fieldError.Field())
	case "gt":
		return fmt.Sprintf("%s은(는) %s보다 커야 합니다", fieldError.Field(), fieldError.Param())
	case "min":
		return fmt.Sprintf("%s은(는) 최소 %s 이상이어야 합니다", fieldError.Field(), fieldError.Param())
	case "max":
		return fmt.Sprintf("%s은(는) 최대 %s까지 입력할 수 있습니다", fieldError.Field(), fieldError.Param())
	case "email":
		return fmt.Sprintf("%s의 형식이 올바르지 않습니다", fieldError.Field())
	case "url":
		return fmt.Sprintf("%s의 형식이 올바르지 않습니다", fieldError.Field())
	default:
		return fmt.Sprintf("%s이(가) 유효하지 않습니다", fieldError.Field())
	}
}
