package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ClockLayout 排班时间的存储格式
const ClockLayout = "15:04:05"

var clockLayouts = []string{ClockLayout, "15:04"}

// ParseClock 解析 "HH:MM" 或 "HH:MM:SS"
func ParseClock(s string) (time.Time, bool) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeClock 统一为 HH:MM:SS；数据库 TIME 列读回可能带小数秒，一并截断
func NormalizeClock(s string) string {
	if len(s) > len(ClockLayout) {
		s = s[:len(ClockLayout)]
	}
	if t, ok := ParseClock(s); ok {
		return t.Format(ClockLayout)
	}
	return s
}

func validateClock(fl validator.FieldLevel) bool {
	_, ok := ParseClock(fl.Field().String())
	return ok
}

// RegisterValidations 向 validator 注册自定义校验标签
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("clock", validateClock)
}
