package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-admin/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// 声明了 Content-Length 的请求直接按头部拒绝；其余在读取时由 MaxBytesReader 截断
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

// IsBodyTooLarge 绑定请求体时是否因超出上限失败
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
