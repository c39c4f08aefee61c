package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
)

// 会话令牌是客户端持有的匿名标识，服务端不管理它的生命周期，
// 只用它来圈定一个顾客的购物车和订单。
const (
	// HeaderName 客户端主动携带令牌的请求头
	HeaderName = "X-Session-Token"
	// CookieName 浏览器场景下落在 Cookie 里的令牌
	CookieName = "shop_session"
	contextKey = "shop_session_token"
)

// cookieTTL 一年，令牌在设备生命周期内视作不变
const cookieTTL = 365 * 24 * time.Hour

// NewToken 生成新的会话令牌
func NewToken() string {
	return uuid.NewString()
}

// Middleware 解析或签发会话令牌，并放进请求上下文。
// 优先取请求头，其次取 Cookie；两边都没有（或者格式不对）就签发一个新的。
func Middleware() iris.Handler {
	return func(ctx iris.Context) {
		token := ctx.GetHeader(HeaderName)
		if token == "" {
			token = ctx.GetCookie(CookieName)
		}
		if _, err := uuid.Parse(token); err != nil {
			token = NewToken()
			ctx.SetCookieKV(CookieName, token,
				iris.CookieExpires(cookieTTL),
				iris.CookieHTTPOnly(true),
			)
		}
		ctx.Values().Set(contextKey, token)
		ctx.Next()
	}
}

// FromContext 取当前请求的会话令牌，中间件没跑过时返回空串
func FromContext(ctx iris.Context) string {
	return ctx.Values().GetString(contextKey)
}
