package logger

import (
	"go.uber.org/zap"
)

// Init 初始化全局 zap logger，之后统一通过 zap.L() 使用
func Init() {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(l)
}

// InitDevelopment 本地调试用的彩色控制台输出
func InitDevelopment() {
	l, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(l)
}
