package service

import "errors"

// 引擎对外的错误分类。校验类错误在边界上转成用户提示；
// ErrCheckoutFailed 代表 Numbered/Persisted 阶段的存储失败，此时购物车原样保留，顾客可以直接重试。
var (
	// ErrEmptyCart 空购物车不允许结账
	ErrEmptyCart = errors.New("购物车是空的，无法结账")
	// ErrUnknownProduct 购物车里有商品在结账时已经无法解析（被删除或下架）
	ErrUnknownProduct = errors.New("商品已下架或不存在")
	// ErrInvalidQuantity 数量不合法（非正数在 SetQuantity 里是删除语义，这里指超限）
	ErrInvalidQuantity = errors.New("商品数量不合法")
	// ErrCheckoutFailed 结账过程中的存储失败，购物车保持原样
	ErrCheckoutFailed = errors.New("结账失败，请稍后重试")
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("订单不存在")
	// ErrInvalidTransition 不在转移表里的状态跳转
	ErrInvalidTransition = errors.New("订单状态不允许这样流转")
)
