package order

// Status 订单履约状态
type Status string

const (
	StatusPending    Status = "pending"    // 初始状态
	StatusProcessing Status = "processing" // 备货中
	StatusShipped    Status = "shipped"    // 已发货
	StatusDelivered  Status = "delivered"  // 已送达，终态
	StatusCancelled  Status = "cancelled"  // 已取消，终态，任何非终态都可达
)

// transitions 显式状态转移表，线性流转 + 任意非终态可取消。
// 表以外的跳转（比如 delivered -> pending）一律拒绝。
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Valid 状态值是否在枚举范围内
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal 是否终态
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition from 状态能否合法转移到 to
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
