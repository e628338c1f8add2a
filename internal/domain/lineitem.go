package domain

// LineItemKind 台账条目种类
type LineItemKind string

const (
	LineItemProduct LineItemKind = "product"
	LineItemService LineItemKind = "service"
)

// LineItem 聚合输出的一条台账：每个去重后的产品/服务ID一条，
// 数量已按 typical 倍数展开并跨节点求和。
// LineItemID 是确定性的（kind:sourceId），同样输入必须逐字节复现同样输出。
type LineItem struct {
	LineItemID string       `json:"id"`
	SourceID   string       `json:"sourceId"` // 目录中的 productId / serviceId
	Name       string       `json:"name"`
	Category   string       `json:"category,omitempty"`
	Quantity   int          `json:"quantity"`
	UnitPrice  float64      `json:"unitPrice"`
	Margin     float64      `json:"margin"` // 百分比
	TotalPrice float64      `json:"totalPrice"`
	Kind       LineItemKind `json:"kind"`
}

// SkippedRef 聚合中被跳过的引用（如目录缺失）。聚合绝不因缺目录项中断，
// 由调用方决定是否警告用户。
type SkippedRef struct {
	SourceID string       `json:"sourceId"`
	Kind     LineItemKind `json:"kind"`
	Reason   string       `json:"reason"`
}
