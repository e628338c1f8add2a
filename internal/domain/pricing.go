package domain

// PricingOverride 单个产品/服务的报价覆盖。字段为指针：nil 表示"未覆盖、
// 回退目录价"，与 0 值（明确报 0 元/0 毛利）区分开。
type PricingOverride struct {
	UnitPrice *float64 `json:"unitPrice,omitempty"`
	Margin    *float64 `json:"margin,omitempty"` // 百分比，如 15 表示 15%
}

// PricingOverrides 整份勘测的报价覆盖表（随快照持久化，不属于树本身）
type PricingOverrides struct {
	Products map[string]PricingOverride `json:"products,omitempty"`
	Services map[string]PricingOverride `json:"services,omitempty"`
}
