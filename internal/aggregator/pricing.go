package aggregator

import "kimoncrm-survey/internal/domain"

// Price 生效报价：单价 + 毛利百分比
type Price struct {
	UnitPrice float64
	Margin    float64
}

// ResolvePrice 解析单个ID的生效报价。
//
//   - 有覆盖：unitPrice 取覆盖值，未覆盖单价时回退目录价（再缺省 0）；
//     margin 取覆盖值，缺省 0。
//   - 无覆盖：目录价（缺省 0），margin 0。
//
// 永不报错；目录缺失的告警由聚合引擎记入 skipped，这里不做日志副作用。
func ResolvePrice(id string, overrides map[string]domain.PricingOverride, catalogPrice func(string) (float64, bool)) Price {
	base := 0.0
	if catalogPrice != nil {
		if p, ok := catalogPrice(id); ok {
			base = p
		}
	}

	if ov, ok := overrides[id]; ok {
		price := Price{UnitPrice: base}
		if ov.UnitPrice != nil {
			price.UnitPrice = *ov.UnitPrice
		}
		if ov.Margin != nil {
			price.Margin = *ov.Margin
		}
		return price
	}

	return Price{UnitPrice: base, Margin: 0}
}

// Total 台账行合计：quantity * unitPrice * (1 + margin/100)
func Total(quantity int, p Price) float64 {
	return float64(quantity) * p.UnitPrice * (1 + p.Margin/100)
}
