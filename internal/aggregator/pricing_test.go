package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	agg "kimoncrm-survey/internal/aggregator"
	"kimoncrm-survey/internal/domain"
)

func catalogPrice(prices map[string]float64) func(string) (float64, bool) {
	return func(id string) (float64, bool) {
		p, ok := prices[id]
		return p, ok
	}
}

func TestResolvePrice_NoOverride(t *testing.T) {
	p := agg.ResolvePrice("P1", nil, catalogPrice(map[string]float64{"P1": 100}))
	require.Equal(t, agg.Price{UnitPrice: 100, Margin: 0}, p)

	// 目录也没有：0 价，不报错（告警由聚合引擎记 skipped）
	p = agg.ResolvePrice("P9", nil, catalogPrice(nil))
	require.Equal(t, agg.Price{}, p)
}

func TestResolvePrice_OverrideWins(t *testing.T) {
	overrides := map[string]domain.PricingOverride{
		"P1": {UnitPrice: f64(80), Margin: f64(15)},
	}
	p := agg.ResolvePrice("P1", overrides, catalogPrice(map[string]float64{"P1": 100}))
	require.Equal(t, agg.Price{UnitPrice: 80, Margin: 15}, p)
}

func TestResolvePrice_PartialOverrideFallsBack(t *testing.T) {
	// 只覆盖毛利：单价回退目录价
	overrides := map[string]domain.PricingOverride{
		"P1": {Margin: f64(20)},
	}
	p := agg.ResolvePrice("P1", overrides, catalogPrice(map[string]float64{"P1": 100}))
	require.Equal(t, agg.Price{UnitPrice: 100, Margin: 20}, p)

	// 覆盖存在但两个字段都空、目录也缺失：0 价 0 毛利
	overrides = map[string]domain.PricingOverride{"P9": {}}
	p = agg.ResolvePrice("P9", overrides, catalogPrice(nil))
	require.Equal(t, agg.Price{}, p)
}

func TestTotal(t *testing.T) {
	require.Equal(t, 1000.0, agg.Total(2, agg.Price{UnitPrice: 500}))
	require.Equal(t, 1150.0, agg.Total(2, agg.Price{UnitPrice: 500, Margin: 15}))
}
