package domain

// SurveySnapshot 持久化的勘测快照（JSONB 整体读写）。
// 结构与前端向导保存的 JSON 对齐：楼栋树 + 两张报价覆盖表。
type SurveySnapshot struct {
	Buildings      []*Building                `json:"buildings"`
	ProductPricing map[string]PricingOverride `json:"productPricing,omitempty"`
	ServicePricing map[string]PricingOverride `json:"servicePricing,omitempty"`
}

// Overrides 以 PricingOverrides 视图返回快照中的两张覆盖表
func (s *SurveySnapshot) Overrides() PricingOverrides {
	return PricingOverrides{
		Products: s.ProductPricing,
		Services: s.ServicePricing,
	}
}
