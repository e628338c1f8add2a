package aggregator

import "kimoncrm-survey/internal/domain"

// NormalizedElement overlay 归一化结果：设备属于哪一层（现状/方案）、
// 统一后的产品与服务引用。聚合引擎只消费这个形态，不碰原始节点。
type NormalizedElement struct {
	ElementID  string
	Kind       domain.EquipmentKind
	IsProposal bool
	Products   []domain.ProductAssociation
	Services   []domain.ServiceAssociation
}

// Empty 既无产品也无服务引用的节点：在树里可见，但不参与聚合
func (n NormalizedElement) Empty() bool {
	return len(n.Products) == 0 && len(n.Services) == 0
}

// Normalize 归一化单个设备节点。
//
// 规则：
//   - IsProposal：isFutureProposal 为真，或节点ID符合 "proposal-" 命名约定
//     （见 domain.EquipmentElement.Proposal）。
//   - 产品引用：Products 非空时原样使用；否则若 legacy ProductID 有值，
//     合成单条 [{ProductID, Quantity(缺省1)}]。两个来源绝不合并，
//     同时出现时 Products 胜出（迁移残留，不能重复计数）。
//   - 非正数 quantity 按 1 计（容忍残缺数据，与 legacy 缺省一致）。
func Normalize(el *domain.EquipmentElement) NormalizedElement {
	n := NormalizedElement{
		ElementID:  el.ElementID,
		Kind:       el.Kind,
		IsProposal: el.Proposal(),
	}

	if len(el.Products) > 0 {
		n.Products = make([]domain.ProductAssociation, 0, len(el.Products))
		for _, p := range el.Products {
			if p.ProductID == "" {
				continue
			}
			n.Products = append(n.Products, domain.ProductAssociation{
				ProductID: p.ProductID,
				Quantity:  clampQuantity(p.Quantity),
			})
		}
	} else if el.ProductID != "" {
		n.Products = []domain.ProductAssociation{{
			ProductID: el.ProductID,
			Quantity:  clampQuantity(el.Quantity),
		}}
	}

	if len(el.Services) > 0 {
		n.Services = make([]domain.ServiceAssociation, 0, len(el.Services))
		for _, s := range el.Services {
			if s.ServiceID == "" {
				continue
			}
			s.Quantity = clampQuantity(s.Quantity)
			n.Services = append(n.Services, s)
		}
	}

	return n
}

func clampQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}
