package aggregator

import (
	"kimoncrm-survey/internal/catalog"
	"kimoncrm-survey/internal/domain"
)

// Predicate 决定归一化后的节点是否计入台账
type Predicate func(NormalizedElement) bool

// ProposalOnly 只聚合方案层节点（RFP/报价文档）
func ProposalOnly(n NormalizedElement) bool { return n.IsProposal }

// AllElements 聚合全部节点（完整 BOM）
func AllElements(NormalizedElement) bool { return true }

// Result 聚合输出：有序去重台账 + 被跳过的引用报告
type Result struct {
	LineItems []domain.LineItem   `json:"lineItems"`
	Skipped   []domain.SkippedRef `json:"skipped"`
}

// Aggregate 遍历整棵楼栋树，汇出去重、展开倍数、已定价的台账。
//
// 纯函数：不做 I/O，相同输入永远产出逐字节相同的输出（文档可复现的前提）。
// 遍历顺序固定：中心机柜（terminations → switches → routers → servers →
// voipPbx → headends → nvrs → atas → connections），然后按存储顺序逐层，
// 层内先机柜后房间，房间内 devices → outlets → connections。
//
// 去重键是 productId/serviceId；碰撞时数量累加，报价以首次出现为准
// （后续出现的报价差异不做一致性比对——已知局限，见 DESIGN.md）。
// 目录缺失的ID记一条 SkippedRef 后继续，绝不中断整次聚合。
func Aggregate(b *domain.Building, pred Predicate, overrides domain.PricingOverrides, cat catalog.Catalog) Result {
	w := newWalker(pred, overrides, cat)

	if b.CentralRack != nil {
		w.walkRack(b.CentralRack, nil)
	}
	for _, floor := range b.Floors {
		for _, rack := range floor.Racks {
			w.walkRack(rack, floor)
		}
		for _, room := range floor.Rooms {
			w.walkRoom(room, floor)
		}
	}

	return w.result()
}

// Merge 合并多栋楼的聚合结果为一份台账（同ID数量累加，报价以先出现者为准，
// 顺序与输入顺序一致，保持确定性）。
func Merge(results ...Result) Result {
	w := newWalker(nil, domain.PricingOverrides{}, nil)
	for _, r := range results {
		for _, item := range r.LineItems {
			if existing, ok := w.items[item.LineItemID]; ok {
				existing.Quantity += item.Quantity
				existing.TotalPrice = Total(existing.Quantity, Price{UnitPrice: existing.UnitPrice, Margin: existing.Margin})
				continue
			}
			copied := item
			w.items[item.LineItemID] = &copied
			w.order = append(w.order, item.LineItemID)
		}
		for _, sk := range r.Skipped {
			key := string(sk.Kind) + ":" + sk.SourceID
			if !w.skippedSeen[key] {
				w.skippedSeen[key] = true
				w.skipped = append(w.skipped, sk)
			}
		}
	}
	return w.result()
}

// walker 单次聚合的可变状态（引擎外不可见）
type walker struct {
	pred      Predicate
	overrides domain.PricingOverrides
	cat       catalog.Catalog

	items       map[string]*domain.LineItem
	order       []string
	skipped     []domain.SkippedRef
	skippedSeen map[string]bool
}

func newWalker(pred Predicate, overrides domain.PricingOverrides, cat catalog.Catalog) *walker {
	return &walker{
		pred:        pred,
		overrides:   overrides,
		cat:         cat,
		items:       make(map[string]*domain.LineItem),
		skippedSeen: make(map[string]bool),
	}
}

// walkRack 机柜内按固定设备类型顺序遍历，保证输出可复现
func (w *walker) walkRack(rack *domain.Rack, floor *domain.Floor) {
	mult := Multiplier(floor, nil)
	for _, coll := range [][]*domain.EquipmentElement{
		rack.CableTerminations,
		rack.Switches,
		rack.Routers,
		rack.Servers,
		rack.VoipPbx,
		rack.Headends,
		rack.Nvrs,
		rack.Atas,
		rack.Connections,
	} {
		for _, el := range coll {
			w.collect(el, mult)
		}
	}
}

func (w *walker) walkRoom(room *domain.Room, floor *domain.Floor) {
	mult := Multiplier(floor, room)
	for _, coll := range [][]*domain.EquipmentElement{
		room.Devices,
		room.Outlets,
		room.Connections,
	} {
		for _, el := range coll {
			w.collect(el, mult)
		}
	}
}

func (w *walker) collect(el *domain.EquipmentElement, mult int) {
	n := Normalize(el)
	if n.Empty() || !w.pred(n) {
		return
	}

	for _, p := range n.Products {
		w.addRef(domain.LineItemProduct, p.ProductID, p.Quantity*mult)
	}
	for _, s := range n.Services {
		w.addRef(domain.LineItemService, s.ServiceID, s.Quantity*mult)
	}
}

// addRef 把一条产品/服务引用并入台账。报价解析每个去重ID只做一次。
func (w *walker) addRef(kind domain.LineItemKind, sourceID string, quantity int) {
	key := string(kind) + ":" + sourceID

	if existing, ok := w.items[key]; ok {
		existing.Quantity += quantity
		existing.TotalPrice = Total(existing.Quantity, Price{UnitPrice: existing.UnitPrice, Margin: existing.Margin})
		return
	}
	if w.skippedSeen[key] {
		return
	}

	item, found := w.lookup(kind, sourceID)
	if !found {
		w.skippedSeen[key] = true
		w.skipped = append(w.skipped, domain.SkippedRef{
			SourceID: sourceID,
			Kind:     kind,
			Reason:   string(kind) + " not found",
		})
		return
	}

	price := ResolvePrice(sourceID, w.overrideMap(kind), func(id string) (float64, bool) {
		it, ok := w.lookup(kind, id)
		if !ok {
			return 0, false
		}
		return it.Price, true
	})

	w.items[key] = &domain.LineItem{
		LineItemID: key,
		SourceID:   sourceID,
		Name:       item.Name,
		Category:   item.Category,
		Quantity:   quantity,
		UnitPrice:  price.UnitPrice,
		Margin:     price.Margin,
		TotalPrice: Total(quantity, price),
		Kind:       kind,
	}
	w.order = append(w.order, key)
}

func (w *walker) lookup(kind domain.LineItemKind, id string) (*catalog.Item, bool) {
	if w.cat == nil {
		return nil, false
	}
	if kind == domain.LineItemService {
		return w.cat.GetService(id)
	}
	return w.cat.GetProduct(id)
}

func (w *walker) overrideMap(kind domain.LineItemKind) map[string]domain.PricingOverride {
	if kind == domain.LineItemService {
		return w.overrides.Services
	}
	return w.overrides.Products
}

func (w *walker) result() Result {
	res := Result{
		LineItems: make([]domain.LineItem, 0, len(w.order)),
		Skipped:   w.skipped,
	}
	for _, key := range w.order {
		res.LineItems = append(res.LineItems, *w.items[key])
	}
	if res.Skipped == nil {
		res.Skipped = []domain.SkippedRef{}
	}
	return res
}
