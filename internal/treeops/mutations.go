// Package treeops 实现勘测树的结构变更操作。
//
// 所有操作都是全函数：路径指向不存在的节点时返回原 Building（no-op，
// 绝不 panic/报错）——多个前端标签页并发编辑时，另一方可能已经删掉了
// 目标节点。所有操作都是节点级 copy-on-write：返回的新 Building 只替换
// 被修改路径上的祖先，其余子树与输入共享，引用不等即"有变更"。
package treeops

import (
	"github.com/google/uuid"

	"kimoncrm-survey/internal/domain"
)

// AddFloor 追加楼层，返回新 Building 和新楼层ID
func AddFloor(b *domain.Building, name string, level int) (*domain.Building, string) {
	floor := &domain.Floor{
		FloorID: uuid.NewString(),
		Name:    name,
		Level:   level,
	}
	nb := cloneBuilding(b)
	nb.Floors = append(append([]*domain.Floor{}, b.Floors...), floor)
	return nb, floor.FloorID
}

// AddRoom 在指定楼层追加房间，楼层不存在时 no-op（返回原 Building 和空ID）
func AddRoom(b *domain.Building, floorID, name, roomType string) (*domain.Building, string) {
	roomID := ""
	nb := withFloor(b, floorID, func(f *domain.Floor) *domain.Floor {
		room := &domain.Room{
			RoomID:   uuid.NewString(),
			Name:     name,
			RoomType: roomType,
		}
		roomID = room.RoomID
		nf := *f
		nf.Rooms = append(append([]*domain.Room{}, f.Rooms...), room)
		return &nf
	})
	if nb == b {
		return b, ""
	}
	return nb, roomID
}

// AddRack 在指定楼层追加机柜，楼层不存在时 no-op
func AddRack(b *domain.Building, floorID, name string) (*domain.Building, string) {
	rackID := ""
	nb := withFloor(b, floorID, func(f *domain.Floor) *domain.Floor {
		rack := &domain.Rack{
			RackID: uuid.NewString(),
			Name:   name,
		}
		rackID = rack.RackID
		nf := *f
		nf.Racks = append(append([]*domain.Rack{}, f.Racks...), rack)
		return &nf
	})
	if nb == b {
		return b, ""
	}
	return nb, rackID
}

// AddCentralRack 设置中心机柜。一栋楼只有一个，已存在时 no-op
func AddCentralRack(b *domain.Building, name string) (*domain.Building, string) {
	if b.CentralRack != nil {
		return b, ""
	}
	rack := &domain.Rack{
		RackID: uuid.NewString(),
		Name:   name,
	}
	nb := cloneBuilding(b)
	nb.CentralRack = rack
	return nb, rack.RackID
}

// AddEquipment 在路径指向的容器（中心机柜/楼层机柜/房间）追加设备节点。
// kind 对容器无效（如房间里放 switch）或路径不存在时 no-op。
// 节点ID总是新生成，调用方传入的ID被忽略。
func AddEquipment(b *domain.Building, p Path, kind domain.EquipmentKind, el domain.EquipmentElement) (*domain.Building, string) {
	el.ElementID = uuid.NewString()
	el.Kind = kind

	appendTo := func(slot *[]*domain.EquipmentElement) {
		coll := *slot
		nc := make([]*domain.EquipmentElement, len(coll), len(coll)+1)
		copy(nc, coll)
		elCopy := el
		*slot = append(nc, &elCopy)
	}

	var nb *domain.Building
	if p.RoomID != "" {
		nb = withRoom(b, p.FloorID, p.RoomID, func(r *domain.Room) *domain.Room {
			nr := *r
			slot := roomSlot(&nr, kind)
			if slot == nil {
				return r
			}
			appendTo(slot)
			return &nr
		})
	} else if p.RackID != "" {
		nb = withRack(b, p, func(r *domain.Rack) *domain.Rack {
			nr := *r
			slot := rackSlot(&nr, kind)
			if slot == nil {
				return r
			}
			appendTo(slot)
			return &nr
		})
	} else {
		return b, ""
	}

	if nb == b {
		return b, ""
	}
	return nb, el.ElementID
}

// RemoveEquipment 删除路径指向的设备节点。
// 只有方案层节点可删；现状（勘测）节点由本核心只增不删，no-op。
func RemoveEquipment(b *domain.Building, p Path) *domain.Building {
	return withElement(b, p, func(el *domain.EquipmentElement) *domain.EquipmentElement {
		if !el.Proposal() {
			return el
		}
		return nil
	})
}

// UpdateEquipmentField 更新设备节点的描述性字段。
// fields 的键与 JSON 字段名一致；未知键忽略，全部未知时 no-op。
// 数值既接受 int 也接受 float64（JSON 解码产物）。
func UpdateEquipmentField(b *domain.Building, p Path, fields map[string]any) *domain.Building {
	return withElement(b, p, func(el *domain.EquipmentElement) *domain.EquipmentElement {
		nel := *el
		changed := false
		for key, value := range fields {
			switch key {
			case "name":
				if v, ok := value.(string); ok {
					nel.Name = v
					changed = true
				}
			case "brand":
				if v, ok := value.(string); ok {
					nel.Brand = v
					changed = true
				}
			case "model":
				if v, ok := value.(string); ok {
					nel.Model = v
					changed = true
				}
			case "ipAddress":
				if v, ok := value.(string); ok {
					nel.IPAddress = v
					changed = true
				}
			case "macAddress":
				if v, ok := value.(string); ok {
					nel.MACAddress = v
					changed = true
				}
			case "notes":
				if v, ok := value.(string); ok {
					nel.Notes = v
					changed = true
				}
			case "portCount":
				if v, ok := toInt(value); ok {
					nel.PortCount = v
					changed = true
				}
			case "quantity":
				if v, ok := toInt(value); ok {
					nel.Quantity = v
					changed = true
				}
			}
		}
		if !changed {
			return el
		}
		return &nel
	})
}

// AddProductAssociation 给设备节点挂产品引用。
//
// 这是"给旧设备补新件"的入口：即便节点原本是现状层，挂上方案产品后
// isFutureProposal 置为 true，从而出现在仅含方案的聚合里。该转变是
// 单向的——之后移除全部引用也不会翻回（见 RemoveProductAssociation）。
//
// 若节点还带着 legacy 单产品对（ProductID/Quantity）且 Products 为空，
// 先把 legacy 对物化进 Products 再追加，避免追加后 legacy 引用被
// overlay 规则（Products 非空即胜出）悄悄吞掉。
func AddProductAssociation(b *domain.Building, p Path, assoc domain.ProductAssociation) *domain.Building {
	if assoc.ProductID == "" {
		return b
	}
	if assoc.Quantity < 1 {
		assoc.Quantity = 1
	}
	return withElement(b, p, func(el *domain.EquipmentElement) *domain.EquipmentElement {
		nel := *el
		nel.Products = append([]domain.ProductAssociation{}, el.Products...)
		if len(nel.Products) == 0 && nel.ProductID != "" {
			legacyQty := nel.Quantity
			if legacyQty < 1 {
				legacyQty = 1
			}
			nel.Products = append(nel.Products, domain.ProductAssociation{
				ProductID: nel.ProductID,
				Quantity:  legacyQty,
			})
			nel.ProductID = ""
			nel.Quantity = 0
		}
		nel.Products = append(nel.Products, assoc)
		nel.IsFutureProposal = true
		return &nel
	})
}

// AddServiceAssociation 给设备节点挂服务引用，同样触发单向的方案层转变
func AddServiceAssociation(b *domain.Building, p Path, assoc domain.ServiceAssociation) *domain.Building {
	if assoc.ServiceID == "" {
		return b
	}
	if assoc.AssociationID == "" {
		assoc.AssociationID = uuid.NewString()
	}
	if assoc.Quantity < 1 {
		assoc.Quantity = 1
	}
	return withElement(b, p, func(el *domain.EquipmentElement) *domain.EquipmentElement {
		nel := *el
		nel.Services = append(append([]domain.ServiceAssociation{}, el.Services...), assoc)
		nel.IsFutureProposal = true
		return &nel
	})
}

// RemoveProductAssociation 移除产品引用。
// 刻意不回翻 isFutureProposal：节点一旦被方案触碰过就保持对方案聚合可见，
// 即便引用被临时清空。
func RemoveProductAssociation(b *domain.Building, p Path, productID string) *domain.Building {
	return withElement(b, p, func(el *domain.EquipmentElement) *domain.EquipmentElement {
		kept := make([]domain.ProductAssociation, 0, len(el.Products))
		for _, a := range el.Products {
			if a.ProductID != productID {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(el.Products) {
			return el
		}
		nel := *el
		nel.Products = kept
		return &nel
	})
}

// RemoveServiceAssociation 移除服务引用（按 serviceId），同样不回翻标志
func RemoveServiceAssociation(b *domain.Building, p Path, serviceID string) *domain.Building {
	return withElement(b, p, func(el *domain.EquipmentElement) *domain.EquipmentElement {
		kept := make([]domain.ServiceAssociation, 0, len(el.Services))
		for _, a := range el.Services {
			if a.ServiceID != serviceID {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(el.Services) {
			return el
		}
		nel := *el
		nel.Services = kept
		return &nel
	})
}

// SetFloorTypical 设置楼层的 typical 重复属性。
// repeatCount 最小钳为 1；楼层不存在或值未变化时 no-op。
func SetFloorTypical(b *domain.Building, floorID string, isTypical bool, repeatCount int) *domain.Building {
	if repeatCount < 1 {
		repeatCount = 1
	}
	return withFloor(b, floorID, func(f *domain.Floor) *domain.Floor {
		if f.IsTypical == isTypical && f.RepeatCount == repeatCount {
			return f
		}
		nf := *f
		nf.IsTypical = isTypical
		nf.RepeatCount = repeatCount
		return &nf
	})
}

// SetRoomTypical 设置房间的 typical 重复属性，规则同 SetFloorTypical
func SetRoomTypical(b *domain.Building, floorID, roomID string, isTypical bool, repeatCount int) *domain.Building {
	if repeatCount < 1 {
		repeatCount = 1
	}
	return withRoom(b, floorID, roomID, func(r *domain.Room) *domain.Room {
		if r.IsTypical == isTypical && r.RepeatCount == repeatCount {
			return r
		}
		nr := *r
		nr.IsTypical = isTypical
		nr.RepeatCount = repeatCount
		return &nr
	})
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
