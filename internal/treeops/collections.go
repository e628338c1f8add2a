package treeops

import "kimoncrm-survey/internal/domain"

// rackSlot 机柜内设备种类到集合的映射，未知种类返回 nil
func rackSlot(r *domain.Rack, kind domain.EquipmentKind) *[]*domain.EquipmentElement {
	switch kind {
	case domain.KindCableTermination:
		return &r.CableTerminations
	case domain.KindSwitch:
		return &r.Switches
	case domain.KindRouter:
		return &r.Routers
	case domain.KindServer:
		return &r.Servers
	case domain.KindVoipPbx:
		return &r.VoipPbx
	case domain.KindHeadend:
		return &r.Headends
	case domain.KindNvr:
		return &r.Nvrs
	case domain.KindAta:
		return &r.Atas
	case domain.KindConnection:
		return &r.Connections
	}
	return nil
}

// roomSlot 房间内设备种类到集合的映射，未知种类返回 nil
func roomSlot(r *domain.Room, kind domain.EquipmentKind) *[]*domain.EquipmentElement {
	switch kind {
	case domain.KindDevice:
		return &r.Devices
	case domain.KindOutlet:
		return &r.Outlets
	case domain.KindConnection:
		return &r.Connections
	}
	return nil
}

func rackSlots(r *domain.Rack) []*[]*domain.EquipmentElement {
	return []*[]*domain.EquipmentElement{
		&r.CableTerminations, &r.Switches, &r.Routers, &r.Servers,
		&r.VoipPbx, &r.Headends, &r.Nvrs, &r.Atas, &r.Connections,
	}
}

func roomSlots(r *domain.Room) []*[]*domain.EquipmentElement {
	return []*[]*domain.EquipmentElement{&r.Devices, &r.Outlets, &r.Connections}
}

// applyElement 在一组集合里找到目标节点并应用变换。
// fn 返回原指针表示没改，返回 nil 表示删除该节点。
// 集合切片是新建的（copy-on-write），原集合不被触碰。
func applyElement(slots []*[]*domain.EquipmentElement, elementID string, fn func(*domain.EquipmentElement) *domain.EquipmentElement) bool {
	for _, slot := range slots {
		coll := *slot
		for i, el := range coll {
			if el.ElementID != elementID {
				continue
			}
			nel := fn(el)
			if nel == el {
				return false
			}
			if nel == nil {
				nc := make([]*domain.EquipmentElement, 0, len(coll)-1)
				nc = append(nc, coll[:i]...)
				nc = append(nc, coll[i+1:]...)
				*slot = nc
				return true
			}
			nc := make([]*domain.EquipmentElement, len(coll))
			copy(nc, coll)
			nc[i] = nel
			*slot = nc
			return true
		}
	}
	return false
}

// rackWithElement 机柜的节点级 copy-on-write：没改时返回原机柜指针
func rackWithElement(r *domain.Rack, elementID string, fn func(*domain.EquipmentElement) *domain.EquipmentElement) *domain.Rack {
	nr := *r
	if applyElement(rackSlots(&nr), elementID, fn) {
		return &nr
	}
	return r
}

// roomWithElement 房间的节点级 copy-on-write：没改时返回原房间指针
func roomWithElement(r *domain.Room, elementID string, fn func(*domain.EquipmentElement) *domain.EquipmentElement) *domain.Room {
	nr := *r
	if applyElement(roomSlots(&nr), elementID, fn) {
		return &nr
	}
	return r
}

// withElement 对路径指向的设备节点应用变换，路径不存在时 no-op
func withElement(b *domain.Building, p Path, fn func(*domain.EquipmentElement) *domain.EquipmentElement) *domain.Building {
	if p.RoomID != "" {
		return withRoom(b, p.FloorID, p.RoomID, func(r *domain.Room) *domain.Room {
			return roomWithElement(r, p.ElementID, fn)
		})
	}
	if p.RackID != "" {
		return withRack(b, p, func(r *domain.Rack) *domain.Rack {
			return rackWithElement(r, p.ElementID, fn)
		})
	}
	return b
}
