package treeops

import "kimoncrm-survey/internal/domain"

// Path 变更操作的路径描述符（buildingId 隐含在传入的 Building 里）。
// 设备节点的容器三选一：
//   - 中心机柜：只填 RackID（等于 CentralRack 的ID）
//   - 楼层机柜：FloorID + RackID
//   - 房间：FloorID + RoomID
type Path struct {
	FloorID   string
	RackID    string
	RoomID    string
	ElementID string
}

// cloneBuilding 浅拷贝楼栋节点。copy-on-write 的基本动作：
// 只换被修改路径上的祖先，未动的子树原样共享，
// 调用方用引用不等判断"有没有改到"。
func cloneBuilding(b *domain.Building) *domain.Building {
	nb := *b
	return &nb
}

// replaceFloor 返回替换了一个楼层的新楼层切片
func replaceFloor(floors []*domain.Floor, index int, floor *domain.Floor) []*domain.Floor {
	nf := make([]*domain.Floor, len(floors))
	copy(nf, floors)
	nf[index] = floor
	return nf
}

// withFloor 对指定楼层应用变换。fn 返回原指针表示没改；
// 楼层不存在或没改时整体 no-op（返回原 Building）。
func withFloor(b *domain.Building, floorID string, fn func(*domain.Floor) *domain.Floor) *domain.Building {
	for i, f := range b.Floors {
		if f.FloorID != floorID {
			continue
		}
		nf := fn(f)
		if nf == f {
			return b
		}
		nb := cloneBuilding(b)
		nb.Floors = replaceFloor(b.Floors, i, nf)
		return nb
	}
	return b
}

// withRoom 对指定房间应用变换，路径不存在时 no-op
func withRoom(b *domain.Building, floorID, roomID string, fn func(*domain.Room) *domain.Room) *domain.Building {
	return withFloor(b, floorID, func(f *domain.Floor) *domain.Floor {
		for i, r := range f.Rooms {
			if r.RoomID != roomID {
				continue
			}
			nr := fn(r)
			if nr == r {
				return f
			}
			nf := *f
			nf.Rooms = make([]*domain.Room, len(f.Rooms))
			copy(nf.Rooms, f.Rooms)
			nf.Rooms[i] = nr
			return &nf
		}
		return f
	})
}

// withRack 对指定机柜（中心或楼层）应用变换，路径不存在时 no-op
func withRack(b *domain.Building, p Path, fn func(*domain.Rack) *domain.Rack) *domain.Building {
	if p.FloorID == "" {
		if b.CentralRack == nil || b.CentralRack.RackID != p.RackID {
			return b
		}
		nr := fn(b.CentralRack)
		if nr == b.CentralRack {
			return b
		}
		nb := cloneBuilding(b)
		nb.CentralRack = nr
		return nb
	}
	return withFloor(b, p.FloorID, func(f *domain.Floor) *domain.Floor {
		for i, r := range f.Racks {
			if r.RackID != p.RackID {
				continue
			}
			nr := fn(r)
			if nr == r {
				return f
			}
			nf := *f
			nf.Racks = make([]*domain.Rack, len(f.Racks))
			copy(nf.Racks, f.Racks)
			nf.Racks[i] = nr
			return &nf
		}
		return f
	})
}
