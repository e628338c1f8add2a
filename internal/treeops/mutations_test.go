package treeops_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kimoncrm-survey/internal/domain"
	"kimoncrm-survey/internal/treeops"
)

func seedBuilding() *domain.Building {
	return &domain.Building{
		BuildingID: "B1",
		Name:       "HQ",
		CentralRack: &domain.Rack{
			RackID: "CR",
			Switches: []*domain.EquipmentElement{{
				ElementID: "sw1",
				Kind:      domain.KindSwitch,
				Brand:     "Cisco",
			}},
		},
		Floors: []*domain.Floor{{
			FloorID: "F1",
			Name:    "Ground",
			Racks: []*domain.Rack{{
				RackID: "FR1",
				Routers: []*domain.EquipmentElement{{
					ElementID:        "rt1",
					Kind:             domain.KindRouter,
					IsFutureProposal: true,
					Products:         []domain.ProductAssociation{{ProductID: "RT-1", Quantity: 1}},
				}},
			}},
			Rooms: []*domain.Room{{
				RoomID: "R1",
				Name:   "Lobby",
				Devices: []*domain.EquipmentElement{{
					ElementID: "dev1",
					Kind:      domain.KindDevice,
					ProductID: "PC-OLD", // legacy 单产品对
					Quantity:  2,
				}},
			}},
		}},
	}
}

func TestAddFloorRoomRack(t *testing.T) {
	b := seedBuilding()

	nb, floorID := treeops.AddFloor(b, "First", 1)
	require.NotSame(t, b, nb)
	require.NotEmpty(t, floorID)
	require.Len(t, nb.Floors, 2)
	require.Len(t, b.Floors, 1) // 输入不被触碰

	nb2, roomID := treeops.AddRoom(nb, floorID, "Suite", "hotel_room")
	require.NotEmpty(t, roomID)
	require.Len(t, nb2.FindFloor(floorID).Rooms, 1)

	nb3, rackID := treeops.AddRack(nb2, floorID, "IDF-1")
	require.NotEmpty(t, rackID)
	require.Len(t, nb3.FindFloor(floorID).Racks, 1)

	// 楼层不存在：no-op，返回原指针
	same, id := treeops.AddRoom(nb3, "missing", "X", "")
	require.Same(t, nb3, same)
	require.Empty(t, id)
}

func TestAddCentralRack(t *testing.T) {
	b := &domain.Building{BuildingID: "B1"}
	nb, rackID := treeops.AddCentralRack(b, "MDF")
	require.NotEmpty(t, rackID)
	require.NotNil(t, nb.CentralRack)

	// 已存在：no-op
	same, id := treeops.AddCentralRack(nb, "MDF-2")
	require.Same(t, nb, same)
	require.Empty(t, id)
}

func TestAddEquipment(t *testing.T) {
	b := seedBuilding()

	nb, elID := treeops.AddEquipment(b, treeops.Path{FloorID: "F1", RoomID: "R1"}, domain.KindOutlet, domain.EquipmentElement{
		Name:             "Wall outlet",
		IsFutureProposal: true,
	})
	require.NotSame(t, b, nb)
	require.NotEmpty(t, elID)
	room := nb.FindFloor("F1").FindRoom("R1")
	require.Len(t, room.Outlets, 1)
	require.Equal(t, domain.KindOutlet, room.Outlets[0].Kind)
	require.Equal(t, elID, room.Outlets[0].ElementID)

	// 中心机柜（FloorID 为空 + 中心机柜ID）
	nb2, elID2 := treeops.AddEquipment(nb, treeops.Path{RackID: "CR"}, domain.KindServer, domain.EquipmentElement{Name: "NAS"})
	require.NotEmpty(t, elID2)
	require.Len(t, nb2.CentralRack.Servers, 1)

	// 房间里放机柜设备种类：no-op
	same, id := treeops.AddEquipment(nb2, treeops.Path{FloorID: "F1", RoomID: "R1"}, domain.KindSwitch, domain.EquipmentElement{})
	require.Same(t, nb2, same)
	require.Empty(t, id)
}

func TestRemoveEquipment(t *testing.T) {
	b := seedBuilding()

	// 方案层节点可删
	nb := treeops.RemoveEquipment(b, treeops.Path{FloorID: "F1", RackID: "FR1", ElementID: "rt1"})
	require.NotSame(t, b, nb)
	require.Empty(t, nb.FindFloor("F1").FindRack("FR1").Routers)

	// 现状节点绝不删：no-op
	same := treeops.RemoveEquipment(b, treeops.Path{RackID: "CR", ElementID: "sw1"})
	require.Same(t, b, same)
}

// 不存在的 rackId：返回与输入深度相等的 Building（这里直接是原指针）
func TestRemoveEquipment_MissingPathNoop(t *testing.T) {
	b := seedBuilding()
	same := treeops.RemoveEquipment(b, treeops.Path{FloorID: "F1", RackID: "no-such-rack", ElementID: "rt1"})
	require.Same(t, b, same)
	require.Equal(t, seedBuilding(), same)
}

func TestUpdateEquipmentField(t *testing.T) {
	b := seedBuilding()

	nb := treeops.UpdateEquipmentField(b, treeops.Path{RackID: "CR", ElementID: "sw1"}, map[string]any{
		"brand":     "Juniper",
		"portCount": float64(48), // JSON 解码产物
		"bogus":     "ignored",
	})
	require.NotSame(t, b, nb)
	sw := nb.CentralRack.Switches[0]
	require.Equal(t, "Juniper", sw.Brand)
	require.Equal(t, 48, sw.PortCount)
	require.Equal(t, "Cisco", b.CentralRack.Switches[0].Brand) // 输入不被触碰

	// 全部未知键：no-op
	same := treeops.UpdateEquipmentField(nb, treeops.Path{RackID: "CR", ElementID: "sw1"}, map[string]any{"bogus": 1})
	require.Same(t, nb, same)
}

// 给现状节点挂产品：isFutureProposal 单向翻转，legacy 对先物化进 products
func TestAddProductAssociation_FlipsProposalFlag(t *testing.T) {
	b := seedBuilding()
	path := treeops.Path{FloorID: "F1", RoomID: "R1", ElementID: "dev1"}

	nb := treeops.AddProductAssociation(b, path, domain.ProductAssociation{ProductID: "PC-NEW", Quantity: 1})
	dev := nb.FindFloor("F1").FindRoom("R1").Devices[0]
	require.True(t, dev.IsFutureProposal)
	require.Equal(t, []domain.ProductAssociation{
		{ProductID: "PC-OLD", Quantity: 2}, // legacy 物化保留
		{ProductID: "PC-NEW", Quantity: 1},
	}, dev.Products)
	require.Empty(t, dev.ProductID)

	// 移除刚加的引用：标志保持 true（单向转变）
	nb2 := treeops.RemoveProductAssociation(nb, path, "PC-NEW")
	dev2 := nb2.FindFloor("F1").FindRoom("R1").Devices[0]
	require.Len(t, dev2.Products, 1)
	require.True(t, dev2.IsFutureProposal)

	nb3 := treeops.RemoveProductAssociation(nb2, path, "PC-OLD")
	dev3 := nb3.FindFloor("F1").FindRoom("R1").Devices[0]
	require.Empty(t, dev3.Products)
	require.True(t, dev3.IsFutureProposal) // 清空后依然可见于方案聚合
}

func TestAddServiceAssociation(t *testing.T) {
	b := seedBuilding()
	path := treeops.Path{FloorID: "F1", RoomID: "R1", ElementID: "dev1"}

	nb := treeops.AddServiceAssociation(b, path, domain.ServiceAssociation{ServiceID: "SVC-1"})
	dev := nb.FindFloor("F1").FindRoom("R1").Devices[0]
	require.Len(t, dev.Services, 1)
	require.NotEmpty(t, dev.Services[0].AssociationID)
	require.Equal(t, 1, dev.Services[0].Quantity)
	require.True(t, dev.IsFutureProposal)

	nb2 := treeops.RemoveServiceAssociation(nb, path, "SVC-1")
	dev2 := nb2.FindFloor("F1").FindRoom("R1").Devices[0]
	require.Empty(t, dev2.Services)
	require.True(t, dev2.IsFutureProposal)
}

func TestSetTypical(t *testing.T) {
	b := seedBuilding()

	nb := treeops.SetFloorTypical(b, "F1", true, 3)
	require.True(t, nb.FindFloor("F1").IsTypical)
	require.Equal(t, 3, nb.FindFloor("F1").RepeatCount)

	nb2 := treeops.SetRoomTypical(nb, "F1", "R1", true, 20)
	require.Equal(t, 20, nb2.FindFloor("F1").FindRoom("R1").RepeatCount)

	// repeatCount 钳到 1
	nb3 := treeops.SetFloorTypical(nb2, "F1", true, 0)
	require.Equal(t, 1, nb3.FindFloor("F1").RepeatCount)

	// 值未变化：no-op
	same := treeops.SetFloorTypical(nb3, "F1", true, 1)
	require.Same(t, nb3, same)
}

// copy-on-write：未修改的子树与输入共享，引用相等即"没改"
func TestCopyOnWriteSharing(t *testing.T) {
	b := seedBuilding()

	nb := treeops.UpdateEquipmentField(b, treeops.Path{FloorID: "F1", RackID: "FR1", ElementID: "rt1"}, map[string]any{"name": "Edge"})
	require.NotSame(t, b, nb)
	require.Same(t, b.CentralRack, nb.CentralRack)                       // 未动的中心机柜共享
	require.Same(t, b.Floors[0].Rooms[0], nb.Floors[0].Rooms[0])         // 未动的房间共享
	require.NotSame(t, b.Floors[0], nb.Floors[0])                        // 路径上的祖先被替换
	require.NotSame(t, b.Floors[0].Racks[0], nb.Floors[0].Racks[0])
}
