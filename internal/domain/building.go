package domain

// Building 勘测树的所有权根：一栋楼及其全部基础设施节点。
// 每个后代节点从 Building 出发恰好有一条可达路径（不存父指针、不共享子树），
// 因此整棵树可以按值复制、按引用比较（copy-on-write 变更检测的前提）。
type Building struct {
	BuildingID  string   `json:"buildingId"`
	Name        string   `json:"name"`
	CentralRack *Rack    `json:"centralRack,omitempty"` // 每栋楼至多一个中心机柜
	Floors      []*Floor `json:"floors"`
}

// Floor 楼层。isTypical=true 时该节点代表 repeatCount 个完全相同的物理楼层，
// 树里只存这一个代表实例（数量在聚合时按倍数展开，节点本身不复制）。
type Floor struct {
	FloorID     string  `json:"floorId"`
	Name        string  `json:"name"`
	Level       int     `json:"level"`
	IsTypical   bool    `json:"isTypical"`
	RepeatCount int     `json:"repeatCount,omitempty"` // ≥1，仅 isTypical 时有意义
	Racks       []*Rack `json:"racks"`
	Rooms       []*Room `json:"rooms"`
}

// Room 房间（如酒店客房、办公室）。isTypical/repeatCount 语义同 Floor，
// 倍数在楼层倍数之上叠乘（20间标准客房 × 3个标准楼层 = 60）。
type Room struct {
	RoomID      string              `json:"roomId"`
	Name        string              `json:"name"`
	RoomType    string              `json:"roomType,omitempty"`
	IsTypical   bool                `json:"isTypical"`
	RepeatCount int                 `json:"repeatCount,omitempty"`
	Devices     []*EquipmentElement `json:"devices"`
	Outlets     []*EquipmentElement `json:"outlets"`
	Connections []*EquipmentElement `json:"connections"`
}

// Rack 机柜（中心机柜或楼层机柜）。每类设备一个同构集合；
// 集合顺序即文档聚合的固定遍历顺序（见 aggregator）。
type Rack struct {
	RackID            string              `json:"rackId"`
	Name              string              `json:"name"`
	CableTerminations []*EquipmentElement `json:"cableTerminations"`
	Switches          []*EquipmentElement `json:"switches"`
	Routers           []*EquipmentElement `json:"routers"`
	Servers           []*EquipmentElement `json:"servers"`
	VoipPbx           []*EquipmentElement `json:"voipPbx"`
	Headends          []*EquipmentElement `json:"headends"`
	Nvrs              []*EquipmentElement `json:"nvrs"`
	Atas              []*EquipmentElement `json:"atas"`
	Connections       []*EquipmentElement `json:"connections"`
}

// FindFloor 按ID查找楼层，未找到返回 nil
func (b *Building) FindFloor(floorID string) *Floor {
	for _, f := range b.Floors {
		if f.FloorID == floorID {
			return f
		}
	}
	return nil
}

// FindRack 按ID查找楼层机柜，未找到返回 nil
func (f *Floor) FindRack(rackID string) *Rack {
	for _, r := range f.Racks {
		if r.RackID == rackID {
			return r
		}
	}
	return nil
}

// FindRoom 按ID查找房间，未找到返回 nil
func (f *Floor) FindRoom(roomID string) *Room {
	for _, r := range f.Rooms {
		if r.RoomID == roomID {
			return r
		}
	}
	return nil
}
