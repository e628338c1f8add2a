package aggregator

import "kimoncrm-survey/internal/domain"

// Multiplier 计算节点的有效数量倍数。
//
// floorFactor = floor 为 typical 时 max(1, repeatCount)，否则 1；
// roomFactor 同理。结果 = floorFactor * roomFactor。
// 中心机柜的节点（floor、room 均为 nil）恒为 1：一栋楼只有一个中心机柜。
//
// 倍数只在聚合时作用于最终数量，绝不改写节点存储的 quantity——
// 编辑一个代表节点即隐式更新全部重复实例。
func Multiplier(floor *domain.Floor, room *domain.Room) int {
	factor := 1
	if floor != nil && floor.IsTypical {
		factor *= max(1, floor.RepeatCount)
	}
	if room != nil && room.IsTypical {
		factor *= max(1, room.RepeatCount)
	}
	return factor
}
