package domain

import "strings"

// EquipmentKind 设备种类（封闭集合）。机柜内九类 + 房间内三类；
// Connection 两边都有，归属由所在集合决定。
type EquipmentKind string

const (
	KindCableTermination EquipmentKind = "cable_termination"
	KindSwitch           EquipmentKind = "switch"
	KindRouter           EquipmentKind = "router"
	KindServer           EquipmentKind = "server"
	KindVoipPbx          EquipmentKind = "voip_pbx"
	KindHeadend          EquipmentKind = "headend"
	KindNvr              EquipmentKind = "nvr"
	KindAta              EquipmentKind = "ata"
	KindConnection       EquipmentKind = "connection"
	KindDevice           EquipmentKind = "device"
	KindOutlet           EquipmentKind = "outlet"
)

// EquipmentElement 设备节点。现状（existing）与方案（future-proposal）两层
// 共用同一种节点：IsFutureProposal 区分层；描述性字段只对现状设备有意义。
//
// 产品关联存在两代数据形态，读取时由 overlay resolver 统一归一化：
//   - legacy: 单个 ProductID + Quantity 直接挂在节点上
//   - current: Products 数组（一个节点可关联多个产品）
//
// 两者同时存在时以 Products 为准（迁移残留，绝不合并、绝不重复计数）。
type EquipmentElement struct {
	ElementID        string        `json:"elementId"`
	Kind             EquipmentKind `json:"kind"`
	Name             string        `json:"name,omitempty"`
	IsFutureProposal bool          `json:"isFutureProposal"`

	// 描述性字段（现状勘测记录）
	Brand      string `json:"brand,omitempty"`
	Model      string `json:"model,omitempty"`
	IPAddress  string `json:"ipAddress,omitempty"`
	MACAddress string `json:"macAddress,omitempty"`
	PortCount  int    `json:"portCount,omitempty"`
	Notes      string `json:"notes,omitempty"`

	// legacy 单产品关联（仅在 Products 为空时生效）
	ProductID string `json:"productId,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`

	Products []ProductAssociation `json:"products,omitempty"`
	Services []ServiceAssociation `json:"services,omitempty"`
}

// proposalIDPrefix 早期数据没有 isFutureProposal 标志，靠节点ID命名约定识别
const proposalIDPrefix = "proposal-"

// Proposal 节点是否属于方案层：标志位为真，或节点ID带 "proposal-" 前缀
// （标志位出现之前的历史数据兜底，大小写不敏感）
func (e *EquipmentElement) Proposal() bool {
	return e.IsFutureProposal || strings.HasPrefix(strings.ToLower(e.ElementID), proposalIDPrefix)
}

// ProductAssociation 节点到目录产品的引用
type ProductAssociation struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// ServiceAssociation 节点到目录服务的引用（quantity 缺省按1计）
type ServiceAssociation struct {
	AssociationID string `json:"associationId,omitempty"`
	ServiceID     string `json:"serviceId"`
	Quantity      int    `json:"quantity,omitempty"`
	Notes         string `json:"notes,omitempty"`
}
