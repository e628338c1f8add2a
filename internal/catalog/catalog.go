package catalog

// Item 目录条目（产品或服务），CRM 主应用目录服务的只读投影
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price"`
}

// Catalog 只读目录查询。聚合引擎只依赖这个接口，
// 传入的是已经取好的快照，引擎本身不做任何 I/O。
type Catalog interface {
	GetProduct(id string) (*Item, bool)
	GetService(id string) (*Item, bool)
}

// Snapshot 内存目录快照（Catalog 的不可变实现）
type Snapshot struct {
	Products map[string]Item
	Services map[string]Item
}

// NewSnapshot 从条目列表构建目录快照
func NewSnapshot(products, services []Item) *Snapshot {
	s := &Snapshot{
		Products: make(map[string]Item, len(products)),
		Services: make(map[string]Item, len(services)),
	}
	for _, p := range products {
		s.Products[p.ID] = p
	}
	for _, sv := range services {
		s.Services[sv.ID] = sv
	}
	return s
}

func (s *Snapshot) GetProduct(id string) (*Item, bool) {
	if item, ok := s.Products[id]; ok {
		return &item, true
	}
	return nil, false
}

func (s *Snapshot) GetService(id string) (*Item, bool) {
	if item, ok := s.Services[id]; ok {
		return &item, true
	}
	return nil, false
}
