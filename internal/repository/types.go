package repository

import "time"

// StoreListFilter 查询门店列表的过滤条件
type StoreListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Status     string
	Search     string
}

// ItemListFilter 查询零售商品列表的过滤条件
type ItemListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	Barcode    string
	OnlyActive bool
}

// ProductListFilter 查询批发商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// ComboListFilter 查询组合装列表的过滤条件
type ComboListFilter struct {
	Page       int
	PageSize   int
	Search     string
	OnlyActive bool
}

// UserListFilter 查询操作员列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	StoreID  uint
	Role     string
	Search   string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	Channel     string
	Status      string
	OrderNo     string
	StoreID     uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// DispatchListFilter 查询派送单列表的过滤条件
type DispatchListFilter struct {
	Page        int
	PageSize    int
	Type        string
	Status      string
	StoreID     uint
	OrderID     uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
