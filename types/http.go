package types

type BaseResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type StatsResponse struct {
	BaseResponse
	TotalKeys    int    `json:"total_keys"`
	ExpiringKeys int    `json:"expiring_keys"`
	LazyExpired  uint64 `json:"lazy_expired"`
	Role         string `json:"role"`
	MasterAddr   string `json:"master_addr,omitempty"`
}
