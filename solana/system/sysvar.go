package system

// Fixed sysvar addresses referenced by the nonce instructions.
var (
	RentSysVar              = mustDecode("SysvarRent111111111111111111111111111111111")
	RecentBlockhashesSysVar = mustDecode("SysvarRecentB1ockHashes11111111111111111111")
	ClockSysVar             = mustDecode("SysvarC1ock11111111111111111111111111111111")
)
