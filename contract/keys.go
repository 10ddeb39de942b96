package contract

import "legion_sales/sdk"

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// initFlagKey marks the one-time initialize; a single prefix byte is enough.
func initFlagKey() string {
	return string([]byte{kInitFlag})
}

// saleConfigKey addresses the SaleConfig singleton under prefix 0x01.
func saleConfigKey() string {
	return string([]byte{kSaleConfig})
}

// saleStatusKey addresses the SaleStatus singleton under prefix 0x02.
func saleStatusKey() string {
	return string([]byte{kSaleStatus})
}

// positionKey mixes the prefix with raw address bytes so positions avoid
// nested maps in host storage.
func positionKey(addr sdk.Address) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+len(addrStr))
	buf = append(buf, kPosition)
	buf = append(buf, addrStr...)
	return string(buf)
}

// investorIndexKey stores the enumeration list of open positions.
func investorIndexKey() string {
	return string([]byte{kInvestorIndex})
}

// usedAuthKey flags one consumed (investor, nonce) authorization pair.
func usedAuthKey(addr sdk.Address, nonce uint64) string {
	addrStr := addr.String()
	buf := make([]byte, 0, 1+len(addrStr)+8)
	buf = append(buf, kUsedAuth)
	buf = append(buf, addrStr...)
	buf = packU64LE(nonce, buf)
	return string(buf)
}
