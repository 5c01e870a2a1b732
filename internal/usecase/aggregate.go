package usecase

import "app/internal/domain/model"

// 集計は毎回その場で計算する（キャッシュを持たない）。
// カートはせいぜい数十明細なのでO(n)で十分。

// TotalItems は数量の合計。
func TotalItems(state model.CartState) int64 {
	var total int64
	for _, it := range state.Items {
		total += it.Quantity
	}
	return total
}

// TotalPrice は数量×単価の合計（最小通貨単位）。
func TotalPrice(state model.CartState) int64 {
	var total int64
	for _, it := range state.Items {
		total += it.Quantity * it.UnitPrice
	}
	return total
}
