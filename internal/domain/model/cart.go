package model

// カートの明細。
// UnitPrice は追加時点の価格（最小通貨単位）を必ず保存。
// ProductID がマージキー（同一商品は1明細）。
type CartItem struct {
	ProductID        string            `json:"productId"`
	Quantity         int64             `json:"quantity"`
	UnitPrice        int64             `json:"unitPrice"`
	SelectedVariants map[string]string `json:"selectedVariants"`
}

// カート全体のスナップショット。
// Items は追加順を保持する。
// OwnerIdentity が空なら匿名（未ログイン）。
type CartState struct {
	Items         []CartItem `json:"items"`
	OwnerIdentity string     `json:"ownerIdentity,omitempty"`
}

// productIDの明細のindexを返す（無ければ-1）。
func (s *CartState) IndexOf(productID string) int {
	for i, it := range s.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

// 明細のコピーを返す（呼び出し側の変更から守る）。
func (s *CartState) CopyItems() []CartItem {
	items := make([]CartItem, len(s.Items))
	copy(items, s.Items)
	return items
}
