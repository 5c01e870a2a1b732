package model

// ウィッシュリストに保存する商品情報。
// カタログから渡された時点の値をそのまま保持する。
type ProductSnapshot struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// ウィッシュリスト全体。
// ProductID をキーにしたset（同じ商品は1件だけ）。
type WishlistState struct {
	Items []ProductSnapshot `json:"items"`
}

// productIDが既に入っているか。
func (s *WishlistState) Contains(productID string) bool {
	for _, it := range s.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
