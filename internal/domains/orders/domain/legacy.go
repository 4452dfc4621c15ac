package domain

// MergeLegacyItems folds the historical products[] and orderItems[] collections into one
// canonical list keyed by product and size. Entries are kept in first-seen order.
func MergeLegacyItems(products, orderItems []LineItem) ([]LineItem, error) {
	if len(products) == 0 && len(orderItems) == 0 {
		return nil, ErrNoLineItems
	}
	primary := collapse(products)
	secondary := collapse(orderItems)

	merged := make([]LineItem, 0, len(primary)+len(secondary))
	index := make(map[ItemKey]int, len(primary)+len(secondary))
	for _, item := range primary {
		index[item.Key()] = len(merged)
		merged = append(merged, item)
	}
	for _, item := range secondary {
		pos, ok := index[item.Key()]
		if !ok {
			index[item.Key()] = len(merged)
			merged = append(merged, item)
			continue
		}
		merged[pos] = reconcile(merged[pos], item)
	}
	return merged, nil
}

// collapse sums duplicate keys inside one legacy array.
func collapse(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	index := make(map[ItemKey]int, len(items))
	for _, item := range items {
		if item.Status == "" {
			item.Status = AdminNotProcessed
		}
		pos, ok := index[item.Key()]
		if !ok {
			index[item.Key()] = len(out)
			out = append(out, item)
			continue
		}
		existing := out[pos]
		existing.Quantity += item.Quantity
		existing.Status = MoreProgressed(existing.Status, item.Status)
		out[pos] = fillTracking(existing, item)
	}
	return out
}

// reconcile resolves an item present in both arrays. The more progressed status wins;
// quantity and price come from products[] since that side was written first.
func reconcile(fromProducts, fromOrderItems LineItem) LineItem {
	result := fromProducts
	result.Status = MoreProgressed(fromProducts.Status, fromOrderItems.Status)
	if result.Name == "" {
		result.Name = fromOrderItems.Name
	}
	if result.UnitPrice.IsZero() {
		result.UnitPrice = fromOrderItems.UnitPrice
	}
	if result.ProductCompletedAt == nil {
		result.ProductCompletedAt = fromOrderItems.ProductCompletedAt
	}
	return fillTracking(result, fromOrderItems)
}

func fillTracking(target, source LineItem) LineItem {
	if target.TrackingURL == "" {
		target.TrackingURL = source.TrackingURL
	}
	if target.TrackingID == "" {
		target.TrackingID = source.TrackingID
	}
	return target
}
