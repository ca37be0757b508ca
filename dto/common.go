package dto

import "hotelbook/response"

// Paginate cắt một trang từ danh sách, page bắt đầu từ 1
func Paginate[T any](items []T, page, limit int) ([]T, response.Pagination) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], response.Pagination{Page: page, Limit: limit, Total: total}
}
