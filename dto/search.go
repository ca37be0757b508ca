package dto

// SearchFilters là bộ lọc tìm kiếm khách sạn, được nhớ theo session
type SearchFilters struct {
	Location string `json:"location" form:"location"`
	CheckIn  string `json:"checkIn" form:"checkin_date" binding:"omitempty,isodate"`
	CheckOut string `json:"checkOut" form:"checkout_date" binding:"omitempty,isodate"`
	Guests   *int   `json:"guests" form:"guests" binding:"omitempty,min=1"`
}

type HotelSearchResult struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	MinPrice    int    `json:"minPrice"`
}

type SearchResponse struct {
	Filters    SearchFilters       `json:"filters"`
	Results    []HotelSearchResult `json:"results"`
	Suggestion string              `json:"suggestion,omitempty"`
}
