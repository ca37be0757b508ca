package controllers

import (
	"net/http"

	"hotelbook/dto"
	"hotelbook/middleware"
	"hotelbook/models"
	"hotelbook/response"
	"hotelbook/services"
	"hotelbook/validator"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) HotelController {
	return HotelController{hotels: hotels}
}

// GetHotels godoc
// @Summary Danh sách khách sạn đã duyệt
// @Tags hotels
// @Produce json
// @Success 200 {object} response.Response
// @Router /hotels [get]
func (h HotelController) GetHotels(c *gin.Context) {
	hotels, err := h.hotels.ListApproved(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	page, limit := pageParams(c)
	items, pagination := dto.Paginate(hotels, page, limit)
	response.SuccessWithPagination(c, items, pagination.Page, pagination.Limit, pagination.Total)
}

// GetHotelDetail godoc
// @Summary Chi tiết khách sạn và các phòng còn đặt được
// @Tags hotels
// @Produce json
// @Param id path int true "ID khách sạn"
// @Param checkin_date query string false "YYYY-MM-DD"
// @Param checkout_date query string false "YYYY-MM-DD"
// @Param guests query int false "Số khách"
// @Success 200 {object} response.Response
// @Router /hotels/{id} [get]
func (h HotelController) GetHotelDetail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var query dto.RoomAvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	filter := services.RoomFilter{Guests: query.Guests}
	if query.CheckIn != "" || query.CheckOut != "" {
		stay, err := validator.ParseStay(query.CheckIn, query.CheckOut)
		if err != nil {
			response.FromError(c, err)
			return
		}
		filter.Stay = &stay
	}

	hotel, rooms, err := h.hotels.Detail(c.Request.Context(), id, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"hotel": hotel,
		"rooms": toRoomResponses(rooms),
	})
}

// SearchHotels godoc
// @Summary Tìm khách sạn theo địa điểm, ngày và số khách
// @Description Bộ lọc bỏ trống được lấy từ lần tìm trước của cùng session (header X-Session-ID)
// @Tags hotels
// @Produce json
// @Param location query string false "Địa điểm"
// @Param checkin_date query string false "YYYY-MM-DD"
// @Param checkout_date query string false "YYYY-MM-DD"
// @Param guests query int false "Số khách"
// @Success 200 {object} response.Response
// @Router /hotels/search [get]
func (h HotelController) SearchHotels(c *gin.Context) {
	var filters dto.SearchFilters
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&filters)
	} else {
		err = c.ShouldBindQuery(&filters)
	}
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.hotels.Search(c.Request.Context(), c.GetString(middleware.ContextSessionID), filters)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, result)
}

// CreateHotel godoc
// @Summary Manager tạo khách sạn (chờ admin duyệt)
// @Tags hotels
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.HotelRequest true "Thông tin khách sạn"
// @Success 201 {object} response.Response
// @Router /hotels [post]
func (h HotelController) CreateHotel(c *gin.Context) {
	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hotel, err := h.hotels.Create(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, hotel)
}

func (h HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	hotel, err := h.hotels.Update(c.Request.Context(), middleware.CurrentIdentity(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

// UploadHotelImage nhận file multipart "file"; cover=true để đặt làm ảnh đại diện
func (h HotelController) UploadHotelImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Thiếu file ảnh")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Không đọc được file ảnh")
		return
	}
	defer file.Close()

	hotel, err := h.hotels.UploadImage(c.Request.Context(), middleware.CurrentIdentity(c), id, file, c.Query("cover") == "true")
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, hotel)
}

// ManageHotel godoc
// @Summary Khách sạn của manager đang đăng nhập
// @Tags manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /manager/hotel [get]
func (h HotelController) ManageHotel(c *gin.Context) {
	hotel, err := h.hotels.Manage(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	rooms := hotel.Rooms
	hotel.Rooms = nil
	response.Success(c, dto.ManageHotelResponse{
		Hotel:      hotel,
		IsApproved: hotel.IsApproved,
		Rooms:      toRoomResponses(rooms),
	})
}

func toRoomResponses(rooms []models.Room) []dto.RoomResponse {
	result := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, toRoomResponse(room))
	}
	return result
}

func toRoomResponse(room models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:           room.ID,
		HotelID:      room.HotelID,
		RoomType:     room.RoomType,
		Price:        room.Price,
		Capacity:     room.Capacity,
		Availability: room.Availability,
		CreatedAt:    room.CreatedAt,
	}
}
