package config

import (
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
)

// ConnectCloudinary khởi tạo client từ CLOUDINARY_URL. Trả về nil nếu chưa cấu hình.
func ConnectCloudinary(cfg *Config) (*cloudinary.Cloudinary, error) {
	if cfg.CloudinaryURL == "" {
		return nil, nil
	}

	cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi khởi tạo Cloudinary: %w", err)
	}
	return cld, nil
}
