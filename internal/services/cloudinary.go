package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ProfilePictureFolder is where therapist pictures are uploaded.
const ProfilePictureFolder = "mindcare/therapists"

// Uploader stores a file and returns its public URL.
type Uploader interface {
	UploadFile(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
}

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// UploadFile uploads an image. publicID, when set, makes re-uploads replace
// the previous picture.
func (s *CloudinaryService) UploadFile(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: "image",
	}
	if publicID != "" {
		overwrite := true
		params.PublicID = publicID
		params.Overwrite = &overwrite
	}

	result, err := s.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// UploadProfilePicture validates an image upload and stores it through up.
func UploadProfilePicture(ctx context.Context, up Uploader, header *multipart.FileHeader, therapistID string) (string, error) {
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("%w: profile picture must be an image", ErrValidation)
	}
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return up.UploadFile(ctx, file, ProfilePictureFolder, "therapist_"+therapistID)
}
