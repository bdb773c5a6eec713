package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

var (
	s3Uploader *s3manager.Uploader
	s3Client   *s3.S3
	bucketName string
	useS3      bool
)

// InitStorage initializes either S3 or local file storage depending on
// the environment. Without S3 credentials, images land in ./uploads.
func InitStorage() error {
	bucketName = os.Getenv("S3_BUCKET_NAME")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	region := os.Getenv("AWS_REGION")

	if bucketName != "" && accessKey != "" && secretKey != "" {
		if region == "" {
			region = "us-east-1"
		}

		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(region),
			Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
		})
		if err != nil {
			return fmt.Errorf("failed to create AWS session: %w", err)
		}

		s3Uploader = s3manager.NewUploader(sess)
		s3Client = s3.New(sess)
		useS3 = true
		log.Printf("Storage initialized: S3 bucket %s (%s)", bucketName, region)
		return nil
	}

	if err := os.MkdirAll("uploads/cars", 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}
	useS3 = false
	log.Println("Storage initialized: local uploads directory")
	return nil
}

// IsUsingS3 reports whether images are stored in S3
func IsUsingS3() bool {
	return useS3
}

// UploadImage stores a car image and returns its public URL
func UploadImage(file *multipart.FileHeader, folder string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		return "", fmt.Errorf("unsupported image type: %s", ext)
	}

	filename := fmt.Sprintf("%s/%d%s", folder, time.Now().UnixNano(), ext)

	if useS3 {
		return uploadToS3(file, filename)
	}
	return uploadLocally(file, filename)
}

func uploadToS3(file *multipart.FileHeader, filename string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	result, err := s3Uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(filename),
		Body:        src,
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return result.Location, nil
}

func uploadLocally(file *multipart.FileHeader, filename string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dstPath := filepath.Join("uploads", filename)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + filename, nil
}

// DeleteImage removes a previously uploaded image by its URL
func DeleteImage(imageURL string) error {
	if imageURL == "" {
		return nil
	}

	if useS3 {
		key := imageURL
		if idx := strings.Index(imageURL, bucketName); idx >= 0 {
			key = imageURL[idx+len(bucketName):]
			key = strings.TrimPrefix(key, "/")
			if slash := strings.Index(key, "/"); slash >= 0 && strings.Contains(key, ".amazonaws.com") {
				key = key[slash+1:]
			}
		}
		_, err := s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(bucketName),
			Key:    aws.String(key),
		})
		return err
	}

	localPath := strings.TrimPrefix(imageURL, "/")
	if strings.HasPrefix(localPath, "uploads/") {
		return os.Remove(localPath)
	}
	return nil
}
